package termination

import (
	"context"
	"time"
)

// killState tracks where one target is in the graceful-then-forced
// escalation.
type killState int

const (
	stateGraceful killState = iota
	stateForced
	stateDone
)

// escalation drives a single target through graceful-then-forced shutdown.
// The bounded grace wait and the escalation decision live here so they can
// be tested against a fake signaller without touching a real process.
type escalation struct {
	sig   Signaller
	grace time.Duration
	poll  time.Duration
}

func newEscalation(sig Signaller, grace time.Duration) *escalation {
	if grace <= 0 {
		grace = DefaultGracePeriod
	}
	poll := 100 * time.Millisecond
	if poll > grace {
		poll = grace
	}
	return &escalation{sig: sig, grace: grace, poll: poll}
}

// run executes the state machine for pid and returns the method that
// actually succeeded.
func (e *escalation) run(ctx context.Context, pid int32) (Method, error) {
	state := stateGraceful
	for state != stateDone {
		switch state {
		case stateGraceful:
			if err := e.sig.Graceful(ctx, pid); err != nil {
				return MethodFailed, err
			}
			if e.waitExit(ctx, pid) {
				return MethodGraceful, nil
			}
			state = stateForced
		case stateForced:
			if err := e.sig.Forced(ctx, pid); err != nil {
				return MethodFailed, err
			}
			state = stateDone
		}
	}
	return MethodForced, nil
}

// waitExit polls until the process exits or the grace period lapses.
func (e *escalation) waitExit(ctx context.Context, pid int32) bool {
	deadline := time.Now().Add(e.grace)
	for time.Now().Before(deadline) {
		if !e.sig.Alive(ctx, pid) {
			return true
		}
		select {
		case <-ctx.Done():
			return false
		case <-time.After(e.poll):
		}
	}
	return !e.sig.Alive(ctx, pid)
}
