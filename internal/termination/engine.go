// Package termination executes termination requests against live processes:
// protection policy first, graceful before forced, every success recorded in
// the recovery ledger.
package termination

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/psantana5/procwatch/internal/ledger"
	"github.com/psantana5/procwatch/internal/policy"
	"github.com/psantana5/procwatch/internal/snapshot"
)

// SnapshotFunc supplies the current process table for target resolution.
type SnapshotFunc func(ctx context.Context) ([]snapshot.Record, error)

// Config wires an Engine's collaborators. All dependencies are explicit so
// tests can substitute fakes for the signaller, policy and ledger.
type Config struct {
	Signaller   Signaller
	Protected   *policy.ProtectedSet
	Ledger      ledger.Ledger
	Snapshot    SnapshotFunc
	GracePeriod time.Duration
	Logger      zerolog.Logger
}

// Engine executes termination requests. One Terminate call runs to
// completion synchronously; the engine holds no mutable state across calls.
type Engine struct {
	cfg Config
}

// NewEngine creates an engine from cfg, applying the default grace period
// when none is set.
func NewEngine(cfg Config) *Engine {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultGracePeriod
	}
	return &Engine{cfg: cfg}
}

// Terminate processes every target in request order and returns one outcome
// per target. Per-target failures are collected, never raised; only a failed
// process table capture aborts the whole call.
func (e *Engine) Terminate(ctx context.Context, req Request) ([]Outcome, error) {
	records, err := e.cfg.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	outcomes := make([]Outcome, 0, len(req.Targets))
	for _, target := range req.Targets {
		out := e.terminateOne(ctx, req, records, target)
		e.cfg.Logger.Debug().
			Str("target", target).
			Int32("pid", out.PID).
			Str("method", out.Method.String()).
			Str("reason", out.Reason).
			Msg("termination outcome")
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

func (e *Engine) terminateOne(ctx context.Context, req Request, records []snapshot.Record, target string) Outcome {
	out := Outcome{Target: target}

	rec, ok := Resolve(records, target)
	out.PID = rec.PID
	out.Name = rec.Name
	if !ok {
		out.Method = MethodFailed
		out.Reason = "not found"
		return out
	}

	if e.cfg.Protected.Contains(rec.Name) && !(req.Force && req.Confirmed) {
		out.Method = MethodSkipped
		out.Reason = "protected"
		return out
	}

	planned := e.plan(req)
	if req.DryRun {
		out.Method = planned
		out.Reason = "dry-run"
		return out
	}

	method, err := e.execute(ctx, req, rec.PID, planned)
	if err != nil {
		out.Method = MethodFailed
		out.Reason = err.Error()
		if isPermissionDenied(err) {
			out.Reason += " (try re-running elevated)"
		}
		return out
	}

	out.Method = method
	entry := ledger.Entry{Time: time.Now(), PID: rec.PID, Name: rec.Name, Method: method.String()}
	if err := e.cfg.Ledger.Append(entry); err != nil {
		// The kill already happened; a ledger failure must not flip the
		// outcome, but recovery will not see this entry.
		e.cfg.Logger.Warn().Err(err).Int32("pid", rec.PID).Msg("failed to record kill in ledger")
	}
	return out
}

// plan decides which method a non-dry-run execution would lead with.
func (e *Engine) plan(req Request) Method {
	if req.Force {
		return MethodForced
	}
	if req.Signal != "" && IsForcedSignal(req.Signal) {
		return MethodForced
	}
	return MethodGraceful
}

func (e *Engine) execute(ctx context.Context, req Request, pid int32, planned Method) (Method, error) {
	grace := req.GracePeriod
	if grace <= 0 {
		grace = e.cfg.GracePeriod
	}

	// An explicit signal is an independent override: sent once, no
	// escalation.
	if req.Signal != "" && !req.Force {
		if err := e.cfg.Signaller.Signal(ctx, pid, req.Signal); err != nil {
			return MethodFailed, err
		}
		return planned, nil
	}

	if planned == MethodForced {
		if err := e.cfg.Signaller.Forced(ctx, pid); err != nil {
			return MethodFailed, err
		}
		return MethodForced, nil
	}

	return newEscalation(e.cfg.Signaller, grace).run(ctx, pid)
}

// Resolve matches a pid or name target against the snapshot. Name matches
// are case-insensitive and pick the lowest pid for determinism. For numeric
// targets the returned record carries the pid even when no process matches,
// so the caller can report it.
func Resolve(records []snapshot.Record, target string) (snapshot.Record, bool) {
	if pid64, err := strconv.ParseInt(target, 10, 32); err == nil {
		pid := int32(pid64)
		for _, r := range records {
			if r.PID == pid {
				return r, true
			}
		}
		return snapshot.Record{PID: pid}, false
	}

	name := strings.ToLower(target)
	var best snapshot.Record
	found := false
	for _, r := range records {
		if strings.ToLower(r.Name) != name {
			continue
		}
		if !found || r.PID < best.PID {
			best = r
			found = true
		}
	}
	return best, found
}

func isPermissionDenied(err error) bool {
	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EPERM) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "permission denied") || strings.Contains(msg, "access is denied")
}
