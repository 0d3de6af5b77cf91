// Package recovery inspects the termination ledger and attempts bounded,
// known-safe recovery actions for processes that can be relaunched after an
// accidental kill. Recovery is best-effort; it cannot undo arbitrary system
// state.
package recovery

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/psantana5/procwatch/internal/ledger"
)

// candidateLimit caps how much ledger history recovery considers.
const candidateLimit = 50

// Action describes how to relaunch a known-recoverable process.
type Action struct {
	Command string
	Args    []string
}

// DefaultActions returns the allowlist of processes procwatch knows how to
// bring back. Anything not listed here is never touched.
func DefaultActions() map[string]Action {
	return map[string]Action{
		"explorer.exe": {Command: "explorer"},
	}
}

// Launcher starts a replacement process for a recovery action.
// ExecLauncher is the real backend; tests inject fakes.
type Launcher interface {
	Launch(command string, args []string) error
}

// Config wires an Advisor's collaborators.
type Config struct {
	Ledger   ledger.Ledger
	Launcher Launcher
	Actions  map[string]Action
	Logger   zerolog.Logger
}

// Advisor reads the ledger and executes recovery actions. It never prompts;
// confirmation is the caller's responsibility.
type Advisor struct {
	cfg Config
}

// NewAdvisor creates an advisor, defaulting to the built-in allowlist.
func NewAdvisor(cfg Config) *Advisor {
	if cfg.Actions == nil {
		cfg.Actions = DefaultActions()
	}
	return &Advisor{cfg: cfg}
}

// Candidates returns recent ledger entries, most recent first.
func (a *Advisor) Candidates() ([]ledger.Entry, error) {
	return a.cfg.Ledger.ReadRecent(candidateLimit)
}

// Recoverable reports whether an automated recovery action exists for name.
func (a *Advisor) Recoverable(name string) bool {
	_, ok := a.cfg.Actions[strings.ToLower(name)]
	return ok
}

// Outcome reports the result of one recovery attempt.
type Outcome struct {
	Entry     ledger.Entry `json:"entry"`
	Attempted bool         `json:"attempted"`
	Message   string       `json:"message"`
	Err       error        `json:"-"`
}

// Recover attempts the known recovery action for entry. auto=false means
// the caller already obtained confirmation; the advisor acts either way and
// only records which mode it ran in.
func (a *Advisor) Recover(entry ledger.Entry, auto bool) Outcome {
	action, ok := a.cfg.Actions[strings.ToLower(entry.Name)]
	if !ok {
		return Outcome{Entry: entry, Message: "no known recovery"}
	}

	a.cfg.Logger.Info().
		Str("name", entry.Name).
		Str("command", action.Command).
		Bool("auto", auto).
		Msg("attempting recovery")

	if err := a.cfg.Launcher.Launch(action.Command, action.Args); err != nil {
		return Outcome{
			Entry:     entry,
			Attempted: true,
			Message:   fmt.Sprintf("failed to relaunch %s", entry.Name),
			Err:       err,
		}
	}
	return Outcome{
		Entry:     entry,
		Attempted: true,
		Message:   fmt.Sprintf("relaunched %s", entry.Name),
	}
}
