package ledger

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// EnvLedgerPath overrides the ledger location when set.
const EnvLedgerPath = "PROCWATCH_LEDGER"

// DefaultPath returns the ledger location: the PROCWATCH_LEDGER environment
// variable when set, otherwise $HOME/.procwatch/kill.log.
func DefaultPath() string {
	if p := os.Getenv(EnvLedgerPath); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Last resort: relative to the working directory
		return ".procwatch/kill.log"
	}
	return filepath.Join(home, ".procwatch", "kill.log")
}

// FileLedger appends JSON lines to a single user-scoped file. Appends are
// single-line writes; multiple shell instances may append concurrently
// without coordination.
type FileLedger struct {
	path string
}

// NewFileLedger creates a ledger backed by the file at path.
func NewFileLedger(path string) *FileLedger {
	if path == "" {
		path = DefaultPath()
	}
	return &FileLedger{path: path}
}

// Path returns the backing file location.
func (l *FileLedger) Path() string {
	return l.path
}

// Append writes one entry as a JSON line, creating the file and its parent
// directory on first use.
func (l *FileLedger) Append(e Entry) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal ledger entry: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// ReadRecent returns up to limit entries, most recent first. Unparsable
// lines are skipped, never fatal; a missing file is an empty ledger.
func (l *FileLedger) ReadRecent(limit int) ([]Entry, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer f.Close()

	// bufio.Reader has no line length cap, so one oversized corrupt line
	// cannot fail the whole read.
	var entries []Entry
	reader := bufio.NewReader(f)
	for {
		line, readErr := reader.ReadBytes('\n')
		if trimmed := bytes.TrimSpace(line); len(trimmed) > 0 {
			var e Entry
			if err := json.Unmarshal(trimmed, &e); err == nil {
				entries = append(entries, e)
			}
			// Corrupt lines are dropped; favor availability of the
			// valid entries
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read ledger: %w", readErr)
		}
	}

	// File order is oldest first; reverse to most recent first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
