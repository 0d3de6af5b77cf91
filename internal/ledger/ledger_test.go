package ledger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func testEntry(pid int32, name, method string, offset time.Duration) Entry {
	return Entry{
		Time:   time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC).Add(offset),
		PID:    pid,
		Name:   name,
		Method: method,
	}
}

func TestFileLedgerAppendAndReadRecent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kill.log")
	l := NewFileLedger(path)

	entries := []Entry{
		testEntry(100, "firefox", "graceful", 0),
		testEntry(200, "chrome", "forced", time.Minute),
		testEntry(300, "explorer.exe", "forced", 2*time.Minute),
	}
	for _, e := range entries {
		if err := l.Append(e); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.ReadRecent(2)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].PID != 300 || got[1].PID != 200 {
		t.Errorf("Expected most-recent-first order [300 200], got [%d %d]", got[0].PID, got[1].PID)
	}
	if got[0].Name != "explorer.exe" || got[0].Method != "forced" {
		t.Errorf("Entry fields not round-tripped: %+v", got[0])
	}
}

func TestFileLedgerReadIsStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kill.log")
	l := NewFileLedger(path)

	for i := int32(1); i <= 5; i++ {
		if err := l.Append(testEntry(i, "p", "graceful", time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	first, err := l.ReadRecent(0)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	second, err := l.ReadRecent(0)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("Repeated reads disagree on length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Position %d differs across reads: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFileLedgerSkipsCorruptLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kill.log")
	l := NewFileLedger(path)

	if err := l.Append(testEntry(1, "good", "graceful", 0)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("Failed to open ledger file: %v", err)
	}
	f.WriteString("this is not json\n")
	f.WriteString("{\"pid\": truncated\n")
	f.WriteString("\n")
	f.Close()

	if err := l.Append(testEntry(2, "also-good", "forced", time.Minute)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := l.ReadRecent(0)
	if err != nil {
		t.Fatalf("ReadRecent should not fail on corrupt lines: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 valid entries, got %d", len(got))
	}
	if got[0].PID != 2 || got[1].PID != 1 {
		t.Errorf("Expected pids [2 1], got [%d %d]", got[0].PID, got[1].PID)
	}
}

func TestFileLedgerSkipsOversizedCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kill.log")
	l := NewFileLedger(path)

	if err := l.Append(testEntry(1, "good", "graceful", 0)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	// One corrupt line far past any fixed scan buffer size
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		t.Fatalf("Failed to open ledger file: %v", err)
	}
	f.WriteString(strings.Repeat("x", 128*1024) + "\n")
	f.Close()

	if err := l.Append(testEntry(2, "also-good", "forced", time.Minute)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	got, err := l.ReadRecent(0)
	if err != nil {
		t.Fatalf("ReadRecent should not fail on an oversized line: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 valid entries, got %d", len(got))
	}
	if got[0].PID != 2 || got[1].PID != 1 {
		t.Errorf("Expected pids [2 1], got [%d %d]", got[0].PID, got[1].PID)
	}
}

func TestFileLedgerMissingFile(t *testing.T) {
	l := NewFileLedger(filepath.Join(t.TempDir(), "does-not-exist.log"))

	got, err := l.ReadRecent(10)
	if err != nil {
		t.Fatalf("Missing ledger should read as empty, got error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no entries, got %d", len(got))
	}
}

func TestDefaultPathEnvOverride(t *testing.T) {
	t.Setenv(EnvLedgerPath, "/tmp/custom-ledger.log")
	if got := DefaultPath(); got != "/tmp/custom-ledger.log" {
		t.Errorf("Expected env override, got %s", got)
	}
}

func TestMemoryLedger(t *testing.T) {
	l := NewMemoryLedger()

	for i := int32(1); i <= 3; i++ {
		if err := l.Append(testEntry(i, "p", "graceful", time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := l.ReadRecent(2)
	if err != nil {
		t.Fatalf("ReadRecent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}
	if got[0].PID != 3 || got[1].PID != 2 {
		t.Errorf("Expected pids [3 2], got [%d %d]", got[0].PID, got[1].PID)
	}
	if l.Len() != 3 {
		t.Errorf("Expected 3 appended entries, got %d", l.Len())
	}
}
