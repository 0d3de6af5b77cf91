package cmd

import (
	"testing"

	"github.com/psantana5/procwatch/internal/policy"
	"github.com/psantana5/procwatch/internal/snapshot"
	"github.com/psantana5/procwatch/internal/termination"
)

func TestKillExitCode(t *testing.T) {
	tests := []struct {
		name     string
		outcomes []termination.Outcome
		dryRun   bool
		want     int
	}{
		{
			name:     "all graceful",
			outcomes: []termination.Outcome{{Method: termination.MethodGraceful}},
			want:     0,
		},
		{
			name: "failure wins over skip",
			outcomes: []termination.Outcome{
				{Method: termination.MethodSkipped},
				{Method: termination.MethodFailed},
			},
			want: 1,
		},
		{
			name:     "protected skip",
			outcomes: []termination.Outcome{{Method: termination.MethodSkipped}},
			want:     2,
		},
		{
			name:     "dry-run skip is informational",
			outcomes: []termination.Outcome{{Method: termination.MethodSkipped}},
			dryRun:   true,
			want:     0,
		},
		{
			name:     "no outcomes",
			outcomes: nil,
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := killExitCode(tt.outcomes, tt.dryRun); got != tt.want {
				t.Errorf("killExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProtectedTargets(t *testing.T) {
	records := []snapshot.Record{
		{PID: 100, Name: "firefox"},
		{PID: 300, Name: "explorer.exe"},
		{PID: 400, Name: "lsass.exe"},
	}
	protected := policy.Default()

	got := protectedTargets(records, protected, []string{"firefox", "EXPLORER.EXE", "300", "lsass.exe", "9999"})

	if len(got) != 2 {
		t.Fatalf("Expected 2 protected names, got %v", got)
	}
	if got[0] != "explorer.exe" || got[1] != "lsass.exe" {
		t.Errorf("Unexpected protected names: %v", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
