package policy

import "testing"

func TestProtectedSetCaseInsensitive(t *testing.T) {
	set := NewProtectedSet([]string{"Explorer.EXE", "lsass.exe"})

	for _, name := range []string{"explorer.exe", "EXPLORER.EXE", "Explorer.exe", "lsass.exe"} {
		if !set.Contains(name) {
			t.Errorf("Expected %q to be protected", name)
		}
	}
	if set.Contains("notepad.exe") {
		t.Error("notepad.exe should not be protected")
	}
}

func TestDefaultSetCoversSessionProcesses(t *testing.T) {
	set := Default()

	for _, name := range []string{"explorer.exe", "winlogon.exe", "lsass.exe", "csrss.exe", "system"} {
		if !set.Contains(name) {
			t.Errorf("Default set missing %q", name)
		}
	}
}

func TestNewProtectedSetIgnoresBlankNames(t *testing.T) {
	set := NewProtectedSet([]string{"", "  ", "dwm.exe"})

	if set.Contains("") {
		t.Error("Empty name should never be protected")
	}
	if got := len(set.Names()); got != 1 {
		t.Errorf("Expected 1 name, got %d: %v", got, set.Names())
	}
}

func TestNamesSorted(t *testing.T) {
	set := NewProtectedSet([]string{"zeta", "alpha", "mid"})

	names := set.Names()
	want := []string{"alpha", "mid", "zeta"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Position %d: expected %s, got %s", i, want[i], names[i])
		}
	}
}
