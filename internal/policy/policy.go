// Package policy decides which processes must not be terminated without an
// explicit, deliberate override. Killing the components that manage the
// desktop session, authentication, or low-level OS services can leave the
// machine non-interactive, so those require force plus confirmation.
package policy

import (
	"sort"
	"strings"
)

// DefaultProtectedNames returns the built-in protected process names.
func DefaultProtectedNames() []string {
	return []string{
		"explorer.exe",
		"winlogon.exe",
		"lsass.exe",
		"csrss.exe",
		"dwm.exe",
		"svchost.exe",
		"services.exe",
		"System",
		"System Idle Process",
		"sihost.exe",
	}
}

// ProtectedSet is an immutable, case-insensitive set of process names whose
// termination risks system instability. Construct once at startup and share.
type ProtectedSet struct {
	names map[string]struct{}
}

// NewProtectedSet builds a set from names; matching is case-insensitive.
func NewProtectedSet(names []string) *ProtectedSet {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		set[strings.ToLower(n)] = struct{}{}
	}
	return &ProtectedSet{names: set}
}

// Default returns a set holding the built-in protected names.
func Default() *ProtectedSet {
	return NewProtectedSet(DefaultProtectedNames())
}

// Contains reports whether name is protected. Pure membership test, no I/O.
func (s *ProtectedSet) Contains(name string) bool {
	_, ok := s.names[strings.ToLower(name)]
	return ok
}

// Names returns the protected names in sorted order, for display.
func (s *ProtectedSet) Names() []string {
	out := make([]string, 0, len(s.names))
	for n := range s.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
