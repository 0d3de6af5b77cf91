package snapshot

import "strings"

// systemNames are well-known kernel/session processes across platforms.
// Killing one of these typically takes the session down with it; snapshot
// only classifies here, protection is the policy package's job.
var systemNames = map[string]struct{}{
	"system":              {},
	"system idle process": {},
	"registry":            {},
	"smss.exe":            {},
	"csrss.exe":           {},
	"wininit.exe":         {},
	"winlogon.exe":        {},
	"lsass.exe":           {},
	"systemd":             {},
	"init":                {},
	"kthreadd":            {},
	"launchd":             {},
	"kernel_task":         {},
}

// serviceUsers are accounts that daemons and OS services run under.
var serviceUsers = map[string]struct{}{
	"root":                 {},
	"daemon":               {},
	"system":               {},
	"local service":        {},
	"network service":      {},
	"nt authority\\system": {},
}

// Classify assigns an owner kind with a best-effort heuristic: well-known
// system names first, then service accounts and direct children of pid 1,
// everything else is a user process.
func Classify(p Proc) OwnerKind {
	name := strings.ToLower(p.Name)
	if _, ok := systemNames[name]; ok {
		return OwnerSystem
	}
	// pid 0 and pid 4 are the idle and System processes on Windows
	if p.PID == 0 || p.PID == 4 {
		return OwnerSystem
	}
	if _, ok := serviceUsers[strings.ToLower(p.Username)]; ok {
		return OwnerService
	}
	if p.PPID == 1 && p.PID != 1 {
		return OwnerService
	}
	return OwnerUser
}
