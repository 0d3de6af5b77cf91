package snapshot

import (
	"context"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemProber enumerates live processes via gopsutil.
type SystemProber struct{}

// Processes samples every live process. Per-process attribute failures are
// tolerated (the process may have exited mid-scan); only a failure to
// enumerate at all is an error.
func (SystemProber) Processes(ctx context.Context) ([]Proc, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Proc, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// Exited between enumeration and inspection
			continue
		}

		pr := Proc{PID: p.Pid, Name: name}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			pr.RSS = mi.RSS
		}
		if username, err := p.UsernameWithContext(ctx); err == nil {
			pr.Username = username
		}
		if ppid, err := p.PpidWithContext(ctx); err == nil {
			pr.PPID = ppid
		}
		out = append(out, pr)
	}
	return out, nil
}

// Memory returns total and used physical memory in bytes.
func (SystemProber) Memory(ctx context.Context) (uint64, uint64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, 0, err
	}
	return vm.Total, vm.Used, nil
}
