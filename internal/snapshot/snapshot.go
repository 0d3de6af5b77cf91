// Package snapshot captures point-in-time views of the live process table,
// sorted so the heaviest memory consumers come first.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrPlatformUnavailable indicates no process enumeration mechanism works on
// this host. A capture that fails this way returns no data at all; callers
// must not treat it as an empty-but-valid snapshot.
var ErrPlatformUnavailable = errors.New("process enumeration unavailable")

// Prober supplies raw process and memory data from the platform.
// SystemProber is the real backend; tests inject fakes.
type Prober interface {
	// Processes returns one sample per live process.
	Processes(ctx context.Context) ([]Proc, error)
	// Memory returns total and used physical memory in bytes.
	Memory(ctx context.Context) (total, used uint64, err error)
}

// Capture enumerates the process table through p, classifies each process,
// computes memory percentages against total system memory, and returns the
// records sorted by descending memory usage (ascending pid on ties).
// Unless f.IncludeAll is set the result is truncated to f.Limit.
func Capture(ctx context.Context, p Prober, f Filter) (*Snapshot, error) {
	procs, err := p.Processes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}

	total, used, err := p.Memory(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlatformUnavailable, err)
	}

	records := make([]Record, 0, len(procs))
	for _, pr := range procs {
		rec := Record{
			PID:         pr.PID,
			Name:        pr.Name,
			Owner:       Classify(pr),
			MemoryBytes: pr.RSS,
		}
		if total > 0 {
			rec.MemoryPercent = float64(pr.RSS) / float64(total) * 100
			if rec.MemoryPercent > 100 {
				rec.MemoryPercent = 100
			}
		}
		records = append(records, rec)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].MemoryBytes != records[j].MemoryBytes {
			return records[i].MemoryBytes > records[j].MemoryBytes
		}
		return records[i].PID < records[j].PID
	})

	if !f.IncludeAll {
		limit := f.Limit
		if limit <= 0 {
			limit = DefaultLimit
		}
		if len(records) > limit {
			records = records[:limit]
		}
	}

	return &Snapshot{
		TakenAt:  time.Now(),
		MemTotal: total,
		MemUsed:  used,
		Records:  records,
	}, nil
}
