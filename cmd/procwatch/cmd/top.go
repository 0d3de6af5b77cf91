package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/procwatch/internal/snapshot"
)

var (
	topWatch   float64
	topLimit   int
	topShowAll bool
)

// topCmd represents the top command
var topCmd = &cobra.Command{
	Use:     "top [interval]",
	Aliases: []string{"htop"},
	Short:   "Show the processes using the most memory",
	Long: `Capture a snapshot of the process table sorted by resident memory and
display the top consumers. With --watch the snapshot refreshes in place
until interrupted; the interval can be given as --watch=N or as a
trailing argument (--watch 2).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTop,
}

func init() {
	rootCmd.AddCommand(topCmd)

	topCmd.Flags().Float64Var(&topWatch, "watch", 0, "refresh every N seconds until interrupted")
	topCmd.Flags().Lookup("watch").NoOptDefVal = "1"
	topCmd.Flags().IntVarP(&topLimit, "top", "n", 0, "number of processes to show (default from config, 10)")
	topCmd.Flags().BoolVar(&topShowAll, "all", false, "show every process instead of the top N")
}

func runTop(cmd *cobra.Command, args []string) error {
	limit := topLimit
	if limit <= 0 {
		limit = viper.GetInt("top_limit")
	}
	filter := snapshot.Filter{Limit: limit, IncludeAll: topShowAll}
	prober := snapshot.SystemProber{}

	watch, err := watchInterval(cmd.Flags().Changed("watch"), topWatch, args)
	if err != nil {
		return err
	}

	if watch <= 0 {
		snap, err := snapshot.Capture(cmd.Context(), prober, filter)
		if err != nil {
			return err
		}
		rec.Snapshot()
		return renderSnapshot(snap)
	}

	interval := time.Duration(watch * float64(time.Second))
	if interval < 100*time.Millisecond {
		interval = 100 * time.Millisecond
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap, err := snapshot.Capture(ctx, prober, filter)
		if err != nil {
			if stopErr := watchCaptureErr(ctx, err); stopErr != nil {
				return stopErr
			}
			fmt.Println()
			return nil
		}
		rec.Snapshot()

		// Clear screen and home the cursor before each refresh
		fmt.Print("\033[H\033[2J")
		if err := renderSnapshot(snap); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			fmt.Println()
			return nil
		case <-ticker.C:
		}
	}
}

func renderSnapshot(snap *snapshot.Snapshot) error {
	if IsJSONOutput() {
		output, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Memory: %s / %s (%.1f%%)  Processes: %d  %s\n\n",
		formatBytes(snap.MemUsed),
		formatBytes(snap.MemTotal),
		memPercent(snap),
		len(snap.Records),
		snap.TakenAt.Format("15:04:05"),
	)

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("PID", "Name", "Type", "Memory", "Mem%")
	for _, r := range snap.Records {
		table.Append(
			fmt.Sprintf("%d", r.PID),
			r.Name,
			r.Owner.String(),
			formatBytes(r.MemoryBytes),
			fmt.Sprintf("%.1f", r.MemoryPercent),
		)
	}
	table.Render()
	return nil
}

// watchCaptureErr maps a failed capture inside the watch loop to the loop's
// result. An interrupt arriving mid-capture is a normal stop, not a probe
// failure, so cancellation yields nil.
func watchCaptureErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// watchInterval resolves the refresh interval in seconds. The --watch flag
// takes no attached value by default, so a space-separated interval arrives
// as a positional argument; it overrides the flag's own value. A positional
// without --watch is rejected rather than silently ignored.
func watchInterval(watchSet bool, flagValue float64, args []string) (float64, error) {
	if len(args) == 0 {
		if !watchSet {
			return 0, nil
		}
		return flagValue, nil
	}
	if !watchSet {
		return 0, fmt.Errorf("unexpected argument %q (did you mean --watch %s?)", args[0], args[0])
	}
	n, err := strconv.ParseFloat(args[0], 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid watch interval %q", args[0])
	}
	return n, nil
}

func memPercent(snap *snapshot.Snapshot) float64 {
	if snap.MemTotal == 0 {
		return 0
	}
	return float64(snap.MemUsed) / float64(snap.MemTotal) * 100
}

// formatBytes renders a byte count with a binary unit suffix.
func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
