package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/psantana5/procwatch/internal/policy"
	"github.com/psantana5/procwatch/internal/snapshot"
	"github.com/psantana5/procwatch/internal/termination"
)

var (
	killForce  bool
	killNine   bool
	killSignal string
	killDryRun bool
	killYes    bool
	killGrace  time.Duration
)

// killCmd represents the kill command
var killCmd = &cobra.Command{
	Use:   "kill <pid|name> [pid|name...]",
	Short: "Terminate processes by pid or name",
	Long: `Terminate one or more processes, identified by pid or by name. The
default is graceful termination escalating to a forced kill after the
grace period. Protected system processes are skipped unless --force is
given and the kill is confirmed. Every successful kill is recorded in
the recovery ledger.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runKill,
}

func init() {
	rootCmd.AddCommand(killCmd)

	killCmd.Flags().BoolVarP(&killForce, "force", "f", false, "skip graceful termination, kill immediately")
	killCmd.Flags().BoolVarP(&killNine, "9", "9", false, "alias for --force")
	killCmd.Flags().StringVarP(&killSignal, "signal", "s", "", "send a specific signal instead of escalating (e.g. TERM, KILL, 15)")
	killCmd.Flags().BoolVar(&killDryRun, "dry-run", false, "show what would be killed without doing it")
	killCmd.Flags().BoolVarP(&killYes, "yes", "y", false, "confirm killing protected processes without prompting")
	killCmd.Flags().DurationVar(&killGrace, "grace-period", 0, "time to wait for graceful exit before forcing (default from config, 3s)")
}

func runKill(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	force := killForce || killNine

	snap, err := snapshot.Capture(ctx, snapshot.SystemProber{}, snapshot.Filter{IncludeAll: true})
	if err != nil {
		return err
	}
	rec.Snapshot()

	protected := getProtected()
	confirmed := killYes
	if force && !confirmed && !killDryRun {
		if names := protectedTargets(snap.Records, protected, args); len(names) > 0 {
			confirmed = confirm(fmt.Sprintf("Protected: %s. Kill anyway?", strings.Join(names, ", ")))
			if !confirmed {
				// Declining only withholds confirmation; the engine skips
				// the protected targets and the rest of the batch proceeds.
				fmt.Fprintln(os.Stderr, "Protected targets will be skipped.")
			}
		}
	}

	engine := termination.NewEngine(termination.Config{
		Signaller: termination.NewSignaller(),
		Protected: protected,
		Ledger:    getLedger(),
		Snapshot: func(context.Context) ([]snapshot.Record, error) {
			return snap.Records, nil
		},
		GracePeriod: getGracePeriod(),
		Logger:      log,
	})

	outcomes, err := engine.Terminate(ctx, termination.Request{
		Targets:     args,
		Force:       force,
		DryRun:      killDryRun,
		Confirmed:   confirmed,
		Signal:      killSignal,
		GracePeriod: killGrace,
	})
	if err != nil {
		return err
	}

	for _, out := range outcomes {
		rec.Termination(out.Method.String())
	}

	if IsJSONOutput() {
		output, err := json.MarshalIndent(outcomes, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
	} else {
		printOutcomes(outcomes)
	}

	exitCode = killExitCode(outcomes, killDryRun)
	return nil
}

func printOutcomes(outcomes []termination.Outcome) {
	for _, out := range outcomes {
		switch out.Method {
		case termination.MethodFailed:
			fmt.Fprintf(os.Stderr, "Failed to kill %s: %s\n", out.Target, out.Reason)
		case termination.MethodSkipped:
			fmt.Fprintf(os.Stderr, "Skipped %s (pid %d): protected process, use --force to override\n", out.Name, out.PID)
		default:
			if out.Reason == "dry-run" {
				fmt.Printf("[dry-run] would kill %s (pid %d) [%s]\n", out.Name, out.PID, out.Method)
			} else {
				fmt.Printf("Killed %s (pid %d) [%s]\n", out.Name, out.PID, out.Method)
			}
		}
	}
}

// killExitCode maps outcomes to the process exit code: failures win over
// skips, dry-run skips are informational only.
func killExitCode(outcomes []termination.Outcome, dryRun bool) int {
	code := 0
	for _, out := range outcomes {
		switch out.Method {
		case termination.MethodFailed:
			return 1
		case termination.MethodSkipped:
			if !dryRun {
				code = 2
			}
		}
	}
	return code
}

// protectedTargets returns the protected names the given targets resolve to.
func protectedTargets(records []snapshot.Record, protected *policy.ProtectedSet, targets []string) []string {
	var names []string
	seen := map[string]bool{}
	for _, target := range targets {
		r, ok := termination.Resolve(records, target)
		if !ok || !protected.Contains(r.Name) {
			continue
		}
		key := strings.ToLower(r.Name)
		if !seen[key] {
			seen[key] = true
			names = append(names, r.Name)
		}
	}
	return names
}

// confirm prompts on stderr and reads a y/N answer from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
