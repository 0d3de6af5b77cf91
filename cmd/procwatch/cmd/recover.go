package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/procwatch/internal/ledger"
	"github.com/psantana5/procwatch/internal/recovery"
)

var (
	recoverList     bool
	recoverExplorer bool
	recoverAuto     bool
	recoverYes      bool
)

// recoverCmd represents the recover command
var recoverCmd = &cobra.Command{
	Use:   "recover",
	Short: "Inspect the kill ledger and relaunch recoverable processes",
	Long: `Read the recovery ledger written by kill and act on it: list the recent
kills, or relaunch processes that have a known recovery action, such as
the Windows shell (explorer.exe).`,
	RunE: runRecover,
}

func init() {
	rootCmd.AddCommand(recoverCmd)

	recoverCmd.Flags().BoolVar(&recoverList, "list", false, "list recent kills from the ledger")
	recoverCmd.Flags().BoolVar(&recoverExplorer, "restart-explorer", false, "relaunch explorer.exe if it appears in the ledger (Windows only)")
	recoverCmd.Flags().BoolVar(&recoverAuto, "auto", false, "relaunch every recoverable process from the ledger without prompting")
	recoverCmd.Flags().BoolVarP(&recoverYes, "yes", "y", false, "skip confirmation prompts")
}

func runRecover(cmd *cobra.Command, args []string) error {
	adv := recovery.NewAdvisor(recovery.Config{
		Ledger:   getLedger(),
		Launcher: recovery.ExecLauncher{},
		Logger:   log,
	})

	switch {
	case recoverList:
		return runRecoverList(adv)
	case recoverExplorer:
		return runRecoverExplorer(adv)
	case recoverAuto:
		return runRecoverAuto(adv)
	default:
		return cmd.Help()
	}
}

func runRecoverList(adv *recovery.Advisor) error {
	entries, err := adv.Candidates()
	if err != nil {
		return err
	}

	if IsJSONOutput() {
		if entries == nil {
			entries = []ledger.Entry{}
		}
		output, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	if len(entries) == 0 {
		fmt.Println("No kills recorded.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Time", "PID", "Name", "Method")
	for _, e := range entries {
		table.Append(
			e.Time.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d", e.PID),
			e.Name,
			e.Method,
		)
	}
	table.Render()
	return nil
}

func runRecoverExplorer(adv *recovery.Advisor) error {
	if runtime.GOOS != "windows" {
		return fmt.Errorf("--restart-explorer is only available on Windows")
	}

	entries, err := adv.Candidates()
	if err != nil {
		return err
	}

	for _, e := range entries {
		if !strings.EqualFold(e.Name, "explorer.exe") {
			continue
		}
		if !recoverYes && !recoverAuto {
			if !confirm(fmt.Sprintf("Relaunch explorer.exe (killed %s)?", e.Time.Format("15:04:05"))) {
				fmt.Fprintln(os.Stderr, "Aborted.")
				exitCode = 2
				return nil
			}
		}
		return reportRecovery(adv.Recover(e, recoverAuto))
	}

	fmt.Println("No explorer.exe kill found in the ledger.")
	return nil
}

func runRecoverAuto(adv *recovery.Advisor) error {
	entries, err := adv.Candidates()
	if err != nil {
		return err
	}

	// Most recent entry per name wins; older kills of the same process are
	// already superseded.
	seen := map[string]bool{}
	recovered := 0
	for _, e := range entries {
		key := strings.ToLower(e.Name)
		if seen[key] || !adv.Recoverable(e.Name) {
			seen[key] = true
			continue
		}
		seen[key] = true
		if err := reportRecovery(adv.Recover(e, true)); err != nil {
			return err
		}
		recovered++
	}

	if recovered == 0 {
		fmt.Println("Nothing recoverable in the ledger.")
	}
	return nil
}

func reportRecovery(out recovery.Outcome) error {
	switch {
	case out.Err != nil:
		rec.Recovery("failed")
		fmt.Fprintf(os.Stderr, "Failed to relaunch %s: %v\n", out.Entry.Name, out.Err)
		exitCode = 1
	case !out.Attempted:
		rec.Recovery("skipped")
		fmt.Printf("%s: %s\n", out.Entry.Name, out.Message)
	default:
		rec.Recovery("relaunched")
		fmt.Println(out.Message)
	}
	return nil
}
