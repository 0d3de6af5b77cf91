package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/procwatch/internal/ledger"
	"github.com/psantana5/procwatch/internal/metrics"
	"github.com/psantana5/procwatch/internal/policy"
)

var (
	cfgFile      string
	outputFormat string
	verbose      bool
	metricsFile  string
	ledgerPath   string

	log zerolog.Logger
	rec = metrics.NewRecorder()

	// exitCode carries partial-failure results that are not command errors:
	// 1 for failed targets, 2 for protected skips or declined confirmations.
	exitCode int
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "procwatch",
	Short: "CLI for inspecting, terminating and recovering processes",
	Long: `procwatch is a command line interface for watching the process table,
terminating processes with graceful-to-forced escalation, and relaunching
recoverable processes from its kill ledger.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if metricsFile == "" {
			return nil
		}
		if err := rec.WriteTextfile(metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics textfile: %w", err)
		}
		return nil
	},
}

// Execute runs the root command and maps the result to a process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return exitCode
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.procwatch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path on exit")
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "", "kill ledger path (default from config or $HOME/.procwatch/kill.log)")
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory with name ".procwatch/config" (without extension)
		configDir := filepath.Join(home, ".procwatch")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// Bind specific environment variables
	viper.BindEnv("ledger_path", ledger.EnvLedgerPath)
	viper.BindEnv("log_level", "PROCWATCH_LOG_LEVEL")

	viper.SetDefault("grace_period", "3s")
	viper.SetDefault("top_limit", 10)

	// If a config file is found, read it in; a missing file is fine
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}

	if ledgerPath == "" {
		ledgerPath = viper.GetString("ledger_path")
	}

	log = newLogger()
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if raw := viper.GetString("log_level"); raw != "" {
		if parsed, err := zerolog.ParseLevel(raw); err == nil {
			level = parsed
		}
	}
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}

// getLedger opens the kill ledger at the configured path.
func getLedger() *ledger.FileLedger {
	path := ledgerPath
	if path == "" {
		path = ledger.DefaultPath()
	}
	return ledger.NewFileLedger(path)
}

// getProtected builds the protection policy: the built-in set plus any
// extra names from the "protected" config key.
func getProtected() *policy.ProtectedSet {
	names := policy.DefaultProtectedNames()
	names = append(names, viper.GetStringSlice("protected")...)
	return policy.NewProtectedSet(names)
}

func getGracePeriod() time.Duration {
	d := viper.GetDuration("grace_period")
	if d <= 0 {
		d = 3 * time.Second
	}
	return d
}
