package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configShowOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  `Commands for inspecting the effective procwatch configuration.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Print the configuration procwatch is running with after merging the
config file, environment variables and flags.`,
	RunE: runConfigShow,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().StringVarP(&configShowOutput, "output", "o", "text",
		"Output format: text, json, yaml")
}

type effectiveConfig struct {
	LedgerPath  string   `json:"ledger_path" yaml:"ledger_path"`
	GracePeriod string   `json:"grace_period" yaml:"grace_period"`
	TopLimit    int      `json:"top_limit" yaml:"top_limit"`
	LogLevel    string   `json:"log_level" yaml:"log_level"`
	Protected   []string `json:"protected" yaml:"protected"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig{
		LedgerPath:  getLedger().Path(),
		GracePeriod: getGracePeriod().String(),
		TopLimit:    viper.GetInt("top_limit"),
		LogLevel:    log.GetLevel().String(),
		Protected:   getProtected().Names(),
	}

	switch configShowOutput {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)

	case "yaml":
		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		return encoder.Encode(cfg)

	default: // text
		fmt.Printf("Ledger:       %s\n", cfg.LedgerPath)
		fmt.Printf("Grace period: %s\n", cfg.GracePeriod)
		fmt.Printf("Top limit:    %d\n", cfg.TopLimit)
		fmt.Printf("Log level:    %s\n", cfg.LogLevel)
		fmt.Println("Protected:")
		for _, name := range cfg.Protected {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}
}
