package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/draftguard/draftguard/internal/config"
	"github.com/draftguard/draftguard/internal/storage"
)

var (
	cfgPath string
	dbPath  string

	cfg   *config.Config
	store storage.Storage
)

var rootCmd = &cobra.Command{
	Use:   "draftguard",
	Short: "Safety gate and threshold controller for AI-generated text",
	Long: `DraftGuard gates copying AI-generated text behind a detectability
risk check, keeps an audit trail of safety overrides, and recommends
threshold adjustments based on override history.

This CLI is an operator tool over the same library the editor UI uses:
inspect and change the threshold, review the override trail, and manage
pending threshold suggestions.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.DatabasePath = dbPath
		}

		store, err = storage.New(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if store != nil {
			_ = store.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".draftguard/config.yaml", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to database (overrides config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
