package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var overridesDays int

var overridesCmd = &cobra.Command{
	Use:   "overrides",
	Short: "Show the safety override audit trail",
	Long: `List recorded safety overrides: times the user chose to copy
content despite an active detectability warning.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		since := time.Now().Add(-time.Duration(overridesDays) * 24 * time.Hour)
		records, err := store.ListOverridesSince(context.Background(), since)
		if err != nil {
			return fmt.Errorf("failed to list overrides: %w", err)
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		fmt.Printf("%s\n", yellow(fmt.Sprintf("Safety overrides (last %d days):", overridesDays)))
		if len(records) == 0 {
			fmt.Printf("  %s\n", gray("No overrides recorded"))
			return nil
		}

		for _, rec := range records {
			margin := rec.AIScore - float64(rec.Threshold)
			line := fmt.Sprintf("  %s  proposal %d  score %.1f (threshold %d, +%.1f)",
				rec.Timestamp.Local().Format("2006-01-02 15:04"),
				rec.ProposalID, rec.AIScore, rec.Threshold, margin)
			if margin >= 20 {
				fmt.Println(red(line))
			} else {
				fmt.Println(line)
			}
			if rec.RegenAttempts > 0 {
				fmt.Printf("      %s\n", gray(fmt.Sprintf("after %d regeneration attempt(s)", rec.RegenAttempts)))
			}
		}
		fmt.Printf("\n  Total: %d\n", len(records))
		return nil
	},
}

func init() {
	overridesCmd.Flags().IntVar(&overridesDays, "days", 30, "Lookback window in days")
	rootCmd.AddCommand(overridesCmd)
}
