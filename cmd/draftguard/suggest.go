package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/draftguard/draftguard/internal/learner"
	"github.com/draftguard/draftguard/internal/types"
)

var (
	suggestApply   bool
	suggestDismiss bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the pending threshold suggestion",
	Long: `Evaluate the override history against the learner's rules and show
the resulting threshold suggestion, if any. Use --apply to accept it
(persisted through the same validated path as a manual change) or
--dismiss to suppress it for the configured cooldown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if suggestApply && suggestDismiss {
			return fmt.Errorf("--apply and --dismiss are mutually exclusive")
		}

		ctx := context.Background()
		advisor, err := learner.NewAdvisor(&learner.Config{
			Store:    store,
			Cooldown: cfg.SuggestionCooldown,
		})
		if err != nil {
			return err
		}

		suggestion, err := advisor.Pending(ctx)
		if err != nil {
			return err
		}

		gray := color.New(color.FgHiBlack).SprintFunc()
		if suggestion == nil {
			fmt.Printf("%s\n", gray("No threshold suggestion pending"))
			return nil
		}

		printSuggestion(suggestion)

		switch {
		case suggestApply:
			if err := advisor.Apply(ctx, suggestion); err != nil {
				return err
			}
			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("\n%s Threshold set to %d\n", green("✓"), suggestion.SuggestedThreshold)
		case suggestDismiss:
			if err := advisor.Dismiss(ctx, suggestion); err != nil {
				return err
			}
			fmt.Printf("\nSuggestion dismissed for %v\n", cfg.SuggestionCooldown)
		}
		return nil
	},
}

func printSuggestion(s *types.ThresholdSuggestion) {
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()

	switch s.Direction {
	case types.DirectionIncrease:
		fmt.Printf("%s\n", yellow("Suggestion: raise the safety threshold"))
		fmt.Printf("  %s → %s\n", cyan(fmt.Sprintf("%d", s.CurrentThreshold)), cyan(fmt.Sprintf("%d", s.SuggestedThreshold)))
		fmt.Printf("  %d recent overrides landed just above the threshold (avg score %.1f)\n",
			s.SuccessfulOverrideCount, s.AverageOverrideScore)
	case types.DirectionDecrease:
		fmt.Printf("%s\n", yellow("Suggestion: reset the safety threshold"))
		fmt.Printf("  %s → %s\n", cyan(fmt.Sprintf("%d", s.CurrentThreshold)), cyan(fmt.Sprintf("%d", s.SuggestedThreshold)))
		fmt.Printf("  No overrides in the last 60 days; the stricter default is enough\n")
	case types.DirectionAtMaximum:
		fmt.Printf("%s\n", yellow("Threshold at maximum"))
		fmt.Printf("  %d recent overrides landed just above %d, but the threshold cannot go higher\n",
			s.SuccessfulOverrideCount, s.CurrentThreshold)
	}
}

func init() {
	suggestCmd.Flags().BoolVar(&suggestApply, "apply", false, "Accept the suggestion")
	suggestCmd.Flags().BoolVar(&suggestDismiss, "dismiss", false, "Dismiss the suggestion for the cooldown period")
	rootCmd.AddCommand(suggestCmd)
}
