package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/draftguard/draftguard/internal/types"
)

var thresholdCmd = &cobra.Command{
	Use:   "threshold",
	Short: "Inspect or change the safety threshold",
}

var thresholdGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the active safety threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		threshold, err := store.GetSafetyThreshold(context.Background())
		if err != nil {
			return fmt.Errorf("failed to read threshold: %w", err)
		}

		cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
		fmt.Printf("Safety threshold: %s\n", cyan(strconv.Itoa(threshold)))
		fmt.Printf("Domain: [%d,%d] step %d (default %d)\n",
			types.ThresholdMin, types.ThresholdMax, types.ThresholdStep, types.DefaultThreshold)
		return nil
	},
}

var thresholdSetCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set the safety threshold",
	Long: `Set the safety threshold. The value must be in [140,220] and a
multiple of 10; anything else is rejected before persistence.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("threshold must be an integer: %w", err)
		}

		if err := store.SetSafetyThreshold(context.Background(), value); err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Safety threshold set to %d\n", green("✓"), value)
		return nil
	},
}

func init() {
	thresholdCmd.AddCommand(thresholdGetCmd)
	thresholdCmd.AddCommand(thresholdSetCmd)
	rootCmd.AddCommand(thresholdCmd)
}
