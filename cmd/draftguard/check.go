package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/draftguard/draftguard/internal/gate"
	"github.com/draftguard/draftguard/internal/scorer"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Run the safety gate on a text file",
	Long: `Evaluate a text file against the active safety threshold using the
configured scoring backend. Reads stdin when the file is "-".

Exits 0 on pass and 2 on warn, so the check can be scripted. An
unreachable scorer passes, matching the gate's in-app behavior.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			data []byte
			err  error
		)
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		client, err := scorer.NewClient(&scorer.Config{
			BaseURL: cfg.ScorerURL,
			Timeout: cfg.ScorerTimeout,
		})
		if err != nil {
			return err
		}

		g, err := gate.New(&gate.Config{Source: store, Provider: client})
		if err != nil {
			return err
		}

		outcome := g.Evaluate(context.Background(), string(data))

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		gray := color.New(color.FgHiBlack).SprintFunc()

		if !outcome.Warned() {
			if outcome.Result != nil {
				fmt.Printf("%s score %.1f < threshold %d\n", green("PASS"), outcome.Result.Score, outcome.Result.Threshold)
			} else {
				fmt.Printf("%s %s\n", green("PASS"), gray("(scorer unavailable)"))
			}
			return nil
		}

		fmt.Printf("%s score %.1f >= threshold %d\n", red("WARN"), outcome.Result.Score, outcome.Result.Threshold)
		for _, fs := range outcome.Result.FlaggedSentences {
			fmt.Printf("  [%d] %s\n", fs.Index, fs.Text)
			if fs.Suggestion != "" {
				fmt.Printf("      %s %s\n", gray("suggestion:"), fs.Suggestion)
			}
		}

		os.Exit(2)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
