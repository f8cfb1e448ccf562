package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/draftguard/draftguard/internal/clipboard"
	"github.com/draftguard/draftguard/internal/gate"
	"github.com/draftguard/draftguard/internal/scorer"
	"github.com/draftguard/draftguard/internal/types"
	"github.com/draftguard/draftguard/internal/workflow"
)

var (
	copyProposalID int64
	copyIntensity  string
)

var copyCmd = &cobra.Command{
	Use:   "copy <file>",
	Short: "Run the gated copy flow on a text file",
	Long: `Run the full copy workflow on a text file: evaluate it against the
safety threshold, and on a warning walk through the same edit/override
flow the editor UI uses. A completed override is recorded in the audit
trail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
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

		intensity, err := types.ParseIntensity(copyIntensity)
		if err != nil {
			return err
		}

		session, err := workflow.NewSession(&workflow.Config{
			ProposalID: copyProposalID,
			Content:    string(data),
			Intensity:  intensity,
			Gate:       g,
			Clipboard:  clipboard.System{},
			Audit:      store,
		})
		if err != nil {
			return err
		}

		ctx := context.Background()
		state, err := session.Evaluate(ctx)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		if state == workflow.StatePassCopied {
			fmt.Printf("%s Copied to clipboard\n", green("✓"))
			return nil
		}

		return runWarningFlow(ctx, session)
	},
}

// runWarningFlow drives the warning and confirmation surfaces on the
// terminal. Empty input and anything unrecognized take the safe path.
func runWarningFlow(ctx context.Context, session *workflow.Session) error {
	yellow := color.New(color.FgYellow, color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()

	for {
		result := session.Result()
		fmt.Printf("\n%s score %.1f >= threshold %d\n",
			yellow("⚠ Detectability warning:"), result.Score, result.Threshold)
		for _, fs := range result.FlaggedSentences {
			fmt.Printf("  [%d] %s\n", fs.Index, fs.Text)
			if fs.Suggestion != "" {
				fmt.Printf("      %s %s\n", gray("suggestion:"), fs.Suggestion)
			}
		}

		if available, reason := session.RegenerateAvailable(); !available && reason != "" {
			fmt.Printf("  %s\n", gray(fmt.Sprintf("(regenerate unavailable: %s)", reason)))
		}

		choice, err := promptLine("\n[e]dit / [o]verride / anything else cancels: ")
		if err != nil {
			return err
		}

		switch strings.ToLower(choice) {
		case "o", "override":
			prompt, err := session.RequestOverride()
			if err != nil {
				return err
			}

			// Distinct confirmation surface; default is cancel
			fmt.Printf("\n%s\n%s\n", red("Override safety warning?"), prompt.Consequences)
			confirm, err := promptLine("Type 'override' to confirm, anything else cancels: ")
			if err != nil {
				return err
			}
			if strings.ToLower(confirm) != "override" {
				if err := session.CancelOverride(); err != nil {
					return err
				}
				continue
			}

			if err := session.ConfirmOverride(ctx); err != nil {
				return err
			}
			fmt.Printf("%s Copied to clipboard (override recorded)\n", green("✓"))
			return nil

		default:
			if err := session.Dismiss(); err != nil {
				return err
			}
			fmt.Println("Not copied; back to editing.")
			return nil
		}
	}
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(response), nil
}

func init() {
	copyCmd.Flags().Int64Var(&copyProposalID, "proposal-id", 0, "Proposal ID recorded with an override")
	copyCmd.Flags().StringVar(&copyIntensity, "intensity", "off", "Humanization intensity the text was generated with (off/light/medium/heavy)")
	rootCmd.AddCommand(copyCmd)
}
