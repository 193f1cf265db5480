package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/spyglass/internal/modules/display"
)

var (
	adviseScores bool
	adviseSave   bool
	adviseNoLLM  bool
)

var adviseCmd = &cobra.Command{
	Use:   "advise",
	Short: "Combine all three analyses into weighted portfolio signals",
	Long: `Runs technical, fundamental, and risk analysis across the whole
universe, combines them with the configured weights, and prints the
ranked signal table. Optionally generates the LLM daily briefing and
persists the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		results, err := a.advisor.RunAll(ctx, a.cfg.Analysis.LookbackDays)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		display.CombinedSummary(out, results)

		if adviseScores {
			for _, r := range results {
				fmt.Fprintf(out, "%s: tech %.2f, fund %.2f, risk %.2f → %.3f\n",
					r.Symbol, r.Normalized.Technical, r.Normalized.Fundamental,
					r.Normalized.Risk, r.CombinedScore)
			}
			fmt.Fprintln(out)
		}

		var briefing string
		if !adviseNoLLM {
			briefing, err = a.advisor.Briefing(ctx, results)
			if err != nil {
				a.log.Error().Err(err).Msg("Briefing generation failed")
			} else if briefing != "" {
				fmt.Fprintf(out, "\n%s\n\n", briefing)
			}
		}

		if adviseSave {
			runID, err := a.advisor.Save(briefing, results)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved run %s\n", runID)
		}
		return nil
	},
}

func init() {
	adviseCmd.Flags().BoolVar(&adviseScores, "scores", false, "print the normalized component scores")
	adviseCmd.Flags().BoolVar(&adviseSave, "save", false, "persist the run's recommendations")
	adviseCmd.Flags().BoolVar(&adviseNoLLM, "no-llm", false, "skip the LLM daily briefing")
}
