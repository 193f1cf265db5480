package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aristath/spyglass/internal/modules/display"
	"github.com/aristath/spyglass/internal/modules/scoring"
)

var (
	analyzeDays      int
	analyzeVerbose   bool
	analyzeNarrative bool
	fundRefresh      bool
	riskCorr         bool
)

var technicalCmd = &cobra.Command{
	Use:   "technical [symbols...]",
	Short: "Score the universe on technical indicators",
	Long: `Computes moving averages, MACD, RSI, Bollinger Bands, and volume
indicators from stored daily prices and scores each symbol on a
[-10,+10] scale. With no arguments the whole universe is analyzed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		var results []scoring.TechnicalResult
		if len(args) > 0 {
			for _, symbol := range args {
				results = append(results, a.technical.Analyze(symbol, analyzeDays))
			}
		} else {
			results, err = a.technical.AnalyzeAll(analyzeDays)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		display.TechnicalSummary(out, results)

		if analyzeVerbose {
			for _, r := range results {
				display.TechnicalDetail(out, r)
			}
		}

		if analyzeNarrative {
			if a.narrator == nil {
				a.log.Warn().Msg("ANTHROPIC_API_KEY not set, skipping narratives")
				return nil
			}
			for _, r := range results {
				text, err := a.narrator.TechnicalNarrative(cmd.Context(), r)
				if err != nil {
					a.log.Error().Err(err).Str("symbol", r.Symbol).Msg("Narrative failed")
					continue
				}
				fmt.Fprintf(out, "%s: %s\n\n", r.Symbol, text)
			}
		}
		return nil
	},
}

var fundamentalCmd = &cobra.Command{
	Use:   "fundamental [symbols...]",
	Short: "Score the universe on valuation, yield, and cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		var results []scoring.FundamentalResult
		if len(args) > 0 {
			for _, symbol := range args {
				results = append(results, a.fundamental.Analyze(ctx, symbol, fundRefresh))
			}
		} else {
			results, err = a.fundamental.AnalyzeAll(ctx, fundRefresh)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		display.FundamentalSummary(out, results)

		if analyzeVerbose {
			for _, r := range results {
				fmt.Fprintf(out, "%s (%s):\n", r.Symbol, r.ETFType)
				for _, reason := range r.Reasons {
					fmt.Fprintf(out, "  • %s\n", reason)
				}
				fmt.Fprintln(out)
			}
		}

		if analyzeNarrative {
			if a.narrator == nil {
				a.log.Warn().Msg("ANTHROPIC_API_KEY not set, skipping narratives")
				return nil
			}
			for _, r := range results {
				text, err := a.narrator.FundamentalNarrative(ctx, r)
				if err != nil {
					a.log.Error().Err(err).Str("symbol", r.Symbol).Msg("Narrative failed")
					continue
				}
				fmt.Fprintf(out, "%s: %s\n\n", r.Symbol, text)
			}
		}
		return nil
	},
}

var riskCmd = &cobra.Command{
	Use:   "risk [symbols...]",
	Short: "Score the universe on volatility, drawdown, and Sharpe",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		riskFree := a.economics.RiskFreeRate()

		var results []scoring.RiskResult
		if len(args) > 0 {
			for _, symbol := range args {
				results = append(results, a.risk.Analyze(symbol, analyzeDays, riskFree))
			}
		} else {
			results, err = a.risk.AnalyzeAll(analyzeDays)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		display.RiskSummary(out, results)

		if analyzeVerbose {
			for _, r := range results {
				display.RiskDetail(out, r)
			}
		}

		if riskCorr {
			symbols := args
			if len(symbols) == 0 {
				symbols, err = a.universe.TrackedSymbols()
				if err != nil {
					return err
				}
			}
			matrix, err := a.risk.CorrelationMatrix(symbols, analyzeDays)
			if err != nil {
				return err
			}
			display.CorrelationMatrix(out, matrix)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{technicalCmd, fundamentalCmd, riskCmd} {
		c.Flags().IntVar(&analyzeDays, "days", 252, "trading-day lookback window")
		c.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "show per-symbol breakdowns")
	}
	technicalCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "generate LLM narratives")
	fundamentalCmd.Flags().BoolVar(&analyzeNarrative, "narrative", false, "generate LLM narratives")
	fundamentalCmd.Flags().BoolVar(&fundRefresh, "refresh", false, "refresh metrics from the provider")
	riskCmd.Flags().BoolVar(&riskCorr, "corr", false, "print the return correlation matrix")
}
