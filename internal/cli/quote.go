package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "quote [symbols...]",
	Short: "Print live quotes for the universe or the given symbols",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if a.finnhub == nil {
			return fmt.Errorf("FINNHUB_API_KEY is not set")
		}

		symbols := args
		if len(symbols) == 0 {
			symbols, err = a.universe.TrackedSymbols()
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "  %-7s %10s %9s %8s\n", "Symbol", "Price", "Change", "Pct")
		for _, symbol := range symbols {
			q, err := a.finnhub.GetQuote(cmd.Context(), symbol)
			if err != nil {
				a.log.Error().Err(err).Str("symbol", symbol).Msg("Quote failed")
				continue
			}
			fmt.Fprintf(out, "  %-7s %10.2f %+9.2f %+7.2f%%\n",
				symbol, q.Current, q.Change, q.PercentChange)
		}
		return nil
	},
}
