package cli

import (
	"github.com/spf13/cobra"
)

var (
	collectPrices    bool
	collectEconomics bool
	collectProfiles  bool
)

var collectCmd = &cobra.Command{
	Use:   "collect [symbols...]",
	Short: "Fetch daily prices, economic indicators, and profiles",
	Long: `Runs the data collection pass: recent daily prices for the tracked
universe (or the given symbols), the tracked FRED series, and security
profiles. With no flags everything is collected; flags restrict the pass
to the named sources.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		// No flags means collect everything.
		all := !collectPrices && !collectEconomics && !collectProfiles
		ctx := cmd.Context()

		if all || collectPrices {
			if err := a.collector.CollectMarketData(ctx, args, "compact"); err != nil {
				return err
			}
		}
		if all || collectEconomics {
			if err := a.collector.CollectEconomicIndicators(ctx); err != nil {
				return err
			}
		}
		if all || collectProfiles {
			if err := a.collector.CollectProfiles(ctx, args); err != nil {
				return err
			}
		}
		return nil
	},
}

var backfillCmd = &cobra.Command{
	Use:   "backfill [symbols...]",
	Short: "Backfill full price history for the universe",
	Long: `Fetches the full available daily history for each symbol instead of
the recent window. Intended for first-time setup; respects the upstream
rate limit, so a full universe takes a few minutes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		return a.collector.CollectMarketData(cmd.Context(), args, "full")
	},
}

func init() {
	collectCmd.Flags().BoolVar(&collectPrices, "prices", false, "collect daily prices only")
	collectCmd.Flags().BoolVar(&collectEconomics, "economics", false, "collect economic indicators only")
	collectCmd.Flags().BoolVar(&collectProfiles, "profiles", false, "collect security profiles only")
}
