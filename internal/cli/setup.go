package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aristath/spyglass/internal/modules/fundamentals"
	"github.com/aristath/spyglass/internal/modules/universe"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Initialize the database and seed the ETF universe",
	Long: `Creates the SQLite schema, registers the tracked ETFs with their
baseline classifications, and seeds the economic indicator metadata.
Safe to run repeatedly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.db.InitSchema(); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
		a.log.Info().Str("path", a.db.Path()).Msg("Schema initialized")

		symbols := make([]string, 0, len(fundamentals.Baselines))
		for symbol := range fundamentals.Baselines {
			symbols = append(symbols, symbol)
		}
		sort.Strings(symbols)

		for _, symbol := range symbols {
			b := fundamentals.Baselines[symbol]
			err := a.universe.Upsert(universe.Security{
				Symbol:   symbol,
				Name:     b.Name,
				ETFType:  string(b.Type),
				IsActive: true,
			})
			if err != nil {
				return err
			}
		}
		a.log.Info().Int("securities", len(symbols)).Msg("Universe seeded")

		if err := a.economics.SeedMetadata(); err != nil {
			return err
		}
		a.log.Info().Msg("Economic indicator metadata seeded")

		fmt.Fprintf(cmd.OutOrStdout(), "Setup complete: %d securities tracked in %s\n",
			len(symbols), a.db.Path())
		return nil
	},
}
