package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

type SeedCmd struct {
	cfgPath string
	storeID string
	days    int
	factory Factory
}

func NewSeedCmd(factory Factory) *cobra.Command {
	sc := &SeedCmd{factory: factory}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate demo visit, purchase, segment and heatmap records for a store",
		RunE:  sc.run,
	}

	cmd.Flags().StringVar(&sc.cfgPath, "config", "wandur.yaml", "Path to the app config file")
	cmd.Flags().StringVar(&sc.storeID, "store", "", "Record id of the store to seed")
	cmd.Flags().IntVar(&sc.days, "days", 30, "Number of trailing days to cover")

	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	services, err := sc.factory(ctx, sc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to wire services: %w", err)
	}

	summary, err := services.Generator.Seed(ctx, sc.storeID, sc.days)
	if err != nil {
		return fmt.Errorf("failed to seed store %q: %w", sc.storeID, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"Seeded store %s: %d visitors, %d purchases, %d segments, %d grid cells\n",
		sc.storeID, summary.Visitors, summary.Purchases, summary.Segments, summary.GridCells)
	return nil
}
