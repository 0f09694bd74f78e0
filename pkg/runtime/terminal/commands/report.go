package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	"github.com/wandur-labs/wandur-analytics/pkg/runtime/terminal/export"
)

type ReportCmd struct {
	cfgPath  string
	storeID  string
	fromDate string
	toDate   string
	factory  Factory
	reporter *export.Reporter
}

func NewReportCmd(factory Factory, reporter *export.Reporter) *cobra.Command {
	rc := &ReportCmd{factory: factory, reporter: reporter}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print an analytics report for a store",
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.cfgPath, "config", "wandur.yaml", "Path to the app config file")
	cmd.Flags().StringVar(&rc.storeID, "store", "", "Record id of the store to report on")
	cmd.Flags().StringVar(&rc.fromDate, "from", "", "Window start (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&rc.toDate, "to", "", "Window end (YYYY-MM-DD, default today)")

	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func (rc *ReportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	services, err := rc.factory(ctx, rc.cfgPath)
	if err != nil {
		return fmt.Errorf("failed to wire services: %w", err)
	}

	storeRow, err := services.Store.StoreByID(ctx, rc.storeID)
	if err != nil {
		return fmt.Errorf("failed to resolve store %q: %w", rc.storeID, err)
	}

	metrics, err := services.Analytics.KeyMetrics(ctx, rc.storeID, rc.fromDate, rc.toDate)
	if err != nil {
		return fmt.Errorf("failed to compute key metrics: %w", err)
	}
	funnel, err := services.Analytics.Funnel(ctx, rc.storeID, rc.fromDate, rc.toDate)
	if err != nil {
		return fmt.Errorf("failed to compute funnel: %w", err)
	}
	peak, err := services.Analytics.PeakHours(ctx, rc.storeID, rc.fromDate, rc.toDate)
	if err != nil {
		return fmt.Errorf("failed to compute peak hours: %w", err)
	}
	dwell, err := services.Analytics.DwellTime(ctx, rc.storeID, rc.fromDate, rc.toDate)
	if err != nil {
		return fmt.Errorf("failed to compute dwell time distribution: %w", err)
	}

	return rc.reporter.Handle(&domain.AnalyticsReport{
		StoreName: storeRow.Name,
		Period:    domain.DateRange{Start: rc.fromDate, End: rc.toDate},
		Metrics:   metrics,
		Funnel:    funnel,
		PeakHours: peak,
		Dwell:     dwell,
	})
}
