package analytics

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

const (
	dateLayout = "2006-01-02"

	// Default analysis window when the caller omits the start date.
	defaultWindowDays = 30
)

// Processor turns normalized record tables into analytics outputs. Every
// operation resolves its date window, fetches rows and computes the result
// from real data when the window is non-empty; otherwise it produces a
// synthetic placeholder tagged AvailabilitySynthetic so callers can tell
// fabricated numbers from real ones.
type Processor interface {
	KeyMetrics(ctx context.Context, storeID, startDate, endDate string) (domain.KeyMetrics, error)
	Traffic(ctx context.Context, storeID, startDate, endDate string) (domain.TrafficSeries, error)
	Segments(ctx context.Context, storeID, startDate, endDate string) (domain.SegmentDistribution, error)
	Heatmap(ctx context.Context, storeID, startDate, endDate string) (domain.Heatmap, error)
	Funnel(ctx context.Context, storeID, startDate, endDate string) (domain.Funnel, error)
	PeakHours(ctx context.Context, storeID, startDate, endDate string) (domain.PeakHours, error)
	DwellTime(ctx context.Context, storeID, startDate, endDate string) (domain.DwellDistribution, error)
}

type processor struct {
	store airtable.Store
	rng   *rand.Rand
	now   func() time.Time
}

func NewProcessor(store airtable.Store) Processor {
	return &processor{
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

// resolveWindow fills in the default window: an absent start date means the
// trailing 30 days ending today, an absent end date means today. Present
// dates must be YYYY-MM-DD.
func (p *processor) resolveWindow(startDate, endDate string) (time.Time, time.Time, error) {
	today := p.now().Truncate(24 * time.Hour)

	if startDate == "" {
		end := today
		if endDate != "" {
			parsed, err := time.Parse(dateLayout, endDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
			}
			end = parsed
		}
		return end.AddDate(0, 0, -defaultWindowDays), end, nil
	}

	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date %q: %w", startDate, err)
	}

	end := today
	if endDate != "" {
		end, err = time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
		}
	}
	return start, end, nil
}

func (p *processor) fetchWindow(
	ctx context.Context,
	storeID, startDate, endDate string,
) (airtable.Query, time.Time, time.Time, error) {
	start, end, err := p.resolveWindow(startDate, endDate)
	if err != nil {
		return airtable.Query{}, time.Time{}, time.Time{}, err
	}
	q := airtable.Query{
		StoreID:   storeID,
		StartDate: start.Format(dateLayout),
		EndDate:   end.Format(dateLayout),
	}
	return q, start, end, nil
}

func (p *processor) KeyMetrics(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.KeyMetrics, error) {
	q, _, _, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.KeyMetrics{}, err
	}

	visits, err := p.store.Visits(ctx, q)
	if err != nil {
		return domain.KeyMetrics{}, err
	}
	if len(visits) == 0 {
		return syntheticKeyMetrics(p.rng), nil
	}

	purchases, err := p.store.Purchases(ctx, q)
	if err != nil {
		return domain.KeyMetrics{}, err
	}
	return computeKeyMetrics(visits, purchases), nil
}

func (p *processor) Traffic(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.TrafficSeries, error) {
	q, start, end, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.TrafficSeries{}, err
	}

	visits, err := p.store.Visits(ctx, q)
	if err != nil {
		return domain.TrafficSeries{}, err
	}
	if len(visits) == 0 {
		return domain.TrafficSeries{
			Availability: domain.AvailabilitySynthetic,
			Points:       syntheticTraffic(p.rng, start, end),
		}, nil
	}

	return domain.TrafficSeries{
		Availability: domain.AvailabilityReal,
		Points:       computeTraffic(visits),
	}, nil
}

func (p *processor) Segments(
	ctx context.Context,
	storeID, _, _ string,
) (domain.SegmentDistribution, error) {
	rows, err := p.store.Segments(ctx, storeID)
	if err != nil {
		return domain.SegmentDistribution{}, err
	}
	if len(rows) == 0 {
		return domain.SegmentDistribution{
			Availability: domain.AvailabilitySynthetic,
			Segments:     syntheticSegments(p.rng),
		}, nil
	}

	segments := make([]domain.Segment, 0, len(rows))
	for _, row := range rows {
		segments = append(segments, domain.Segment{
			Name:     row.Segment,
			Count:    row.Count,
			AvgSpend: row.AvgSpend,
		})
	}
	return domain.SegmentDistribution{
		Availability: domain.AvailabilityReal,
		Segments:     segments,
	}, nil
}

// Heatmap reads the density grid snapshot for the window's end date.
func (p *processor) Heatmap(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.Heatmap, error) {
	_, _, end, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.Heatmap{}, err
	}

	grid, found, err := p.store.DensityGrid(ctx, storeID, end.Format(dateLayout))
	if err != nil {
		return domain.Heatmap{}, err
	}
	if !found {
		return domain.Heatmap{
			Availability: domain.AvailabilitySynthetic,
			Density:      syntheticHeatmap(p.rng),
		}, nil
	}
	return domain.Heatmap{
		Availability: domain.AvailabilityReal,
		Density:      grid,
	}, nil
}

func (p *processor) Funnel(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.Funnel, error) {
	q, _, _, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.Funnel{}, err
	}

	visits, err := p.store.Visits(ctx, q)
	if err != nil {
		return domain.Funnel{}, err
	}
	if len(visits) == 0 {
		return domain.Funnel{
			Availability: domain.AvailabilitySynthetic,
			Stages:       syntheticFunnel(p.rng),
		}, nil
	}

	purchases, err := p.store.Purchases(ctx, q)
	if err != nil {
		return domain.Funnel{}, err
	}
	return domain.Funnel{
		Availability: domain.AvailabilityReal,
		Stages:       computeFunnel(visits, purchases),
	}, nil
}

func (p *processor) PeakHours(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.PeakHours, error) {
	q, _, _, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.PeakHours{}, err
	}

	visits, err := p.store.Visits(ctx, q)
	if err != nil {
		return domain.PeakHours{}, err
	}
	if len(visits) == 0 {
		return domain.PeakHours{
			Availability: domain.AvailabilitySynthetic,
			Hours:        syntheticPeakHours(p.rng),
		}, nil
	}
	return domain.PeakHours{
		Availability: domain.AvailabilityReal,
		Hours:        computePeakHours(visits),
	}, nil
}

func (p *processor) DwellTime(
	ctx context.Context,
	storeID, startDate, endDate string,
) (domain.DwellDistribution, error) {
	q, _, _, err := p.fetchWindow(ctx, storeID, startDate, endDate)
	if err != nil {
		return domain.DwellDistribution{}, err
	}

	visits, err := p.store.Visits(ctx, q)
	if err != nil {
		return domain.DwellDistribution{}, err
	}
	if len(visits) == 0 {
		return domain.DwellDistribution{
			Availability: domain.AvailabilitySynthetic,
			Buckets:      syntheticDwell(p.rng),
		}, nil
	}
	return domain.DwellDistribution{
		Availability: domain.AvailabilityReal,
		Buckets:      computeDwell(visits),
	}, nil
}
