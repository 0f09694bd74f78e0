package analytics

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Stores(ctx context.Context) ([]store.StoreRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]store.StoreRow), args.Error(1)
}

func (m *mockStore) StoreByID(ctx context.Context, id string) (store.StoreRow, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(store.StoreRow), args.Error(1)
}

func (m *mockStore) Visits(ctx context.Context, q airtable.Query) ([]store.VisitRow, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]store.VisitRow), args.Error(1)
}

func (m *mockStore) Purchases(ctx context.Context, q airtable.Query) ([]store.PurchaseRow, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]store.PurchaseRow), args.Error(1)
}

func (m *mockStore) Segments(ctx context.Context, storeID string) ([]store.SegmentRow, error) {
	args := m.Called(ctx, storeID)
	return args.Get(0).([]store.SegmentRow), args.Error(1)
}

func (m *mockStore) DensityGrid(
	ctx context.Context,
	storeID string,
	date string,
) (store.DensityGrid, bool, error) {
	args := m.Called(ctx, storeID, date)
	return args.Get(0).(store.DensityGrid), args.Bool(1), args.Error(2)
}

var testToday = time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

func newTestProcessor(m *mockStore) *processor {
	return &processor{
		store: m,
		rng:   rand.New(rand.NewSource(1)),
		now:   func() time.Time { return testToday },
	}
}

func TestResolveWindowDefaults(t *testing.T) {
	p := newTestProcessor(new(mockStore))

	t.Run("absent start defaults to trailing 30 days", func(t *testing.T) {
		start, end, err := p.resolveWindow("", "")
		require.NoError(t, err)
		assert.Equal(t, "2025-07-16", start.Format("2006-01-02"))
		assert.Equal(t, "2025-08-15", end.Format("2006-01-02"))
	})

	t.Run("absent end defaults to today", func(t *testing.T) {
		start, end, err := p.resolveWindow("2025-08-01", "")
		require.NoError(t, err)
		assert.Equal(t, "2025-08-01", start.Format("2006-01-02"))
		assert.Equal(t, "2025-08-15", end.Format("2006-01-02"))
	})

	t.Run("explicit window is kept", func(t *testing.T) {
		start, end, err := p.resolveWindow("2025-08-01", "2025-08-10")
		require.NoError(t, err)
		assert.Equal(t, "2025-08-01", start.Format("2006-01-02"))
		assert.Equal(t, "2025-08-10", end.Format("2006-01-02"))
	})

	t.Run("malformed dates are rejected", func(t *testing.T) {
		_, _, err := p.resolveWindow("01-08-2025", "")
		assert.Error(t, err)

		_, _, err = p.resolveWindow("2025-08-01", "bogus")
		assert.Error(t, err)
	})
}

func TestKeyMetricsRealBranch(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, airtable.Query{
		StoreID:   "store1",
		StartDate: "2025-08-01",
		EndDate:   "2025-08-10",
	}).Return(makeVisits(100, 25), nil)
	m.On("Purchases", mock.Anything, mock.Anything).Return([]store.PurchaseRow{
		{Amount: 50}, {Amount: 70},
	}, nil)

	metrics, err := p.KeyMetrics(context.Background(), "store1", "2025-08-01", "2025-08-10")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilityReal, metrics.Availability)
	assert.Equal(t, 100, metrics.FootTraffic)
	assert.Equal(t, 25.0, metrics.ConversionRate)
	assert.Equal(t, 60.0, metrics.AvgPurchase)
	m.AssertExpectations(t)
}

func TestKeyMetricsSyntheticBranch(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, mock.Anything).Return([]store.VisitRow{}, nil)

	metrics, err := p.KeyMetrics(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, metrics.Availability)
	assert.GreaterOrEqual(t, metrics.FootTraffic, 500)
	assert.Less(t, metrics.FootTraffic, 1500)
	assert.GreaterOrEqual(t, metrics.ConversionRate, 15.0)
	assert.Less(t, metrics.ConversionRate, 30.0)
	assert.GreaterOrEqual(t, metrics.AvgPurchase, 40.0)
	assert.Less(t, metrics.AvgPurchase, 80.0)
	// The purchases table is never consulted on the fallback path.
	m.AssertNotCalled(t, "Purchases", mock.Anything, mock.Anything)
}

func TestTrafficSyntheticCoversWindow(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, mock.Anything).Return([]store.VisitRow{}, nil)

	series, err := p.Traffic(context.Background(), "store1", "2025-08-01", "2025-08-10")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, series.Availability)
	require.Len(t, series.Points, 10)
	assert.Equal(t, "2025-08-01", series.Points[0].Date)
	assert.Equal(t, "2025-08-10", series.Points[9].Date)
	for _, point := range series.Points {
		assert.Greater(t, point.Visitors, 0)
	}
}

func TestSegmentsPassThrough(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Segments", mock.Anything, "store1").Return([]store.SegmentRow{
		{Segment: "Loyal", Count: 12, AvgSpend: 88.5},
	}, nil)

	dist, err := p.Segments(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilityReal, dist.Availability)
	assert.Equal(t, []domain.Segment{{Name: "Loyal", Count: 12, AvgSpend: 88.5}}, dist.Segments)
}

func TestSegmentsSyntheticShape(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Segments", mock.Anything, "store1").Return([]store.SegmentRow{}, nil)

	dist, err := p.Segments(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, dist.Availability)
	require.Len(t, dist.Segments, 4)
	names := []string{dist.Segments[0].Name, dist.Segments[1].Name, dist.Segments[2].Name, dist.Segments[3].Name}
	assert.Equal(t, []string{"First-time", "Occasional", "Regular", "Loyal"}, names)
}

func TestHeatmap(t *testing.T) {
	t.Run("real grid passes through", func(t *testing.T) {
		m := new(mockStore)
		p := newTestProcessor(m)

		var grid store.DensityGrid
		grid[3][4] = 2.5
		m.On("DensityGrid", mock.Anything, "store1", "2025-08-10").Return(grid, true, nil)

		heatmap, err := p.Heatmap(context.Background(), "store1", "2025-08-01", "2025-08-10")
		require.NoError(t, err)

		assert.Equal(t, domain.AvailabilityReal, heatmap.Availability)
		assert.Equal(t, 2.5, heatmap.Density[3][4])
	})

	t.Run("synthetic grid is non-negative everywhere", func(t *testing.T) {
		m := new(mockStore)
		p := newTestProcessor(m)

		m.On("DensityGrid", mock.Anything, "store1", mock.Anything).
			Return(store.DensityGrid{}, false, nil)

		heatmap, err := p.Heatmap(context.Background(), "store1", "", "")
		require.NoError(t, err)

		assert.Equal(t, domain.AvailabilitySynthetic, heatmap.Availability)
		for y := range heatmap.Density {
			for x := range heatmap.Density[y] {
				assert.GreaterOrEqual(t, heatmap.Density[y][x], 0.0)
			}
		}
	})
}

func TestFunnelSyntheticOrdering(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, mock.Anything).Return([]store.VisitRow{}, nil)

	funnel, err := p.Funnel(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, funnel.Availability)
	require.Len(t, funnel.Stages, 4)
	// Each stage is a subset of the previous one.
	for i := 1; i < len(funnel.Stages); i++ {
		assert.LessOrEqual(t, funnel.Stages[i].Count, funnel.Stages[i-1].Count)
	}
	m.AssertNotCalled(t, "Purchases", mock.Anything, mock.Anything)
}

func TestPeakHoursSyntheticShape(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, mock.Anything).Return([]store.VisitRow{}, nil)

	peak, err := p.PeakHours(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, peak.Availability)
	require.Len(t, peak.Hours, 12)
	for i, h := range peak.Hours {
		assert.Equal(t, 9+i, h.Hour)
		assert.Greater(t, h.Visitors, 0)
	}
}

func TestDwellTimeSyntheticShape(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	m.On("Visits", mock.Anything, mock.Anything).Return([]store.VisitRow{}, nil)

	dwell, err := p.DwellTime(context.Background(), "store1", "", "")
	require.NoError(t, err)

	assert.Equal(t, domain.AvailabilitySynthetic, dwell.Availability)
	require.Len(t, dwell.Buckets, 5)
	for _, b := range dwell.Buckets {
		assert.Greater(t, b.Count, 0)
	}
}

func TestRealDataIsIdempotent(t *testing.T) {
	m := new(mockStore)
	p := newTestProcessor(m)

	visits := makeVisits(50, 10)
	m.On("Visits", mock.Anything, mock.Anything).Return(visits, nil)
	m.On("Purchases", mock.Anything, mock.Anything).Return([]store.PurchaseRow{{Amount: 42}}, nil)

	first, err := p.KeyMetrics(context.Background(), "store1", "2025-08-01", "2025-08-10")
	require.NoError(t, err)
	second, err := p.KeyMetrics(context.Background(), "store1", "2025-08-01", "2025-08-10")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
