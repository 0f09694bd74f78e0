package datagen

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

// fakeWriter records every insert in memory.
type fakeWriter struct {
	stores   map[string]store.Record
	inserted map[string][]map[string]any
	nextID   int
}

func newFakeWriter(storeIDs ...string) *fakeWriter {
	stores := make(map[string]store.Record)
	for _, id := range storeIDs {
		stores[id] = store.Record{ID: id, Fields: map[string]any{"Name": "Test Store"}}
	}
	return &fakeWriter{
		stores:   stores,
		inserted: make(map[string][]map[string]any),
	}
}

func (f *fakeWriter) Get(_ context.Context, table string, id string) (store.Record, error) {
	if table == airtable.TableStores {
		if record, ok := f.stores[id]; ok {
			return record, nil
		}
	}
	return store.Record{}, airtable.ErrNotFound
}

func (f *fakeWriter) Insert(_ context.Context, table string, fields map[string]any) (store.Record, error) {
	f.inserted[table] = append(f.inserted[table], fields)
	f.nextID++
	return store.Record{ID: fmt.Sprintf("rec%d", f.nextID), Fields: fields}, nil
}

func newTestGenerator(w *fakeWriter, seed int64) *Generator {
	return &Generator{
		writer: w,
		rng:    rand.New(rand.NewSource(seed)),
		now:    func() time.Time { return time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC) },
	}
}

func TestSeedUnknownStore(t *testing.T) {
	g := newTestGenerator(newFakeWriter(), 1)
	_, err := g.Seed(context.Background(), "ghost", 3)
	assert.ErrorIs(t, err, airtable.ErrNotFound)
}

func TestSeedShapes(t *testing.T) {
	const days = 3
	w := newFakeWriter("store1")
	g := newTestGenerator(w, 1)

	summary, err := g.Seed(context.Background(), "store1", days)
	require.NoError(t, err)

	assert.Equal(t, len(w.inserted[airtable.TableVisitors]), summary.Visitors)
	assert.Equal(t, len(w.inserted[airtable.TablePurchases]), summary.Purchases)
	assert.Equal(t, 4, summary.Segments)
	assert.Equal(t, 100, summary.GridCells)

	assert.GreaterOrEqual(t, summary.Visitors, 20*days)
	assert.LessOrEqual(t, summary.Visitors, 100*days)
	assert.LessOrEqual(t, summary.Purchases, summary.Visitors)

	dateRe := regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe := regexp.MustCompile(`^(09|1\d|20):[0-5]\d$`)

	for _, fields := range w.inserted[airtable.TableVisitors] {
		assert.Equal(t, "store1", fields["StoreID"])
		assert.Regexp(t, dateRe, fields["Date"])
		assert.Regexp(t, timeRe, fields["Time"])

		duration := fields["Duration"].(int)
		assert.GreaterOrEqual(t, duration, 1)
		assert.LessOrEqual(t, duration, 60)
	}

	for _, fields := range w.inserted[airtable.TablePurchases] {
		amount := fields["Amount"].(float64)
		assert.GreaterOrEqual(t, amount, 10.0)
		assert.LessOrEqual(t, amount, 200.0)

		items := fields["Items"].(int)
		assert.GreaterOrEqual(t, items, 1)
		assert.LessOrEqual(t, items, 5)
	}
}

func TestSeedPurchasesMatchConvertedVisits(t *testing.T) {
	w := newFakeWriter("store1")
	g := newTestGenerator(w, 2)

	_, err := g.Seed(context.Background(), "store1", 2)
	require.NoError(t, err)

	convertedVisitors := make(map[string]bool)
	for _, fields := range w.inserted[airtable.TableVisitors] {
		if fields["Converted"].(bool) {
			convertedVisitors[fields["VisitorID"].(string)] = true
		}
	}

	for _, fields := range w.inserted[airtable.TablePurchases] {
		assert.True(t, convertedVisitors[fields["VisitorID"].(string)],
			"purchase without a converted visit")
	}
}

func TestSeedSegmentsAndGrid(t *testing.T) {
	w := newFakeWriter("store1")
	g := newTestGenerator(w, 3)

	_, err := g.Seed(context.Background(), "store1", 1)
	require.NoError(t, err)

	segments := w.inserted[airtable.TableSegments]
	require.Len(t, segments, 4)
	names := make([]string, 0, 4)
	for _, fields := range segments {
		names = append(names, fields["Segment"].(string))
	}
	assert.Equal(t, []string{"First-time", "Occasional", "Regular", "Loyal"}, names)

	cells := w.inserted[airtable.TableHeatmap]
	require.Len(t, cells, 100)
	seen := make(map[[2]int]bool)
	for _, fields := range cells {
		x := fields["X"].(int)
		y := fields["Y"].(int)
		assert.GreaterOrEqual(t, fields["Density"].(float64), 0.0)
		seen[[2]int{x, y}] = true
	}
	assert.Len(t, seen, 100, "every grid cell written exactly once")
}
