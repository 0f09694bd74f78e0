package datagen

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

// RecordWriter is the slice of the record-source client the generator
// needs.
type RecordWriter interface {
	Get(ctx context.Context, table string, id string) (store.Record, error)
	Insert(ctx context.Context, table string, fields map[string]any) (store.Record, error)
}

// Summary reports how many records a seeding run created.
type Summary struct {
	Visitors  int
	Purchases int
	Segments  int
	GridCells int
}

// Generator seeds a store with plausible demo records: visits, purchases
// for converted visits, a segment snapshot and a full density grid.
type Generator struct {
	writer RecordWriter
	rng    *rand.Rand
	now    func() time.Time
}

func NewGenerator(writer RecordWriter) *Generator {
	return &Generator{
		writer: writer,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    time.Now,
	}
}

// Seed generates demo records covering the trailing `days` days for the
// store. The store must already exist in the record source.
func (g *Generator) Seed(ctx context.Context, storeID string, days int) (Summary, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := g.writer.Get(ctx, airtable.TableStores, storeID); err != nil {
		return Summary{}, fmt.Errorf("store %q not found: %w", storeID, err)
	}

	var summary Summary
	today := g.now()

	for day := 0; day < days; day++ {
		date := today.AddDate(0, 0, -day).Format("2006-01-02")
		visitors := g.rng.Intn(81) + 20 // 20..100 per day

		for i := 0; i < visitors; i++ {
			hour := g.rng.Intn(12) + 9 // opening hours 9..20
			minute := g.rng.Intn(60)
			duration := g.rng.Intn(60) + 1
			converted := g.rng.Float64() < 0.2
			visitorID := "V-" + uuid.NewString()[:8]

			_, err := g.writer.Insert(ctx, airtable.TableVisitors, map[string]any{
				"StoreID":   storeID,
				"Date":      date,
				"Time":      fmt.Sprintf("%02d:%02d", hour, minute),
				"VisitorID": visitorID,
				"Duration":  duration,
				"Converted": converted,
			})
			if err != nil {
				return summary, fmt.Errorf("failed to insert visitor record: %w", err)
			}
			summary.Visitors++

			if !converted {
				continue
			}

			_, err = g.writer.Insert(ctx, airtable.TablePurchases, map[string]any{
				"StoreID":   storeID,
				"Date":      date,
				"Time":      fmt.Sprintf("%02d:%02d", hour, minute),
				"VisitorID": visitorID,
				"Amount":    round2(g.rng.Float64()*190 + 10),
				"Items":     g.rng.Intn(5) + 1,
			})
			if err != nil {
				return summary, fmt.Errorf("failed to insert purchase record: %w", err)
			}
			summary.Purchases++
		}
		logger.Debug().Str("date", date).Int("visitors", visitors).Msg("seeded day")
	}

	if err := g.seedSegments(ctx, storeID, &summary); err != nil {
		return summary, err
	}
	if err := g.seedDensityGrid(ctx, storeID, &summary); err != nil {
		return summary, err
	}
	return summary, nil
}

type segmentRange struct {
	name               string
	minCount, maxCount int
	minSpend, maxSpend float64
}

var segmentRanges = []segmentRange{
	{"First-time", 30, 50, 20, 40},
	{"Occasional", 40, 60, 30, 60},
	{"Regular", 20, 30, 50, 80},
	{"Loyal", 5, 15, 70, 120},
}

func (g *Generator) seedSegments(ctx context.Context, storeID string, summary *Summary) error {
	for _, r := range segmentRanges {
		_, err := g.writer.Insert(ctx, airtable.TableSegments, map[string]any{
			"StoreID":  storeID,
			"Segment":  r.name,
			"Count":    g.rng.Intn(r.maxCount-r.minCount+1) + r.minCount,
			"AvgSpend": round2(r.minSpend + g.rng.Float64()*(r.maxSpend-r.minSpend)),
		})
		if err != nil {
			return fmt.Errorf("failed to insert segment record: %w", err)
		}
		summary.Segments++
	}
	return nil
}

// seedDensityGrid writes all 100 cells for today: uniform noise with two
// scaled-up hotspot blocks.
func (g *Generator) seedDensityGrid(ctx context.Context, storeID string, summary *Summary) error {
	var density store.DensityGrid
	for y := range density {
		for x := range density[y] {
			density[y][x] = g.rng.Float64()
		}
	}
	for y := 2; y < 4; y++ {
		for x := 2; x < 4; x++ {
			density[y][x] *= 3
		}
	}
	for y := 7; y < 9; y++ {
		for x := 7; x < 9; x++ {
			density[y][x] *= 2
		}
	}

	date := g.now().Format("2006-01-02")
	for y := 0; y < store.GridSize; y++ {
		for x := 0; x < store.GridSize; x++ {
			_, err := g.writer.Insert(ctx, airtable.TableHeatmap, map[string]any{
				"StoreID": storeID,
				"Date":    date,
				"X":       x,
				"Y":       y,
				"Density": round2(density[y][x]),
			})
			if err != nil {
				return fmt.Errorf("failed to insert density cell: %w", err)
			}
			summary.GridCells++
		}
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
