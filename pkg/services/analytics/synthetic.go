package analytics

import (
	"math/rand"
	"time"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
)

// Synthetic placeholders keep a demo dashboard populated when the source
// window is empty. Shapes are identical to the real branch; values are
// randomized. Everything returned from this file is tagged
// AvailabilitySynthetic.

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// uniformInt draws from [lo, hi).
func uniformInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo)
}

func syntheticKeyMetrics(rng *rand.Rand) domain.KeyMetrics {
	return domain.KeyMetrics{
		Availability:   domain.AvailabilitySynthetic,
		FootTraffic:    uniformInt(rng, 500, 1500),
		ConversionRate: uniform(rng, 15, 30),
		AvgPurchase:    uniform(rng, 40, 80),
	}
}

// syntheticTraffic builds a daily series over [start, end] with a weekend
// boost over a base level of 50 visitors.
func syntheticTraffic(rng *rand.Rand, start, end time.Time) []domain.TrafficPoint {
	const baseTraffic = 50

	var points []domain.TrafficPoint
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		weekendFactor := 1.0
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			weekendFactor = 1.5
		}
		jitter := uniform(rng, 0.8, 1.2)
		points = append(points, domain.TrafficPoint{
			Date:     day.Format(dateLayout),
			Visitors: int(baseTraffic * weekendFactor * jitter),
		})
	}
	return points
}

func syntheticSegments(rng *rand.Rand) []domain.Segment {
	return []domain.Segment{
		{Name: "First-time", Count: uniformInt(rng, 30, 50)},
		{Name: "Occasional", Count: uniformInt(rng, 40, 60)},
		{Name: "Regular", Count: uniformInt(rng, 20, 40)},
		{Name: "Loyal", Count: uniformInt(rng, 10, 20)},
	}
}

// syntheticHeatmap fills the grid with uniform noise and scales two
// blocks up to look like hotspots: [2,4)x[2,4) by 3 and [7,9)x[7,9) by 2.
func syntheticHeatmap(rng *rand.Rand) [10][10]float64 {
	var density [10][10]float64
	for y := range density {
		for x := range density[y] {
			density[y][x] = rng.Float64()
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
	return density
}

func syntheticFunnel(rng *rand.Rand) []domain.FunnelStage {
	total := uniformInt(rng, 800, 1200)
	engaged := int(float64(total) * uniform(rng, 0.4, 0.6))
	converted := int(float64(engaged) * uniform(rng, 0.2, 0.4))
	repeat := int(float64(converted) * uniform(rng, 0.1, 0.3))

	counts := []int{total, engaged, converted, repeat}
	stages := make([]domain.FunnelStage, 0, len(counts))
	for i, name := range funnelStageNames {
		stages = append(stages, domain.FunnelStage{Stage: name, Count: counts[i]})
	}
	return stages
}

// syntheticPeakHours models a morning build-up, a lunch peak, an afternoon
// lull and an evening peak.
func syntheticPeakHours(rng *rand.Rand) []domain.HourTraffic {
	hours := make([]domain.HourTraffic, 0, closingHour-openingHour+1)
	for h := openingHour; h <= closingHour; h++ {
		var base float64
		switch {
		case h < 12:
			base = 30 + float64(h-openingHour)*10
		case h == 12 || h == 13:
			base = 80
		case h < 17:
			base = 50
		default:
			base = 70
		}
		hours = append(hours, domain.HourTraffic{
			Hour:     h,
			Visitors: int(base * uniform(rng, 0.8, 1.2)),
		})
	}
	return hours
}

var syntheticDwellRanges = [][2]int{{50, 100}, {80, 150}, {40, 90}, {20, 50}, {5, 20}}

func syntheticDwell(rng *rand.Rand) []domain.DwellBucket {
	buckets := make([]domain.DwellBucket, 0, len(dwellBucketLabels))
	for i, label := range dwellBucketLabels {
		r := syntheticDwellRanges[i]
		buckets = append(buckets, domain.DwellBucket{
			Label: label,
			Count: uniformInt(rng, r[0], r[1]),
		})
	}
	return buckets
}
