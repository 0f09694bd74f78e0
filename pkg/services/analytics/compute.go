package analytics

import (
	"sort"
	"strconv"
	"strings"

	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
)

// Opening hours covered by the peak-hours report.
const (
	openingHour = 9
	closingHour = 20
)

var dwellBucketLabels = []string{"< 5 min", "5-15 min", "15-30 min", "30-60 min", "> 60 min"}

var funnelStageNames = []string{"Total Visitors", "Engaged", "Converted", "Repeat Customers"}

// Visitors are considered engaged once they stay longer than this many
// minutes.
const engagedThresholdMinutes = 5

func computeKeyMetrics(visits []store.VisitRow, purchases []store.PurchaseRow) domain.KeyMetrics {
	footTraffic := len(visits)

	var conversionRate float64
	if footTraffic > 0 {
		converted := 0
		for _, v := range visits {
			if v.Converted {
				converted++
			}
		}
		conversionRate = float64(converted) / float64(footTraffic) * 100
	}

	var avgPurchase float64
	if len(purchases) > 0 {
		var total float64
		for _, p := range purchases {
			total += p.Amount
		}
		avgPurchase = total / float64(len(purchases))
	}

	return domain.KeyMetrics{
		Availability:   domain.AvailabilityReal,
		FootTraffic:    footTraffic,
		ConversionRate: conversionRate,
		AvgPurchase:    avgPurchase,
	}
}

// computeTraffic counts visits per date, ascending.
func computeTraffic(visits []store.VisitRow) []domain.TrafficPoint {
	counts := make(map[string]int)
	for _, v := range visits {
		counts[v.Date]++
	}

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	points := make([]domain.TrafficPoint, 0, len(dates))
	for _, date := range dates {
		points = append(points, domain.TrafficPoint{Date: date, Visitors: counts[date]})
	}
	return points
}

// computeFunnel derives the four stage counts. Repeat customers are
// visitor ids with more than one purchase in the window; the linkage to
// visits is the shared visitor id, not a foreign key.
func computeFunnel(visits []store.VisitRow, purchases []store.PurchaseRow) []domain.FunnelStage {
	total := len(visits)

	engaged := 0
	converted := 0
	for _, v := range visits {
		if v.Duration > engagedThresholdMinutes {
			engaged++
		}
		if v.Converted {
			converted++
		}
	}

	purchaseCounts := make(map[string]int)
	for _, p := range purchases {
		purchaseCounts[p.VisitorID]++
	}
	repeat := 0
	for _, n := range purchaseCounts {
		if n > 1 {
			repeat++
		}
	}

	counts := []int{total, engaged, converted, repeat}
	stages := make([]domain.FunnelStage, 0, len(counts))
	for i, name := range funnelStageNames {
		stages = append(stages, domain.FunnelStage{Stage: name, Count: counts[i]})
	}
	return stages
}

// computePeakHours counts visits per opening hour and left-joins the
// result against the full 9..20 range so no hour is missing. Rows whose
// time cannot be parsed, or that fall outside opening hours, are dropped.
func computePeakHours(visits []store.VisitRow) []domain.HourTraffic {
	counts := make(map[int]int)
	for _, v := range visits {
		hour, ok := parseHour(v.Time)
		if !ok {
			continue
		}
		counts[hour]++
	}

	hours := make([]domain.HourTraffic, 0, closingHour-openingHour+1)
	for h := openingHour; h <= closingHour; h++ {
		hours = append(hours, domain.HourTraffic{Hour: h, Visitors: counts[h]})
	}
	return hours
}

// parseHour extracts the integer before the first ':' of an HH:MM string.
func parseHour(t string) (int, bool) {
	head, _, found := strings.Cut(t, ":")
	if !found {
		return 0, false
	}
	hour, err := strconv.Atoi(head)
	if err != nil {
		return 0, false
	}
	return hour, true
}

// computeDwell buckets visit durations. Buckets are closed-open except
// that exactly 60 minutes still counts as 30-60 and only durations above
// 60 land in the final bucket.
func computeDwell(visits []store.VisitRow) []domain.DwellBucket {
	counts := make([]int, len(dwellBucketLabels))
	for _, v := range visits {
		counts[dwellBucketIndex(v.Duration)]++
	}

	buckets := make([]domain.DwellBucket, 0, len(dwellBucketLabels))
	for i, label := range dwellBucketLabels {
		buckets = append(buckets, domain.DwellBucket{Label: label, Count: counts[i]})
	}
	return buckets
}

func dwellBucketIndex(duration int) int {
	switch {
	case duration < 5:
		return 0
	case duration < 15:
		return 1
	case duration < 30:
		return 2
	case duration <= 60:
		return 3
	default:
		return 4
	}
}
