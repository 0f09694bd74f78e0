package domain

// Availability marks whether an analytics result was computed from real
// records or synthesized because the source window was empty. Callers that
// do not want placeholder numbers can check the tag and render a "no data"
// state instead.
type Availability string

const (
	AvailabilityReal      Availability = "real"
	AvailabilitySynthetic Availability = "synthetic"
)

// DateRange is an inclusive date window, both bounds YYYY-MM-DD.
type DateRange struct {
	Start string
	End   string
}

type KeyMetrics struct {
	Availability   Availability
	FootTraffic    int
	ConversionRate float64 // percent
	AvgPurchase    float64
}

type TrafficPoint struct {
	Date     string
	Visitors int
}

type TrafficSeries struct {
	Availability Availability
	Points       []TrafficPoint
}

type Segment struct {
	Name     string // First-time | Occasional | Regular | Loyal
	Count    int
	AvgSpend float64
}

type SegmentDistribution struct {
	Availability Availability
	Segments     []Segment
}

type Heatmap struct {
	Availability Availability
	Density      [10][10]float64 // [y][x]
}

// FunnelStage order is fixed: Total Visitors, Engaged, Converted,
// Repeat Customers.
type FunnelStage struct {
	Stage string
	Count int
}

type Funnel struct {
	Availability Availability
	Stages       []FunnelStage
}

type HourTraffic struct {
	Hour     int // 9..20
	Visitors int
}

type PeakHours struct {
	Availability Availability
	Hours        []HourTraffic
}

type DwellBucket struct {
	Label string // e.g. "5-15 min"
	Count int
}

type DwellDistribution struct {
	Availability Availability
	Buckets      []DwellBucket
}
