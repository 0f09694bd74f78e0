package api

type Store struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Location       string  `json:"location"`
	Type           string  `json:"type"`
	GeofenceRadius float64 `json:"geofence_radius"`
}

type KeyMetrics struct {
	Availability   string  `json:"availability"`
	FootTraffic    int     `json:"foot_traffic"`
	ConversionRate float64 `json:"conversion_rate"`
	AvgPurchase    float64 `json:"avg_purchase"`
}

type TrafficPoint struct {
	Date     string `json:"date"`
	Visitors int    `json:"visitors"`
}

type TrafficSeries struct {
	Availability string         `json:"availability"`
	Points       []TrafficPoint `json:"points"`
}

type Segment struct {
	Segment  string  `json:"segment"`
	Count    int     `json:"count"`
	AvgSpend float64 `json:"avg_spend"`
}

type SegmentDistribution struct {
	Availability string    `json:"availability"`
	Segments     []Segment `json:"segments"`
}

type Heatmap struct {
	Availability string         `json:"availability"`
	Density      [10][10]float64 `json:"density"`
}

type FunnelStage struct {
	Stage string `json:"stage"`
	Count int    `json:"count"`
}

type Funnel struct {
	Availability string        `json:"availability"`
	Stages       []FunnelStage `json:"stages"`
}

type HourTraffic struct {
	Hour     int `json:"hour"`
	Visitors int `json:"visitors"`
}

type PeakHours struct {
	Availability string        `json:"availability"`
	Hours        []HourTraffic `json:"hours"`
}

type DwellBucket struct {
	Duration string `json:"duration"`
	Count    int    `json:"count"`
}

type DwellDistribution struct {
	Availability string        `json:"availability"`
	Buckets      []DwellBucket `json:"buckets"`
}

type Recommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	ImpactScore int    `json:"impact_score"`
}

type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

type Error struct {
	Error string `json:"error"`
}
