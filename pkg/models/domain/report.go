package domain

// AnalyticsReport bundles the terminal-facing analytics for one store and
// window.
type AnalyticsReport struct {
	StoreName string
	Period    DateRange
	Metrics   KeyMetrics
	Funnel    Funnel
	PeakHours PeakHours
	Dwell     DwellDistribution
}
