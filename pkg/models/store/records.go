package store

// Record is a raw document from the record source: an opaque id plus an
// untyped field mapping. Nothing above the airtable store package should
// touch Fields directly.
type Record struct {
	ID     string
	Fields map[string]any
}

// VisitRow is a normalized visitor record. Absent source fields are
// zero-valued, never missing.
type VisitRow struct {
	ID        string
	StoreID   string
	Date      string // YYYY-MM-DD
	Time      string // HH:MM
	VisitorID string
	Duration  int // minutes
	Converted bool
}

type PurchaseRow struct {
	ID        string
	StoreID   string
	Date      string
	Time      string
	VisitorID string
	Amount    float64
	Items     int
}

type SegmentRow struct {
	ID       string
	StoreID  string
	Segment  string
	Count    int
	AvgSpend float64
}

type StoreRow struct {
	ID             string
	Name           string
	Location       string
	Type           string // mall | standalone
	GeofenceRadius float64
}

// GridSize is the side length of a store's density grid.
const GridSize = 10

// DensityGrid is a full 10x10 occupancy grid, row-major [y][x].
type DensityGrid [GridSize][GridSize]float64
