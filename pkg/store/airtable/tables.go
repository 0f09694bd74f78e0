package airtable

import (
	"context"
	"strconv"

	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
)

// Table names in the record source base.
const (
	TableStores    = "Stores"
	TableVisitors  = "Visitors"
	TablePurchases = "Purchases"
	TableSegments  = "CustomerSegments"
	TableHeatmap   = "HeatmapData"
)

// Field names shared across tables.
const (
	fieldStoreID = "StoreID"
	fieldDate    = "Date"
)

// Query narrows tabular reads to a store and an inclusive date window.
// Zero-valued members contribute no filter clause.
type Query struct {
	StoreID   string
	StartDate string
	EndDate   string
}

// Store is the typed read/write surface over the record source. Every
// reader returns rows with a fixed schema: absent fields become zero
// values and an empty match set is an empty, non-nil slice.
type Store interface {
	Stores(ctx context.Context) ([]store.StoreRow, error)
	StoreByID(ctx context.Context, id string) (store.StoreRow, error)
	Visits(ctx context.Context, q Query) ([]store.VisitRow, error)
	Purchases(ctx context.Context, q Query) ([]store.PurchaseRow, error)
	Segments(ctx context.Context, storeID string) ([]store.SegmentRow, error)
	DensityGrid(ctx context.Context, storeID string, date string) (store.DensityGrid, bool, error)
}

type tables struct {
	client *Client
}

func NewStore(client *Client) Store {
	return &tables{client: client}
}

func (t *tables) Stores(ctx context.Context) ([]store.StoreRow, error) {
	records, err := t.client.List(ctx, TableStores, "")
	if err != nil {
		return nil, err
	}

	rows := make([]store.StoreRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, storeRowFromRecord(r))
	}
	return rows, nil
}

func (t *tables) StoreByID(ctx context.Context, id string) (store.StoreRow, error) {
	record, err := t.client.Get(ctx, TableStores, id)
	if err != nil {
		return store.StoreRow{}, err
	}
	return storeRowFromRecord(record), nil
}

func (t *tables) Visits(ctx context.Context, q Query) ([]store.VisitRow, error) {
	filter := recordFilter{StoreID: q.StoreID, StartDate: q.StartDate, EndDate: q.EndDate}
	records, err := t.client.List(ctx, TableVisitors, filter.formula())
	if err != nil {
		return nil, err
	}

	rows := make([]store.VisitRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, store.VisitRow{
			ID:        r.ID,
			StoreID:   stringField(r.Fields, fieldStoreID),
			Date:      stringField(r.Fields, fieldDate),
			Time:      stringField(r.Fields, "Time"),
			VisitorID: stringField(r.Fields, "VisitorID"),
			Duration:  intField(r.Fields, "Duration"),
			Converted: boolField(r.Fields, "Converted"),
		})
	}
	return rows, nil
}

func (t *tables) Purchases(ctx context.Context, q Query) ([]store.PurchaseRow, error) {
	filter := recordFilter{StoreID: q.StoreID, StartDate: q.StartDate, EndDate: q.EndDate}
	records, err := t.client.List(ctx, TablePurchases, filter.formula())
	if err != nil {
		return nil, err
	}

	rows := make([]store.PurchaseRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, store.PurchaseRow{
			ID:        r.ID,
			StoreID:   stringField(r.Fields, fieldStoreID),
			Date:      stringField(r.Fields, fieldDate),
			Time:      stringField(r.Fields, "Time"),
			VisitorID: stringField(r.Fields, "VisitorID"),
			Amount:    floatField(r.Fields, "Amount"),
			Items:     intField(r.Fields, "Items"),
		})
	}
	return rows, nil
}

func (t *tables) Segments(ctx context.Context, storeID string) ([]store.SegmentRow, error) {
	filter := recordFilter{StoreID: storeID}
	records, err := t.client.List(ctx, TableSegments, filter.formula())
	if err != nil {
		return nil, err
	}

	rows := make([]store.SegmentRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, store.SegmentRow{
			ID:       r.ID,
			StoreID:  stringField(r.Fields, fieldStoreID),
			Segment:  stringField(r.Fields, "Segment"),
			Count:    intField(r.Fields, "Count"),
			AvgSpend: floatField(r.Fields, "AvgSpend"),
		})
	}
	return rows, nil
}

// DensityGrid returns the full 10x10 grid for a store and date, plus
// whether any cell records existed. Cells start at zero and are
// overwritten per matching record; out-of-range coordinates are clamped
// into the grid rather than rejected.
func (t *tables) DensityGrid(ctx context.Context, storeID string, date string) (store.DensityGrid, bool, error) {
	var grid store.DensityGrid

	filter := recordFilter{StoreID: storeID, Date: date}
	records, err := t.client.List(ctx, TableHeatmap, filter.formula())
	if err != nil {
		return grid, false, err
	}
	if len(records) == 0 {
		return grid, false, nil
	}

	for _, r := range records {
		x := clampCoord(intField(r.Fields, "X"))
		y := clampCoord(intField(r.Fields, "Y"))
		grid[y][x] = floatField(r.Fields, "Density")
	}
	return grid, true, nil
}

func clampCoord(v int) int {
	if v < 0 {
		return 0
	}
	if v > store.GridSize-1 {
		return store.GridSize - 1
	}
	return v
}

func storeRowFromRecord(r store.Record) store.StoreRow {
	return store.StoreRow{
		ID:             r.ID,
		Name:           stringField(r.Fields, "Name"),
		Location:       stringField(r.Fields, "Location"),
		Type:           stringField(r.Fields, "Type"),
		GeofenceRadius: floatField(r.Fields, "GeofenceRadius"),
	}
}

// Field coercion helpers. The record source hands back loosely typed JSON;
// numbers may arrive as float64 or string depending on the column type.

func stringField(fields map[string]any, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}

func intField(fields map[string]any, name string) int {
	switch v := fields[name].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

func floatField(fields map[string]any, name string) float64 {
	switch v := fields[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func boolField(fields map[string]any, name string) bool {
	if v, ok := fields[name].(bool); ok {
		return v
	}
	return false
}
