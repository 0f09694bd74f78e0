package records

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/wandur-labs/wandur-analytics/pkg/models/api"
	"github.com/wandur-labs/wandur-analytics/pkg/models/store"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

// Store is the raw CRUD slice of the record-source client these handlers
// pass through.
type Store interface {
	List(ctx context.Context, table string, formula string) ([]store.Record, error)
	Get(ctx context.Context, table string, id string) (store.Record, error)
	Insert(ctx context.Context, table string, fields map[string]any) (store.Record, error)
	Update(ctx context.Context, table string, id string, fields map[string]any) (store.Record, error)
	Delete(ctx context.Context, table string, id string) (store.Record, error)
}

// allowedTables restricts passthrough CRUD to the base's known tables.
var allowedTables = map[string]bool{
	airtable.TableStores:    true,
	airtable.TableVisitors:  true,
	airtable.TablePurchases: true,
	airtable.TableSegments:  true,
	airtable.TableHeatmap:   true,
}

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	table, ok := h.tableParam(w, r)
	if !ok {
		return
	}

	records, err := h.store.List(r.Context(), table, "")
	if err != nil {
		h.respondStoreError(w, r, "failed to list records", err)
		return
	}

	response := make([]api.Record, 0, len(records))
	for _, record := range records {
		response = append(response, mapRecord(record))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := h.tableParam(w, r)
	if !ok {
		return
	}

	record, err := h.store.Get(r.Context(), table, chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, "failed to get record", err)
		return
	}
	respondJSON(w, r, http.StatusOK, mapRecord(record))
}

func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := h.tableParam(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, r, http.StatusBadRequest, "request body must be a JSON field mapping", err)
		return
	}

	record, err := h.store.Insert(r.Context(), table, fields)
	if err != nil {
		h.respondStoreError(w, r, "failed to create record", err)
		return
	}
	respondJSON(w, r, http.StatusCreated, mapRecord(record))
}

func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := h.tableParam(w, r)
	if !ok {
		return
	}

	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		respondError(w, r, http.StatusBadRequest, "request body must be a JSON field mapping", err)
		return
	}

	record, err := h.store.Update(r.Context(), table, chi.URLParam(r, "id"), fields)
	if err != nil {
		h.respondStoreError(w, r, "failed to update record", err)
		return
	}
	respondJSON(w, r, http.StatusOK, mapRecord(record))
}

func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	table, ok := h.tableParam(w, r)
	if !ok {
		return
	}

	record, err := h.store.Delete(r.Context(), table, chi.URLParam(r, "id"))
	if err != nil {
		h.respondStoreError(w, r, "failed to delete record", err)
		return
	}
	respondJSON(w, r, http.StatusOK, mapRecord(record))
}

func (h *Handler) tableParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	table := chi.URLParam(r, "table")
	if !allowedTables[table] {
		respondError(w, r, http.StatusNotFound, "unknown table", nil)
		return "", false
	}
	return table, true
}

func (h *Handler) respondStoreError(w http.ResponseWriter, r *http.Request, message string, err error) {
	if errors.Is(err, airtable.ErrNotFound) {
		respondError(w, r, http.StatusNotFound, "record not found", err)
		return
	}
	respondError(w, r, http.StatusBadGateway, message, err)
}

func mapRecord(record store.Record) api.Record {
	fields := record.Fields
	if fields == nil {
		fields = map[string]any{}
	}
	return api.Record{ID: record.ID, Fields: fields}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Int("status", status).Msg(message)
	respondJSON(w, r, status, api.Error{Error: message})
}
