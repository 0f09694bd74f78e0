package analytics

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/wandur-labs/wandur-analytics/pkg/adapters"
	"github.com/wandur-labs/wandur-analytics/pkg/models/api"
	"github.com/wandur-labs/wandur-analytics/pkg/models/domain"
	analyticssvc "github.com/wandur-labs/wandur-analytics/pkg/services/analytics"
	"github.com/wandur-labs/wandur-analytics/pkg/services/recommend"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

const dateLayout = "2006-01-02"

type Handler struct {
	store     airtable.Store
	processor analyticssvc.Processor
	selector  recommend.Selector
}

func NewHandler(
	store airtable.Store,
	processor analyticssvc.Processor,
	selector recommend.Selector,
) *Handler {
	return &Handler{
		store:     store,
		processor: processor,
		selector:  selector,
	}
}

func (h *Handler) ListStores(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rows, err := h.store.Stores(ctx)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to list stores", err)
		return
	}

	response := make([]api.Store, 0, len(rows))
	for _, row := range rows {
		response = append(response, adapters.MapStoreDomainToApi(domain.Store{
			ID:             row.ID,
			Name:           row.Name,
			Location:       row.Location,
			Type:           domain.StoreType(row.Type),
			GeofenceRadius: row.GeofenceRadius,
		}))
	}
	respondJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetKeyMetrics(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	metrics, err := h.processor.KeyMetrics(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute key metrics", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapKeyMetricsDomainToApi(metrics))
}

func (h *Handler) GetTraffic(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	series, err := h.processor.Traffic(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute traffic series", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapTrafficDomainToApi(series))
}

func (h *Handler) GetSegments(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	segments, err := h.processor.Segments(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute segments", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapSegmentsDomainToApi(segments))
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	heatmap, err := h.processor.Heatmap(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute heatmap", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapHeatmapDomainToApi(heatmap))
}

func (h *Handler) GetFunnel(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	funnel, err := h.processor.Funnel(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute funnel", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapFunnelDomainToApi(funnel))
}

func (h *Handler) GetPeakHours(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	peak, err := h.processor.PeakHours(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute peak hours", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapPeakHoursDomainToApi(peak))
}

func (h *Handler) GetDwellTime(w http.ResponseWriter, r *http.Request) {
	storeID, window, ok := h.analyticsParams(w, r)
	if !ok {
		return
	}

	dwell, err := h.processor.DwellTime(r.Context(), storeID, window.Start, window.End)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to compute dwell time distribution", err)
		return
	}
	respondJSON(w, r, http.StatusOK, adapters.MapDwellDomainToApi(dwell))
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	storeID := chi.URLParam(r, "store")

	recommendations, err := h.selector.Recommendations(r.Context(), storeID)
	if err != nil {
		respondError(w, r, http.StatusBadGateway, "failed to select recommendations", err)
		return
	}

	response := make([]api.Recommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		response = append(response, adapters.MapRecommendationDomainToApi(rec))
	}
	respondJSON(w, r, http.StatusOK, response)
}

// analyticsParams pulls the store id and validates the optional from/to
// query dates. On a malformed date it writes a 400 and reports !ok.
func (h *Handler) analyticsParams(w http.ResponseWriter, r *http.Request) (string, domain.DateRange, bool) {
	storeID := chi.URLParam(r, "store")

	window := domain.DateRange{
		Start: r.URL.Query().Get("from"),
		End:   r.URL.Query().Get("to"),
	}
	for _, date := range []string{window.Start, window.End} {
		if date == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, date); err != nil {
			respondError(w, r, http.StatusBadRequest, "dates must be YYYY-MM-DD", err)
			return "", domain.DateRange{}, false
		}
	}
	return storeID, window, true
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
