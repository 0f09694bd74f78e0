package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	analyticshandlers "github.com/wandur-labs/wandur-analytics/pkg/handlers/analytics"
	recordshandlers "github.com/wandur-labs/wandur-analytics/pkg/handlers/records"
	wandurmiddleware "github.com/wandur-labs/wandur-analytics/pkg/server/middleware"
	analyticssvc "github.com/wandur-labs/wandur-analytics/pkg/services/analytics"
	"github.com/wandur-labs/wandur-analytics/pkg/services/recommend"
	"github.com/wandur-labs/wandur-analytics/pkg/store/airtable"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server

	shutdownTimeout time.Duration
}

type Dependencies struct {
	Store     airtable.Store
	Records   recordshandlers.Store
	Analytics analyticssvc.Processor
	Selector  recommend.Selector
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	deps := config.Dependencies
	analyticsHandler := analyticshandlers.NewHandler(deps.Store, deps.Analytics, deps.Selector)
	recordsHandler := recordshandlers.NewHandler(deps.Records)

	router := chi.NewRouter()
	router.Use(wandurmiddleware.Logger(&logger))
	router.Use(chimiddleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/stores", analyticsHandler.ListStores)

		r.Route("/stores/{store}", func(r chi.Router) {
			r.Get("/metrics", analyticsHandler.GetKeyMetrics)
			r.Get("/traffic", analyticsHandler.GetTraffic)
			r.Get("/segments", analyticsHandler.GetSegments)
			r.Get("/heatmap", analyticsHandler.GetHeatmap)
			r.Get("/funnel", analyticsHandler.GetFunnel)
			r.Get("/peak-hours", analyticsHandler.GetPeakHours)
			r.Get("/dwell-time", analyticsHandler.GetDwellTime)
			r.Get("/recommendations", analyticsHandler.GetRecommendations)
		})

		r.Route("/records/{table}", func(r chi.Router) {
			r.Get("/", recordsHandler.ListRecords)
			r.Post("/", recordsHandler.CreateRecord)
			r.Get("/{id}", recordsHandler.GetRecord)
			r.Patch("/{id}", recordsHandler.UpdateRecord)
			r.Delete("/{id}", recordsHandler.DeleteRecord)
		})
	})

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

// Router exposes the configured mux, mainly for tests.
func (w *WebAPI) Router() http.Handler {
	return w.router
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
