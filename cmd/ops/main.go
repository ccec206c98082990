// backend-go/cmd/ops/main.go
//
// Internal ops surface, kept off the public reporting API: cache
// invalidation and snapshot archival.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/transito-cc/backend-go/internal/cache"
	"github.com/transito-cc/backend-go/internal/config"
	"github.com/transito-cc/backend-go/internal/pipeline"
	"github.com/transito-cc/backend-go/internal/repository/postgres"
	"github.com/transito-cc/backend-go/internal/service"
	"github.com/transito-cc/backend-go/internal/storage"
	"github.com/transito-cc/backend-go/pkg/logger"
)

const dateLayout = "2006-01-02"

func main() {
	addr := flag.String("addr", ":8081", "listen address")
	flag.Parse()

	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		log.Fatal().Err(err).Msg("report cache unavailable")
	}

	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		client, err := storage.NewMinioClient(cfg.Archive)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize snapshot archive")
		}
		archive = client
	}

	reportService := service.NewReportService(
		postgres.NewEmployeeRepository(db),
		postgres.NewDeliveryRepository(db),
		pipeline.New(cfg.Rules),
		reportCache,
		archive,
	)

	router := mux.NewRouter()
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	router.HandleFunc("/internal/cache/invalidate", func(w http.ResponseWriter, r *http.Request) {
		if err := reportService.InvalidateCache(r.Context()); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
	}).Methods(http.MethodPost)

	router.HandleFunc("/internal/archive", func(w http.ResponseWriter, r *http.Request) {
		from, to, err := parseWindow(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		key, err := reportService.Archive(r.Context(), from, to)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "archived", "key": key})
	}).Methods(http.MethodPost)

	srv := &http.Server{
		Addr:         *addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // archive rebuilds can be slow
	}

	go func() {
		log.Info().Str("addr", *addr).Msg("starting ops server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start ops server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("ops server forced to shutdown")
	}
}

func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var err error
	if raw := strings.TrimSpace(r.URL.Query().Get("from")); raw != "" {
		if from, err = time.Parse(dateLayout, raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if raw := strings.TrimSpace(r.URL.Query().Get("to")); raw != "" {
		if to, err = time.Parse(dateLayout, raw); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
