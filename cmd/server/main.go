package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/adapters/geocode"
	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/adapters/route"
	"fuel-route-service/internal/api"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/ingest"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Redis, maps.co, OSRM) behind ports,
// starts the ingestion workers, and serves HTTP until signalled.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	obs.InitLogger("fuel-route-service", cfg.Env)

	if strings.TrimSpace(cfg.Geocode.APIKey) == "" {
		log.Fatal().Msg("GEOCODE_API_KEY is required")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	pg, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pg.Close()

	if err := repositories.InitSchema(pg); err != nil {
		log.Fatal().Err(err).Msg("schema init failed")
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.RedisAddr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisCache.Close()

	geocoder := geocode.NewMapsCoGeocoder(
		cfg.Geocode.URL, cfg.Geocode.APIKey, redisCache,
		cfg.Geocode.Timeout, cfg.Geocode.CacheTTL)
	routeProvider := route.NewOSRMRouteProvider(
		cfg.Routing.BaseURL, redisCache,
		cfg.Routing.Timeout, cfg.Routing.CacheTTL)
	stationRepo := repositories.NewPostgresStationRepository(pg)
	uploadRepo := repositories.NewPostgresUploadRepository(pg)

	backfill := ingest.NewBackfill(stationRepo, geocoder,
		cfg.Ingest.BackfillBatch, cfg.Ingest.BackfillInterval)
	processor := ingest.NewProcessor(uploadRepo, stationRepo, backfill,
		cfg.Ingest.UploadDir, cfg.Ingest.PollInterval)

	planner := services.PlannerConfig{
		MaxRangeMiles:         cfg.Planner.MaxRangeMiles,
		MilesPerGallon:        cfg.Planner.MilesPerGallon,
		DefaultPricePerGallon: cfg.Planner.DefaultPricePerGallon,
		StationCacheTTL:       cfg.Planner.StationCacheTTL,
	}
	router := api.NewRouter(geocoder, routeProvider, stationRepo, uploadRepo,
		redisCache, planner, cfg.Ingest.UploadDir, processor.Wake)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var workers sync.WaitGroup
	workers.Add(2)
	go func() { defer workers.Done(); processor.Run(ctx) }()
	go func() { defer workers.Done(); backfill.Run(ctx) }()

	// Timeouts are tuned for cold-cache trip planning (two external APIs on
	// the request path).
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	workers.Wait()
}
