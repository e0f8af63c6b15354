package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"fuel-route-service/internal/adapters/repositories"
	"fuel-route-service/internal/config"
	"fuel-route-service/internal/ingest"
	"fuel-route-service/internal/platform/db"
	"fuel-route-service/internal/platform/obs"
)

// dbtool initializes the database schema and optionally imports a fuel price
// CSV directly, bypassing the upload pipeline. Useful for local bootstrap.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (using environment variables)")
	}

	importPath := flag.String("import", "", "path to a fuel price CSV to load")
	flag.Parse()

	cfg := config.Load()
	obs.InitLogger("fuel-route-dbtool", cfg.Env)

	if strings.TrimSpace(cfg.Database.URL) == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}

	pg, err := db.Open(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pg.Close()

	log.Info().Msg("initializing database schema")
	if err := repositories.InitSchema(pg); err != nil {
		log.Fatal().Err(err).Msg("schema initialization failed")
	}
	log.Info().Msg("schema ready")

	if *importPath == "" {
		return
	}

	f, err := os.Open(*importPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open import file failed")
	}
	defer f.Close()

	stations, err := ingest.ParseStations(f)
	if err != nil {
		log.Fatal().Err(err).Msg("parse import file failed")
	}

	repo := repositories.NewPostgresStationRepository(pg)
	inserted, err := repo.InsertBatch(context.Background(), stations)
	if err != nil {
		log.Fatal().Err(err).Msg("station import failed")
	}
	log.Info().Int("total", len(stations)).Int("inserted", inserted).Msg("station import complete")
}
