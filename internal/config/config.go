package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration, loaded from the environment.
type Config struct {
	Env      string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Geocode  GeocodeConfig
	Routing  RoutingConfig
	Planner  PlannerConfig
	Ingest   IngestConfig
}

type ServerConfig struct {
	Port int
}

type DatabaseConfig struct {
	URL string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type GeocodeConfig struct {
	URL      string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type RoutingConfig struct {
	BaseURL  string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// PlannerConfig carries the vehicle model and stop-selection parameters.
type PlannerConfig struct {
	MaxRangeMiles         float64
	MilesPerGallon        float64
	DefaultPricePerGallon float64
	StationCacheTTL       time.Duration
}

type IngestConfig struct {
	UploadDir        string
	PollInterval     time.Duration
	BackfillBatch    int
	BackfillInterval time.Duration
}

// Load reads configuration from environment variables with defaults suitable
// for local development.
func Load() *Config {
	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port: getEnvAsInt("PORT", 8080),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Geocode: GeocodeConfig{
			URL:      getEnv("GEOCODE_URL", "https://geocode.maps.co/search"),
			APIKey:   getEnv("GEOCODE_API_KEY", ""),
			Timeout:  getEnvAsDuration("GEOCODE_TIMEOUT", 10*time.Second),
			CacheTTL: getEnvAsDuration("GEOCODE_CACHE_TTL", 7*24*time.Hour),
		},
		Routing: RoutingConfig{
			BaseURL:  getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
			Timeout:  getEnvAsDuration("OSRM_TIMEOUT", 15*time.Second),
			CacheTTL: getEnvAsDuration("ROUTE_CACHE_TTL", 24*time.Hour),
		},
		Planner: PlannerConfig{
			MaxRangeMiles:         getEnvAsFloat("TRUCK_RANGE_MILES", 500),
			MilesPerGallon:        getEnvAsFloat("TRUCK_MPG", 10),
			DefaultPricePerGallon: getEnvAsFloat("DEFAULT_PRICE_PER_GALLON", 3.5),
			StationCacheTTL:       getEnvAsDuration("STATION_CACHE_TTL", 24*time.Hour),
		},
		Ingest: IngestConfig{
			UploadDir:        getEnv("UPLOAD_DIR", "data/uploads"),
			PollInterval:     getEnvAsDuration("UPLOAD_POLL_INTERVAL", 30*time.Second),
			BackfillBatch:    getEnvAsInt("GEOCODE_BACKFILL_BATCH", 100),
			BackfillInterval: getEnvAsDuration("GEOCODE_BACKFILL_INTERVAL", 5*time.Minute),
		},
	}
}

// RedisAddr returns the Redis address in host:port form.
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
