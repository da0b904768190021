package config

import (
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL       = "https://www.mlb.com"
	DefaultGeocoderURL   = "https://nominatim.openstreetmap.org/"
	DefaultUserAgent     = "mlb_player_hometowns_app"
	DefaultTimeout       = 10 * time.Second
	DefaultOutputDir     = "output"
	DefaultGeocodeTTL    = 7 * 24 * time.Hour
	MaxPlayerConcurrency = 5
	defaultConcurrency   = 1
	defaultFetchRetries  = 0
	defaultLogLevel      = "info"
)

type Config struct {
	BaseURL   string
	UserAgent string
	LogLevel  string
	OutputDir string

	Fetch    FetchConfig
	Geocoder GeocoderConfig
	Map      MapConfig
}

type FetchConfig struct {
	Timeout     time.Duration
	Retries     int
	Concurrency int
}

type GeocoderConfig struct {
	URL       string
	Timeout   time.Duration
	CachePath string
	CacheTTL  time.Duration
}

type MapConfig struct {
	GoogleMapsAPIKey string
}

// Load reads an optional .env file and then the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		BaseURL:   envOrDefault("MLB_BASE_URL", DefaultBaseURL),
		UserAgent: envOrDefault("GEOCODER_USER_AGENT", DefaultUserAgent),
		LogLevel:  envOrDefault("LOG_LEVEL", defaultLogLevel),
		OutputDir: envOrDefault("OUTPUT_DIR", DefaultOutputDir),
		Fetch: FetchConfig{
			Timeout:     durationEnvOrDefault("FETCH_TIMEOUT", DefaultTimeout),
			Retries:     nonNegativeIntEnvOrDefault("FETCH_RETRIES", defaultFetchRetries),
			Concurrency: intEnvOrDefault("PLAYER_CONCURRENCY", defaultConcurrency),
		},
		Geocoder: GeocoderConfig{
			URL:       envOrDefault("GEOCODER_URL", DefaultGeocoderURL),
			Timeout:   durationEnvOrDefault("GEOCODE_TIMEOUT", DefaultTimeout),
			CachePath: envOrDefault("GEOCODE_CACHE_PATH", ""),
			CacheTTL:  durationEnvOrDefault("GEOCODE_CACHE_TTL", DefaultGeocodeTTL),
		},
		Map: MapConfig{
			GoogleMapsAPIKey: envOrDefault("GOOGLE_MAPS_API_KEY", ""),
		},
	}
	cfg.Fetch.Concurrency = ClampConcurrency(cfg.Fetch.Concurrency)

	return cfg
}

// ClampConcurrency keeps the player worker pool between 1 and MaxPlayerConcurrency
func ClampConcurrency(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxPlayerConcurrency {
		return MaxPlayerConcurrency
	}
	return n
}
