package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
)

type AppConfig struct {
	Port string

	// Weather provider keys. Providers without a key are skipped or report
	// themselves as not configured.
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	GeocoderAPIKey    string

	// HTTPTimeout bounds each outbound provider request.
	HTTPTimeout time.Duration
	// WeatherTimeout bounds a whole weather lookup across providers.
	WeatherTimeout time.Duration

	DefaultCity string

	// Weather probe; ProbeInterval 0 disables it.
	ProbeInterval time.Duration
	ProbeCities   []string

	StoreBackend string
	MoodsFile    string
	MaxEntries   int // retention cap of the entry collection

	PublicDir   string
	CORSOrigins string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "3000")

	cfg.OpenWeatherAPIKey = getenvDefault("OPENWEATHER_API_KEY", os.Getenv("WEATHER_API_KEY"))
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.WeatherTimeout, err = getenvDuration("WEATHER_TIMEOUT", "5s"); err != nil {
		return nil, err
	}
	if cfg.ProbeInterval, err = getenvDuration("WEATHER_PROBE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	cfg.DefaultCity = getenvDefault("DEFAULT_CITY", "San Francisco")
	cfg.ProbeCities = splitList(getenvDefault("WEATHER_PROBE_CITIES", cfg.DefaultCity))

	cfg.StoreBackend = strings.ToLower(getenvDefault("STORE_BACKEND", BackendFile))
	if cfg.StoreBackend != BackendFile && cfg.StoreBackend != BackendMemory {
		return nil, fmt.Errorf("invalid STORE_BACKEND %q: want %q or %q", cfg.StoreBackend, BackendFile, BackendMemory)
	}
	cfg.MoodsFile = getenvDefault("MOODS_FILE", "data/moods.json")
	cfg.MaxEntries = getenvInt("STORE_MAX_ENTRIES", 50)
	if cfg.MaxEntries <= 0 {
		return nil, fmt.Errorf("invalid STORE_MAX_ENTRIES: must be positive")
	}

	cfg.PublicDir = getenvDefault("PUBLIC_DIR", "public")
	cfg.CORSOrigins = getenvDefault("CORS_ALLOWED_ORIGINS", "*")

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
