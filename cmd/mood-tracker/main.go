package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/kelvins/geocoder"

	httpapi "github.com/i474232898/mood-tracker/internal/api/http"
	"github.com/i474232898/mood-tracker/internal/config"
	"github.com/i474232898/mood-tracker/internal/mood"
	"github.com/i474232898/mood-tracker/internal/scheduler"
	"github.com/i474232898/mood-tracker/internal/store"
	"github.com/i474232898/mood-tracker/internal/weather"
	"github.com/i474232898/mood-tracker/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Providers are tried in order; OpenWeather is the primary source.
	provs := []weather.Provider{
		providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey),
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}
	if cfg.GeocoderAPIKey != "" {
		geocoder.ApiKey = cfg.GeocoderAPIKey
		provs = append(provs, providers.NewOpenMeteoProvider(httpClient, providers.GoogleGeocoder()))
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("WARN: OPENWEATHER_API_KEY is not set; weather lookups fall back unless another provider is configured")
	}
	gateway := weather.NewGateway(provs, cfg.WeatherTimeout)

	var moodStore mood.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		moodStore = store.NewMemoryStore(cfg.MaxEntries)
	default:
		fileStore := store.NewFileStore(cfg.MoodsFile, cfg.MaxEntries)
		// The document must exist before the first request is served.
		if err := fileStore.Init(context.Background()); err != nil {
			log.Fatalf("failed to initialize mood store: %v", err)
		}
		defer fileStore.Close()
		moodStore = fileStore
	}
	moods := mood.NewService(moodStore)

	// Periodic provider health probe.
	probe := scheduler.New(cfg.ProbeCities, cfg.ProbeInterval, gateway)
	if err := probe.Start(); err != nil {
		log.Fatalf("failed to start weather probe: %v", err)
	}
	defer probe.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "mood-tracker",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "mood-tracker",
		})
	})

	httpapi.RegisterRoutes(app, moods, gateway)

	// Browser front end.
	app.Static("/", cfg.PublicDir)

	go func() {
		log.Printf("INFO: mood-tracker listening on :%s (store=%s, providers=%v)", cfg.Port, cfg.StoreBackend, gateway.Providers())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("INFO: fiber server stopped: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("ERROR: during shutdown: %v", err)
	}
}
