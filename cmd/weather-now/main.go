package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/api/http"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/config"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/history"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/observability"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/store"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/theme"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/ui"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather/providers"
)

func main() {
	// Load configuration (also reads .env when present).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	slogger := observability.Configure(os.Stdout, cfg.LogFormat, cfg.LogLevel)

	kv, err := openStore(cfg)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	defer kv.Close()

	// The gateway applies its own per-request timeout; the client only needs
	// transport settings.
	httpClient := &http.Client{}

	gateway := providers.NewOpenWeatherGateway(httpClient, providers.OpenWeatherConfig{
		APIKey:  cfg.OpenWeatherAPIKey,
		BaseURL: cfg.OpenWeatherBaseURL,
		Timeout: cfg.RequestTimeout,
		Breaker: providers.BreakerConfig{
			MaxFailures: cfg.BreakerMaxFailures,
			Cooldown:    cfg.BreakerCooldown,
		},
	})
	service := weather.NewService(gateway, slogger)

	hist := history.NewManager(kv, slogger)
	pref := theme.NewPreference(kv)
	frontend := ui.NewApp(service, hist, pref, ui.WithLogger(slogger))
	if err := frontend.Start(); err != nil {
		log.Fatalf("failed to load persisted state: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-now",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(observability.RequestIDMiddleware())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency}) ${respHeader:X-Request-ID}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-now",
		})
	})

	httpapi.RegisterRoutes(app, frontend, service)

	go func() {
		slogger.Info("server starting", "addr", "http://localhost:"+cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slogger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slogger.Error("error during shutdown", "error", err)
	}
}

func openStore(cfg *config.AppConfig) (store.Store, error) {
	if cfg.StoreDriver == "memory" {
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLiteStore(cfg.StorePath, cfg.StoreScope)
}
