package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string `validate:"required,url"`

	// RequestTimeout bounds each outbound weather request.
	RequestTimeout time.Duration `validate:"gt=0"`

	// Circuit breaker: consecutive failures before opening (0 = disabled)
	// and how long it stays open.
	BreakerMaxFailures int           `validate:"gte=0"`
	BreakerCooldown    time.Duration `validate:"gte=0"`

	// Persistence.
	StoreDriver string `validate:"oneof=sqlite memory"`
	StorePath   string `validate:"required_if=StoreDriver sqlite"`
	StoreScope  string `validate:"required"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json text"`

	Port string `validate:"required,numeric"`
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")

	timeout, err := time.ParseDuration(getenvDefault("WEATHER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid WEATHER_TIMEOUT: %w", err)
	}
	cfg.RequestTimeout = timeout

	cfg.BreakerMaxFailures = getenvInt("BREAKER_MAX_FAILURES", 5)
	cooldown, err := time.ParseDuration(getenvDefault("BREAKER_COOLDOWN", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_COOLDOWN: %w", err)
	}
	cfg.BreakerCooldown = cooldown

	cfg.StoreDriver = getenvDefault("STORE_DRIVER", "sqlite")
	cfg.StorePath = getenvDefault("STORE_PATH", "weathernow.db")
	cfg.StoreScope = getenvDefault("STORE_SCOPE", "default")

	cfg.LogLevel = getenvDefault("LOG_LEVEL", "info")
	cfg.LogFormat = getenvDefault("LOG_FORMAT", "json")

	cfg.Port = getenvDefault("PORT", "8080")

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.OpenWeatherAPIKey == "" {
		log.Printf("WARN: OPENWEATHER_API_KEY is not set; searches will fail authentication")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
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
