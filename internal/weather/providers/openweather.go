package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

const (
	DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"
	DefaultTimeout        = 5 * time.Second
)

var validate = validator.New()

// OpenWeatherConfig bundles the gateway settings.
type OpenWeatherConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Breaker BreakerConfig
}

// OpenWeatherGateway implements weather.Gateway for the OpenWeatherMap
// current weather endpoint.
type OpenWeatherGateway struct {
	name    string
	apiKey  string
	baseURL string
	timeout time.Duration
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherGateway(client *http.Client, cfg OpenWeatherConfig) *OpenWeatherGateway {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &OpenWeatherGateway{
		name:    "openweathermap",
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		timeout: timeout,
		client:  client,
		circuit: newCircuitBreaker("openweather", cfg.Breaker),
	}
}

func (g *OpenWeatherGateway) Name() string {
	return g.name
}

// FetchWeather issues one GET for city. The exchange, body included, is
// bounded by the configured timeout.
func (g *OpenWeatherGateway) FetchWeather(ctx context.Context, city string) (weather.Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return weather.Snapshot{}, weather.NewError(weather.KindEmptyInput, nil)
	}

	return executeOnce(g.circuit, func() (weather.Snapshot, error) {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return g.fetch(ctx, city)
	})
}

func (g *OpenWeatherGateway) fetch(ctx context.Context, city string) (weather.Snapshot, error) {
	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", g.apiKey)
	values.Set("units", "metric")

	u := fmt.Sprintf("%s?%s", g.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return weather.Snapshot{}, weather.NewError(weather.KindUnknown, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doRequest(ctx, g.client, req)
	if err != nil {
		return weather.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return weather.Snapshot{}, weather.StatusError(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return weather.Snapshot{}, classifyTransportError(ctx, err)
	}

	return parseOpenWeather(body)
}

// openWeatherPayload mirrors the subset of the response we render. Pointer
// members let validation tell a missing object from a zero value.
type openWeatherPayload struct {
	Name string `json:"name"`
	Sys  *struct {
		Country string `json:"country"`
	} `json:"sys" validate:"required"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather" validate:"required,min=1"`
	Main *struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
		Pressure  float64 `json:"pressure"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed float64 `json:"speed"`
	} `json:"wind" validate:"required"`
	Visibility *float64 `json:"visibility" validate:"required"`
}

func parseOpenWeather(body []byte) (weather.Snapshot, error) {
	var payload openWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Snapshot{}, weather.NewError(weather.KindParse, fmt.Errorf("decode response: %w", err))
	}
	if err := validate.Struct(payload); err != nil {
		return weather.Snapshot{}, weather.NewError(weather.KindParse, fmt.Errorf("unexpected response shape: %w", err))
	}

	return weather.Snapshot{
		City:        payload.Name,
		Country:     payload.Sys.Country,
		Description: payload.Weather[0].Description,
		Icon:        payload.Weather[0].Icon,
		Temperature: payload.Main.Temp,
		FeelsLike:   payload.Main.FeelsLike,
		Humidity:    payload.Main.Humidity,
		Pressure:    payload.Main.Pressure,
		WindSpeed:   payload.Wind.Speed,
		Visibility:  *payload.Visibility,
	}, nil
}
