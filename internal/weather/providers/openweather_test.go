package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

const londonPayload = `{
	"name": "London",
	"sys": {"country": "GB"},
	"weather": [{"description": "light rain", "icon": "10d"}],
	"main": {"temp": 12.6, "feels_like": 11.4, "humidity": 81, "pressure": 1012},
	"wind": {"speed": 4.1},
	"visibility": 10000
}`

func newTestGateway(t *testing.T, handler http.HandlerFunc, cfg OpenWeatherConfig) *OpenWeatherGateway {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg.BaseURL = srv.URL
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	return NewOpenWeatherGateway(srv.Client(), cfg)
}

func TestFetchWeather_Success(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("q") != "New York" {
			t.Errorf("expected q=New York, got %q", q.Get("q"))
		}
		if q.Get("appid") != "test-key" {
			t.Errorf("expected appid=test-key, got %q", q.Get("appid"))
		}
		if q.Get("units") != "metric" {
			t.Errorf("expected units=metric, got %q", q.Get("units"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(londonPayload))
	}, OpenWeatherConfig{})

	snap, err := gw.FetchWeather(context.Background(), "  New York ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := weather.Snapshot{
		City:        "London",
		Country:     "GB",
		Description: "light rain",
		Icon:        "10d",
		Temperature: 12.6,
		FeelsLike:   11.4,
		Humidity:    81,
		Pressure:    1012,
		WindSpeed:   4.1,
		Visibility:  10000,
	}
	if snap != expected {
		t.Errorf("expected %+v, got %+v", expected, snap)
	}
}

func TestFetchWeather_StatusMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		kind     weather.Kind
		contains string
	}{
		{name: "not found", status: http.StatusNotFound, kind: weather.KindNotFound, contains: "check the spelling"},
		{name: "unauthorized", status: http.StatusUnauthorized, kind: weather.KindAuth, contains: "authentication failed"},
		{name: "rate limited", status: http.StatusTooManyRequests, kind: weather.KindRateLimited, contains: "Too many requests"},
		{name: "server error", status: http.StatusBadGateway, kind: weather.KindServer, contains: "Server error (502)"},
		{name: "teapot", status: http.StatusTeapot, kind: weather.KindServer, contains: "Server error (418)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(`{"cod":"x","message":"nope"}`))
			}, OpenWeatherConfig{})

			_, err := gw.FetchWeather(context.Background(), "Atlantis")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if kind := weather.KindOf(err); kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, kind)
			}
			if msg := weather.MessageOf(err); !strings.Contains(msg, tt.contains) {
				t.Errorf("expected message containing %q, got %q", tt.contains, msg)
			}
		})
	}
}

func TestFetchWeather_Timeout(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}, OpenWeatherConfig{Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := gw.FetchWeather(context.Background(), "Slowtown")
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindTimeout {
		t.Errorf("expected kind %q, got %q (%v)", weather.KindTimeout, kind, err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("timeout took too long: %v", elapsed)
	}
}

func TestFetchWeather_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	gw := NewOpenWeatherGateway(&http.Client{}, OpenWeatherConfig{APIKey: "k", BaseURL: baseURL})

	_, err := gw.FetchWeather(context.Background(), "Nowhere")
	if err == nil {
		t.Fatal("expected network error, got nil")
	}
	if kind := weather.KindOf(err); kind != weather.KindNetwork {
		t.Errorf("expected kind %q, got %q (%v)", weather.KindNetwork, kind, err)
	}
	if msg := weather.MessageOf(err); msg != weather.MsgNetwork {
		t.Errorf("expected message %q, got %q", weather.MsgNetwork, msg)
	}
}

func TestFetchWeather_EmptyInputSkipsNetwork(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}, OpenWeatherConfig{})

	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := gw.FetchWeather(context.Background(), in)
		if kind := weather.KindOf(err); kind != weather.KindEmptyInput {
			t.Errorf("input %q: expected kind %q, got %q", in, weather.KindEmptyInput, kind)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no upstream calls, got %d", n)
	}
}

func TestFetchWeather_MalformedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `invalid json {`},
		{name: "missing main", body: `{"name":"X","sys":{"country":"XX"},"weather":[{"description":"d","icon":"01d"}],"wind":{"speed":1},"visibility":1000}`},
		{name: "empty weather array", body: `{"name":"X","sys":{"country":"XX"},"weather":[],"main":{"temp":1},"wind":{"speed":1},"visibility":1000}`},
		{name: "missing visibility", body: `{"name":"X","sys":{"country":"XX"},"weather":[{"description":"d","icon":"01d"}],"main":{"temp":1},"wind":{"speed":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}, OpenWeatherConfig{})

			_, err := gw.FetchWeather(context.Background(), "X")
			if kind := weather.KindOf(err); kind != weather.KindParse {
				t.Errorf("expected kind %q, got %q (%v)", weather.KindParse, kind, err)
			}
		})
	}
}

func TestFetchWeather_BreakerOpensOnServerErrors(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}, OpenWeatherConfig{Breaker: BreakerConfig{MaxFailures: 2, Cooldown: time.Minute}})

	for i := 0; i < 2; i++ {
		_, err := gw.FetchWeather(context.Background(), "Paris")
		if kind := weather.KindOf(err); kind != weather.KindServer {
			t.Fatalf("attempt %d: expected kind %q, got %q", i, weather.KindServer, kind)
		}
	}

	_, err := gw.FetchWeather(context.Background(), "Paris")
	if kind := weather.KindOf(err); kind != weather.KindUnavailable {
		t.Fatalf("expected kind %q once open, got %q", weather.KindUnavailable, kind)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Errorf("expected 2 upstream calls, got %d", n)
	}
}

func TestFetchWeather_BreakerIgnoresClientErrors(t *testing.T) {
	var calls int32
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}, OpenWeatherConfig{Breaker: BreakerConfig{MaxFailures: 1, Cooldown: time.Minute}})

	for i := 0; i < 3; i++ {
		_, err := gw.FetchWeather(context.Background(), "Atlantis")
		if kind := weather.KindOf(err); kind != weather.KindNotFound {
			t.Fatalf("attempt %d: expected kind %q, got %q", i, weather.KindNotFound, kind)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("expected 3 upstream calls, got %d", n)
	}
}
