package providers

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

// BreakerConfig controls the gateway circuit breaker.
// MaxFailures <= 0 disables the breaker.
type BreakerConfig struct {
	MaxFailures int
	Cooldown    time.Duration
}

var errNoHTTPClient = errors.New("http client not configured")

func newCircuitBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.MaxFailures <= 0 {
		return nil
	}
	cooldown := cfg.Cooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	maxFailures := uint32(cfg.MaxFailures)

	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		// Only outcomes that point at an unhealthy upstream count against it.
		IsSuccessful: func(err error) bool {
			switch weather.KindOf(err) {
			case weather.KindTimeout, weather.KindNetwork, weather.KindServer:
				return false
			}
			return true
		},
	})
}

// executeOnce runs call a single time, through cb when one is configured.
// There are no retries.
func executeOnce(cb *gobreaker.CircuitBreaker, call func() (weather.Snapshot, error)) (weather.Snapshot, error) {
	if cb == nil {
		return call()
	}

	result, err := cb.Execute(func() (interface{}, error) {
		return call()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return weather.Snapshot{}, weather.NewError(weather.KindUnavailable, err)
	}
	if err != nil {
		return weather.Snapshot{}, err
	}

	snap, ok := result.(weather.Snapshot)
	if !ok {
		return weather.Snapshot{}, weather.NewError(weather.KindUnknown, errors.New("unexpected result type from circuit breaker"))
	}
	return snap, nil
}

// doRequest sends req and classifies transport failures. A non-nil response
// is returned only when err is nil.
func doRequest(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, weather.NewError(weather.KindNetwork, errNoHTTPClient)
	}

	resp, err := client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, classifyTransportError(ctx, err)
	}
	return resp, nil
}

func classifyTransportError(ctx context.Context, err error) *weather.Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return weather.NewError(weather.KindTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return weather.NewError(weather.KindTimeout, err)
	}
	return weather.NewError(weather.KindNetwork, err)
}
