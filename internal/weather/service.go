package weather

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// Service fronts a Gateway: it rejects blank queries before any network call
// and logs the outcome of each lookup.
type Service struct {
	gateway Gateway
	logger  *slog.Logger
}

// NewService creates a new Service.
func NewService(gateway Gateway, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		gateway: gateway,
		logger:  logger,
	}
}

// FetchWeather trims city and queries the gateway. Blank input yields a
// KindEmptyInput error and never reaches the gateway.
func (s *Service) FetchWeather(ctx context.Context, city string) (Snapshot, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return Snapshot{}, NewError(KindEmptyInput, nil)
	}

	start := time.Now()
	snap, err := s.gateway.FetchWeather(ctx, city)
	if err != nil {
		s.logger.ErrorContext(ctx, "weather fetch failed",
			"city", city,
			"kind", string(KindOf(err)),
			"elapsed", time.Since(start),
			"error", err,
		)
		return Snapshot{}, err
	}

	s.logger.DebugContext(ctx, "weather fetched",
		"city", city,
		"resolved", snap.City,
		"elapsed", time.Since(start),
	)
	return snap, nil
}
