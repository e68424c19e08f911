package weather

import (
	"context"
)

// Gateway abstracts the external weather data source (OpenWeatherMap).
type Gateway interface {
	FetchWeather(ctx context.Context, city string) (Snapshot, error)
}
