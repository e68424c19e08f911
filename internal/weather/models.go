package weather

// Snapshot is the current-conditions view returned for one city query.
// It is produced fresh for every query and never persisted.
type Snapshot struct {
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Temperature float64 `json:"temperatureC"`
	FeelsLike   float64 `json:"feelsLikeC"`
	Humidity    float64 `json:"humidityPercent"`
	Pressure    float64 `json:"pressureHpa"`
	WindSpeed   float64 `json:"windSpeed"`

	// Visibility is in metres, as reported upstream.
	Visibility float64 `json:"visibilityM"`
}
