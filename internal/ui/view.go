package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/common"
	"github.com/Dev-33/WeatherNow---Live-Weather-Tracker/internal/weather"
)

// WeatherView is a Snapshot formatted for the result card.
type WeatherView struct {
	Location    string `json:"location"`
	Date        string `json:"date"`
	Emoji       string `json:"emoji"`
	Temperature int    `json:"temperature"`
	FeelsLike   int    `json:"feelsLike"`
	Description string `json:"description"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"windSpeed"`
	Pressure    string `json:"pressure"`
	Visibility  string `json:"visibilityKm"`
}

// NewWeatherView formats snap; now supplies the date line.
func NewWeatherView(snap weather.Snapshot, now time.Time) WeatherView {
	return WeatherView{
		Location:    fmt.Sprintf("%s, %s", snap.City, snap.Country),
		Date:        now.Format("Monday, January 2, 2006"),
		Emoji:       WeatherEmoji(snap.Icon),
		Temperature: common.RoundHalfUp(snap.Temperature),
		FeelsLike:   common.RoundHalfUp(snap.FeelsLike),
		Description: snap.Description,
		Humidity:    formatNumber(snap.Humidity),
		WindSpeed:   formatNumber(snap.WindSpeed),
		Pressure:    formatNumber(snap.Pressure),
		Visibility:  fmt.Sprintf("%.1f", snap.Visibility/1000),
	}
}

// formatNumber prints v with the fewest digits that round-trip (4 not 4.0).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var iconEmoji = map[string]string{
	"01d": "☀️",
	"01n": "🌙",
	"02d": "⛅",
	"02n": "☁️",
	"03d": "☁️",
	"03n": "☁️",
	"04d": "☁️",
	"04n": "☁️",
	"09d": "🌧️",
	"09n": "🌧️",
	"10d": "🌦️",
	"10n": "🌧️",
	"11d": "⛈️",
	"11n": "⛈️",
	"13d": "❄️",
	"13n": "❄️",
	"50d": "🌫️",
	"50n": "🌫️",
}

// WeatherEmoji maps an OpenWeatherMap icon code to an emoji. Unknown codes get
// a thermometer.
func WeatherEmoji(icon string) string {
	if e, ok := iconEmoji[icon]; ok {
		return e
	}
	return "🌡️"
}
