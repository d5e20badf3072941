// Package weather supplies current conditions and a short forecast for a
// location. Every provider failure is soft: callers fall back to a fixed
// mock payload instead of surfacing an error.
package weather

import (
	"context"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Coordinates is a WGS84 position
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// DefaultCoordinates is used when no location is known (New York City)
var DefaultCoordinates = Coordinates{Lat: 40.7128, Lon: -74.0060}

// FromPoint converts a longitude/latitude point
func FromPoint(p orb.Point) Coordinates {
	return Coordinates{Lat: p.Lat(), Lon: p.Lon()}
}

// IsZero reports whether c is the null island placeholder
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lon == 0
}

// Validate rejects coordinates outside the valid ranges
func (c Coordinates) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return fmt.Errorf("latitude %v is not a finite number", c.Lat)
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return fmt.Errorf("longitude %v is not a finite number", c.Lon)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Lat)
	}
	if c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Lon)
	}
	return nil
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// Snapshot is the current weather at a location
type Snapshot struct {
	Temperature int    `json:"temperature"` // °C
	Condition   string `json:"condition"`
	Humidity    int    `json:"humidity"`  // %
	WindSpeed   int    `json:"windSpeed"` // km/h
	Location    string `json:"location,omitempty"`
	Country     string `json:"country,omitempty"`
	Source      string `json:"source"`
}

// DayForecast summarizes one forecast day
type DayForecast struct {
	Day       string `json:"day"`
	Date      string `json:"date,omitempty"`
	High      int    `json:"high"`
	Low       int    `json:"low"`
	Rain      int    `json:"rain"` // % of the day's intervals with rain
	Condition string `json:"condition,omitempty"`
}

// Report is the current snapshot together with the forecast
type Report struct {
	Snapshot
	Forecast []DayForecast `json:"forecast"`
}

// Provider fetches weather for coordinates
type Provider interface {
	FetchCurrentWeather(ctx context.Context, c Coordinates) (Snapshot, error)
	FetchForecast(ctx context.Context, c Coordinates) ([]DayForecast, error)
}

var conditionLabels = map[string]string{
	"Clear":        "Clear Sky",
	"Clouds":       "Cloudy",
	"Rain":         "Rainy",
	"Drizzle":      "Light Rain",
	"Thunderstorm": "Thunderstorm",
	"Snow":         "Snowy",
	"Mist":         "Misty",
	"Fog":          "Foggy",
	"Haze":         "Hazy",
}

// ConditionLabel maps a provider condition group to a display label,
// falling back to the free-text description
func ConditionLabel(main, description string) string {
	if label, ok := conditionLabels[main]; ok {
		return label
	}
	if description != "" {
		return description
	}
	return "Unknown"
}
