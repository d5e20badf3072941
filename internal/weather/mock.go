package weather

import "context"

const (
	SourceMock        = "mock"
	SourceOpenWeather = "openweather"
)

// Mock returns a fixed payload for any location
type Mock struct{}

func (Mock) FetchCurrentWeather(ctx context.Context, _ Coordinates) (Snapshot, error) {
	return MockSnapshot(), ctx.Err()
}

func (Mock) FetchForecast(ctx context.Context, _ Coordinates) ([]DayForecast, error) {
	return MockForecast(), ctx.Err()
}

// MockSnapshot is the offline current weather
func MockSnapshot() Snapshot {
	return Snapshot{
		Temperature: 24,
		Condition:   "Partly Cloudy",
		Humidity:    65,
		WindSpeed:   12,
		Location:    "Unknown",
		Country:     "Unknown",
		Source:      SourceMock,
	}
}

// MockForecast is the offline five day forecast
func MockForecast() []DayForecast {
	return []DayForecast{
		{Day: "Today", High: 24, Low: 18, Rain: 20},
		{Day: "Tomorrow", High: 26, Low: 19, Rain: 10},
		{Day: "Wed", High: 28, Low: 21, Rain: 5},
		{Day: "Thu", High: 25, Low: 20, Rain: 30},
		{Day: "Fri", High: 23, Low: 17, Rain: 60},
	}
}
