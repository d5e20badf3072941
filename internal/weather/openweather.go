package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.openweathermap.org/data/2.5"
	forecastDays   = 5
	msToKmh        = 3.6
)

// ErrNoAPIKey is returned by an OpenWeather client built without a key
var ErrNoAPIKey = errors.New("weather api key not configured")

// OpenWeather calls the OpenWeatherMap 2.5 REST API
type OpenWeather struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// OpenWeatherOption configures the client
type OpenWeatherOption func(*OpenWeather)

// WithBaseURL points the client at another API root
func WithBaseURL(u string) OpenWeatherOption {
	return func(o *OpenWeather) {
		o.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(c *http.Client) OpenWeatherOption {
	return func(o *OpenWeather) {
		o.client = c
	}
}

// NewOpenWeather creates a client. Requests time out after 10 seconds
// unless a custom HTTP client is supplied.
func NewOpenWeather(apiKey string, opts ...OpenWeatherOption) *OpenWeather {
	o := &OpenWeather{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type owCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

type owCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []owCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

type owForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
		Weather []owCondition `json:"weather"`
	} `json:"list"`
	City struct {
		Timezone int `json:"timezone"` // seconds east of UTC
	} `json:"city"`
}

func (o *OpenWeather) FetchCurrentWeather(ctx context.Context, c Coordinates) (Snapshot, error) {
	var body owCurrent
	if err := o.get(ctx, "/weather", c, &body); err != nil {
		return Snapshot{}, err
	}
	if len(body.Weather) == 0 {
		return Snapshot{}, errors.New("weather response has no conditions")
	}
	return Snapshot{
		Temperature: int(math.Round(body.Main.Temp)),
		Condition:   ConditionLabel(body.Weather[0].Main, body.Weather[0].Description),
		Humidity:    body.Main.Humidity,
		WindSpeed:   int(math.Round(body.Wind.Speed * msToKmh)),
		Location:    body.Name,
		Country:     body.Sys.Country,
		Source:      SourceOpenWeather,
	}, nil
}

func (o *OpenWeather) FetchForecast(ctx context.Context, c Coordinates) ([]DayForecast, error) {
	var body owForecast
	if err := o.get(ctx, "/forecast", c, &body); err != nil {
		return nil, err
	}
	return foldForecast(body), nil
}

// foldForecast groups 3-hour intervals by local calendar day, keeping the
// first five days in order of appearance
func foldForecast(body owForecast) []DayForecast {
	zone := time.FixedZone("city", body.City.Timezone)

	type bucket struct {
		date      time.Time
		high, low float64
		rainy, n  int
		condition string
	}
	var (
		order []string
		days  = make(map[string]*bucket)
	)
	for _, item := range body.List {
		local := time.Unix(item.Dt, 0).In(zone)
		key := local.Format(time.DateOnly)
		b, ok := days[key]
		if !ok {
			if len(order) == forecastDays {
				continue
			}
			b = &bucket{date: local, high: item.Main.Temp, low: item.Main.Temp}
			if len(item.Weather) > 0 {
				b.condition = ConditionLabel(item.Weather[0].Main, item.Weather[0].Description)
			}
			days[key] = b
			order = append(order, key)
		}
		b.high = math.Max(b.high, item.Main.Temp)
		b.low = math.Min(b.low, item.Main.Temp)
		b.n++
		if len(item.Weather) > 0 && item.Weather[0].Main == "Rain" {
			b.rainy++
		}
	}

	out := make([]DayForecast, 0, len(order))
	for i, key := range order {
		b := days[key]
		out = append(out, DayForecast{
			Day:       dayName(b.date, i),
			Date:      key,
			High:      int(math.Round(b.high)),
			Low:       int(math.Round(b.low)),
			Rain:      int(math.Round(float64(b.rainy) / float64(b.n) * 100)),
			Condition: b.condition,
		})
	}
	return out
}

func dayName(t time.Time, index int) string {
	switch index {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return t.Weekday().String()[:3]
	}
}

func (o *OpenWeather) get(ctx context.Context, path string, c Coordinates, out any) error {
	if o.apiKey == "" {
		return ErrNoAPIKey
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	q.Set("appid", o.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("request %s: status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
