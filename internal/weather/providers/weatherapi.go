package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/mood-tracker/internal/common"
	"github.com/i474232898/mood-tracker/internal/weather"
	"github.com/sony/gobreaker"
)

const weatherAPIURL = "https://api.weatherapi.com/v1/current.json"

// WeatherAPIProvider implements the weather.Provider interface for WeatherAPI.com.
type WeatherAPIProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIProvider(client *http.Client, apiKey string) *WeatherAPIProvider {
	return &WeatherAPIProvider{
		name:    "weatherapi",
		apiKey:  apiKey,
		baseURL: weatherAPIURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newBreaker("weatherapi"),
	}
}

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func (p *WeatherAPIProvider) WithBaseURL(u string) *WeatherAPIProvider {
	p.baseURL = u
	return p
}

func (p *WeatherAPIProvider) Name() string {
	return p.name
}

func (p *WeatherAPIProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("weatherapi %w", errNotConfigured)
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	// WeatherAPI uses "q" for location; it accepts a city name or "lat,lon".
	if loc.HasCoordinates() {
		values.Set("q", fmt.Sprintf("%f,%f", *loc.Lat, *loc.Lon))
	} else {
		values.Set("q", loc.City)
	}
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		Location struct {
			Name string `json:"name"`
		} `json:"location"`
		Current *struct {
			TempC     float64 `json:"temp_c"`
			IsDay     int     `json:"is_day"`
			Condition struct {
				Text string `json:"text"`
			} `json:"condition"`
		} `json:"current"`
	}

	err := getJSON(ctx, p.httpCfg, p.circuit, u, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&payload)
	})
	if err != nil {
		return weather.Snapshot{}, err
	}
	if payload.Current == nil || payload.Current.Condition.Text == "" {
		return weather.Snapshot{}, fmt.Errorf("%w: missing current conditions", errMalformed)
	}

	text := payload.Current.Condition.Text

	return weather.Snapshot{
		Temp:        weather.RoundTemp(payload.Current.TempC),
		Description: strings.ToLower(text),
		City:        common.FirstNonEmpty(payload.Location.Name, loc.City),
		Icon:        weatherAPIIcon(text, payload.Current.IsDay == 1),
	}, nil
}

// weatherAPIIcon maps WeatherAPI condition text onto OpenWeather icon codes
// so every provider returns the same icon vocabulary.
func weatherAPIIcon(text string, day bool) string {
	var code string
	switch {
	case common.HasAnyFold(text, "thunder", "storm"):
		code = "11"
	case common.HasAnyFold(text, "snow", "sleet", "blizzard", "ice pellets"):
		code = "13"
	case common.HasAnyFold(text, "shower"):
		code = "09"
	case common.HasAnyFold(text, "rain", "drizzle"):
		code = "10"
	case common.HasAnyFold(text, "mist", "fog", "haze"):
		code = "50"
	case common.HasAnyFold(text, "overcast"):
		code = "04"
	case common.HasAnyFold(text, "partly"):
		code = "02"
	case common.HasAnyFold(text, "cloud"):
		code = "03"
	case common.HasAnyFold(text, "sunny", "clear"):
		code = "01"
	default:
		code = "02"
	}

	if day {
		return code + "d"
	}
	return code + "n"
}
