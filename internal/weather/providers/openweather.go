package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/i474232898/mood-tracker/internal/weather"
	"github.com/sony/gobreaker"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: openWeatherURL,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newBreaker("openweather"),
	}
}

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func (p *OpenWeatherProvider) WithBaseURL(u string) *OpenWeatherProvider {
	p.baseURL = u
	return p
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

type openWeatherPayload struct {
	Name string `json:"name"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("openweather %w", errNotConfigured)
	}

	values := url.Values{}
	values.Set("q", loc.City)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload openWeatherPayload
	err := getJSON(ctx, p.httpCfg, p.circuit, u, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&payload)
	})
	if err != nil {
		return weather.Snapshot{}, err
	}

	if payload.Main.Temp == nil || len(payload.Weather) == 0 || payload.Name == "" {
		return weather.Snapshot{}, fmt.Errorf("%w: missing temp, weather or name", errMalformed)
	}

	return weather.Snapshot{
		Temp:        weather.RoundTemp(*payload.Main.Temp),
		Description: payload.Weather[0].Description,
		City:        payload.Name,
		Icon:        payload.Weather[0].Icon,
	}, nil
}
