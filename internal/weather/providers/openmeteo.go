package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/i474232898/mood-tracker/internal/weather"
	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"
)

const openMeteoURL = "https://api.open-meteo.com/v1/forecast"

// GeocodeFunc resolves a place name to coordinates.
type GeocodeFunc func(ctx context.Context, city string) (lat, lon float64, err error)

// GoogleGeocoder returns a GeocodeFunc backed by the Google geocoding API.
// It reads the package-level geocoder.ApiKey, which main sets once at startup.
// The underlying request cannot be cancelled; a done ctx only stops the wait.
func GoogleGeocoder() GeocodeFunc {
	return func(ctx context.Context, city string) (float64, float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}

		type result struct {
			loc geocoder.Location
			err error
		}
		ch := make(chan result, 1)
		go func() {
			loc, err := geocoder.Geocoding(geocoder.Address{City: city})
			ch <- result{loc: loc, err: err}
		}()

		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case r := <-ch:
			if r.err != nil {
				return 0, 0, fmt.Errorf("geocoding %q: %w", city, r.err)
			}
			return r.loc.Latitude, r.loc.Longitude, nil
		}
	}
}

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
// Open-Meteo only accepts coordinates, so city names go through the geocoder first.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	geocode GeocodeFunc
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, geocode GeocodeFunc) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: openMeteoURL,
		geocode: geocode,
		httpCfg: HTTPClientConfig{
			Client:  client,
			Backoff: defaultBackoff,
		},
		circuit: newBreaker("openmeteo"),
	}
}

// WithBaseURL points the provider at another endpoint, e.g. a test server.
func (p *OpenMeteoProvider) WithBaseURL(u string) *OpenMeteoProvider {
	p.baseURL = u
	return p
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Snapshot, error) {
	lat, lon, err := p.coordinates(ctx, loc)
	if err != nil {
		return weather.Snapshot{}, err
	}

	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current_weather", "true")
	u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())

	var payload struct {
		CurrentWeather *struct {
			Temperature float64 `json:"temperature"`
			WeatherCode int     `json:"weathercode"`
			IsDay       int     `json:"is_day"`
		} `json:"current_weather"`
	}

	err = getJSON(ctx, p.httpCfg, p.circuit, u, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(&payload)
	})
	if err != nil {
		return weather.Snapshot{}, err
	}
	if payload.CurrentWeather == nil {
		return weather.Snapshot{}, fmt.Errorf("%w: missing current_weather", errMalformed)
	}

	cw := payload.CurrentWeather
	desc, icon := describeWMOCode(cw.WeatherCode)
	if cw.IsDay == 1 {
		icon += "d"
	} else {
		icon += "n"
	}

	return weather.Snapshot{
		Temp:        weather.RoundTemp(cw.Temperature),
		Description: desc,
		City:        loc.City,
		Icon:        icon,
	}, nil
}

func (p *OpenMeteoProvider) coordinates(ctx context.Context, loc weather.Location) (float64, float64, error) {
	if loc.HasCoordinates() {
		return *loc.Lat, *loc.Lon, nil
	}
	if p.geocode == nil {
		return 0, 0, fmt.Errorf("openmeteo requires coordinates and no geocoder is configured")
	}
	return p.geocode(ctx, loc.City)
}

// describeWMOCode maps WMO weather interpretation codes to a description
// and an OpenWeather icon prefix (without the d/n suffix).
func describeWMOCode(code int) (string, string) {
	switch {
	case code == 0:
		return "clear sky", "01"
	case code == 1:
		return "mainly clear", "02"
	case code == 2:
		return "partly cloudy", "03"
	case code == 3:
		return "overcast", "04"
	case code == 45 || code == 48:
		return "fog", "50"
	case code >= 51 && code <= 57:
		return "drizzle", "09"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "rain", "10"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow", "13"
	case code >= 95:
		return "thunderstorm", "11"
	default:
		return "unknown", "02"
	}
}
