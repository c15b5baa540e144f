// In file: internal/weather/openmeteo.go

// Package weather binds the weather and location tools to the Open-Meteo
// geocoding and forecast APIs. Neither API needs a key.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	DefaultForecastURL  = "https://api.open-meteo.com/v1/forecast"

	UnitCelsius    = "celsius"
	UnitFahrenheit = "fahrenheit"
)

var (
	// ErrLocationNotFound is returned when the geocoder has no match for a place.
	ErrLocationNotFound = errors.New("location not found")
	// ErrInvalidURL is returned when a configured endpoint cannot be parsed.
	ErrInvalidURL = errors.New("invalid service URL")
)

// StatusError is returned when an Open-Meteo endpoint answers with a non-200 status.
type StatusError struct {
	Service    string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned non-200 status: %d", e.Service, e.StatusCode)
}

// Location is a geocoded place.
type Location struct {
	Name      string
	Country   string
	Timezone  string
	Latitude  float64
	Longitude float64
}

// Conditions is the current weather at a coordinate, in the requested unit.
type Conditions struct {
	Temperature   float64
	FeelsLike     float64
	Humidity      float64
	WindSpeed     float64
	Pressure      float64
	Precipitation float64
	WeatherCode   int
	Unit          string
}

// Config holds the endpoints and timeout of a Client. Zero values fall back
// to the public Open-Meteo endpoints and a 15 second timeout.
type Config struct {
	GeocodingURL string        `yaml:"geocoding_url"`
	ForecastURL  string        `yaml:"forecast_url"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Client talks to Open-Meteo. It implements both the geocoder and the
// forecast provider used by the tools package.
type Client struct {
	geocodingURL string
	forecastURL  string
	httpClient   *http.Client
}

// NewClient creates a Client with a dedicated HTTP client, so a hung request
// is bounded by the transport timeout.
func NewClient(cfg Config) *Client {
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = DefaultGeocodingURL
	}
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = DefaultForecastURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
		httpClient:   &http.Client{Timeout: cfg.Timeout},
	}
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Timezone  string  `json:"timezone"`
	} `json:"results"`
}

// Geocode resolves a free-text place name to its best match.
func (c *Client) Geocode(ctx context.Context, place string) (*Location, error) {
	params := url.Values{}
	params.Set("name", place)
	params.Set("count", "1")
	params.Set("language", "en")
	params.Set("format", "json")

	var resp geocodingResponse
	if err := c.getJSON(ctx, "geocoding", c.geocodingURL, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, place)
	}
	r := resp.Results[0]
	return &Location{
		Name:      r.Name,
		Country:   r.Country,
		Timezone:  r.Timezone,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}, nil
}

type forecastResponse struct {
	Current struct {
		Temperature       float64 `json:"temperature_2m"`
		Humidity          float64 `json:"relative_humidity_2m"`
		ApparentTemp      float64 `json:"apparent_temperature"`
		Precipitation     float64 `json:"precipitation"`
		WeatherCode       *int    `json:"weather_code"`
		LegacyWeatherCode *int    `json:"weathercode"`
		SurfacePressure   float64 `json:"surface_pressure"`
		WindSpeed         float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current fetches the current conditions at a coordinate.
func (c *Client) Current(ctx context.Context, latitude, longitude float64, unit string) (*Conditions, error) {
	if unit != UnitFahrenheit {
		unit = UnitCelsius
	}
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	params.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,precipitation,weather_code,surface_pressure,wind_speed_10m")
	params.Set("temperature_unit", unit)
	params.Set("wind_speed_unit", "kmh")

	var resp forecastResponse
	if err := c.getJSON(ctx, "forecast", c.forecastURL, params, &resp); err != nil {
		return nil, err
	}

	code := -1
	switch {
	case resp.Current.WeatherCode != nil:
		code = *resp.Current.WeatherCode
	case resp.Current.LegacyWeatherCode != nil:
		code = *resp.Current.LegacyWeatherCode
	}
	return &Conditions{
		Temperature:   resp.Current.Temperature,
		FeelsLike:     resp.Current.ApparentTemp,
		Humidity:      resp.Current.Humidity,
		WindSpeed:     resp.Current.WindSpeed,
		Pressure:      resp.Current.SurfacePressure,
		Precipitation: resp.Current.Precipitation,
		WeatherCode:   code,
		Unit:          unit,
	}, nil
}

// getJSON performs one GET request and decodes the JSON body into dst.
func (c *Client) getJSON(ctx context.Context, service, endpoint string, params url.Values, dst any) error {
	base, err := url.Parse(endpoint)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return fmt.Errorf("%w: %s endpoint %q", ErrInvalidURL, service, endpoint)
	}
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s API request: %w", service, err)
	}
	req.Header.Set("User-Agent", "Device-Tools-Agent/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call %s API: %w", service, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Service: service, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s API response: %w", service, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("failed to parse %s API JSON response: %w", service, err)
	}
	return nil
}
