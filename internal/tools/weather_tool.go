// In file: internal/tools/weather_tool.go
package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/dileep-u-k/device-tools/internal/weather"
)

// --- Weather Tool Implementation ---

// Geocoder resolves a free-text place name to a coordinate.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (*weather.Location, error)
}

// ForecastProvider returns the current conditions at a coordinate.
type ForecastProvider interface {
	Current(ctx context.Context, latitude, longitude float64, unit string) (*weather.Conditions, error)
}

var weatherErrorKinds = []ErrorKind{
	KindMissingRequiredField,
	KindInvalidFieldValue,
	KindLocationNotFound,
	KindInvalidURL,
	KindAPIError,
}

var weatherEncoder = NewEncoder(
	StringField("city"),
	FloatField("temperature"),
	StringField("condition"),
	FloatField("humidity"),
	FloatField("windSpeed"),
	FloatField("feelsLike"),
	FloatField("pressure"),
	FloatField("precipitation"),
	StringField("unit"),
	FloatField("latitude"),
	FloatField("longitude"),
)

// WeatherReading is the weather tool's result.
type WeatherReading struct {
	City          string  `json:"city"`
	Temperature   float64 `json:"temperature"`
	Condition     string  `json:"condition"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	FeelsLike     float64 `json:"feelsLike"`
	Pressure      float64 `json:"pressure"`
	Precipitation float64 `json:"precipitation"`
	Unit          string  `json:"unit"`
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
}

func (r *WeatherReading) Fields() map[string]any {
	return map[string]any{
		"city":          r.City,
		"temperature":   r.Temperature,
		"condition":     r.Condition,
		"humidity":      r.Humidity,
		"windSpeed":     r.WindSpeed,
		"feelsLike":     r.FeelsLike,
		"pressure":      r.Pressure,
		"precipitation": r.Precipitation,
		"unit":          r.Unit,
		"latitude":      r.Latitude,
		"longitude":     r.Longitude,
	}
}

func (r *WeatherReading) Summary() string {
	symbol := "°C"
	if r.Unit == weather.UnitFahrenheit {
		symbol = "°F"
	}
	return fmt.Sprintf("Current weather in %s: %g%s, %s", r.City, r.Temperature, symbol, r.Condition)
}

// WeatherTool looks up the current weather for a city. It resolves the city
// with a Geocoder first and only then asks the ForecastProvider.
type WeatherTool struct {
	geocoder Geocoder
	forecast ForecastProvider
}

// Statically verify that WeatherTool implements the ToolExecutor interface.
var _ ToolExecutor = (*WeatherTool)(nil)

// NewWeatherTool creates a new instance of the WeatherTool.
func NewWeatherTool(geocoder Geocoder, forecast ForecastProvider) *WeatherTool {
	return &WeatherTool{geocoder: geocoder, forecast: forecast}
}

// Definition describes the tool to the planner.
func (wt *WeatherTool) Definition() Tool {
	return NewFunctionTool(
		"getCurrentWeather",
		"Get the current weather (temperature, condition, humidity, wind, pressure, precipitation) for a city.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"city": {
					Type:        "string",
					Description: "The city to look up, e.g., San Francisco or Kharagpur, India",
				},
				"unit": {
					Type:        "string",
					Description: "Temperature unit.",
					Enum:        []string{weather.UnitCelsius, weather.UnitFahrenheit},
					Default:     weather.UnitCelsius,
				},
			},
			Required: []string{"city"},
		},
	)
}

// Execute validates the city, geocodes it, fetches the current conditions
// and encodes them.
func (wt *WeatherTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, wt.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{"city": "city", "unit": "unit"})
		return weatherEncoder.EncodeError(asArgumentError(err).ToolError(), echo)
	}
	city := args.String("city")
	echo := map[string]any{"city": city, "unit": args.String("unit")}

	reading, err := wt.lookup(ctx, city, args.String("unit"))
	if err != nil {
		return weatherEncoder.EncodeError(Classify(err, weatherErrorKinds, KindAPIError), echo)
	}
	return weatherEncoder.Encode(reading)
}

func (wt *WeatherTool) lookup(ctx context.Context, city, unit string) (*WeatherReading, error) {
	location, err := wt.geocoder.Geocode(ctx, city)
	if err != nil {
		return nil, mapWeatherError(err, KindLocationNotFound)
	}

	conditions, err := wt.forecast.Current(ctx, location.Latitude, location.Longitude, unit)
	if err != nil {
		return nil, mapWeatherError(err, KindAPIError)
	}

	return &WeatherReading{
		City:          city,
		Temperature:   conditions.Temperature,
		Condition:     WeatherCondition(conditions.WeatherCode),
		Humidity:      conditions.Humidity,
		WindSpeed:     conditions.WindSpeed,
		FeelsLike:     conditions.FeelsLike,
		Pressure:      conditions.Pressure,
		Precipitation: conditions.Precipitation,
		Unit:          conditions.Unit,
		Latitude:      location.Latitude,
		Longitude:     location.Longitude,
	}, nil
}

// mapWeatherError classifies an Open-Meteo failure. Any geocoding failure
// other than a bad endpoint is reported as the location not being found.
func mapWeatherError(err error, fallback ErrorKind) error {
	if errors.Is(err, weather.ErrInvalidURL) {
		return WrapError(KindInvalidURL, "", err)
	}
	if errors.Is(err, weather.ErrLocationNotFound) {
		return WrapError(KindLocationNotFound, "", err)
	}
	return WrapError(fallback, "", err)
}

// WeatherCondition maps a WMO weather interpretation code to a label.
func WeatherCondition(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1:
		return "Mainly clear"
	case 2:
		return "Partly cloudy"
	case 3:
		return "Overcast"
	case 45:
		return "Fog"
	case 48:
		return "Depositing rime fog"
	case 51:
		return "Light drizzle"
	case 53:
		return "Moderate drizzle"
	case 55:
		return "Dense drizzle"
	case 56:
		return "Light freezing drizzle"
	case 57:
		return "Dense freezing drizzle"
	case 61:
		return "Slight rain"
	case 63:
		return "Moderate rain"
	case 65:
		return "Heavy rain"
	case 66:
		return "Light freezing rain"
	case 67:
		return "Heavy freezing rain"
	case 71:
		return "Slight snow fall"
	case 73:
		return "Moderate snow fall"
	case 75:
		return "Heavy snow fall"
	case 77:
		return "Snow grains"
	case 80:
		return "Slight rain showers"
	case 81:
		return "Moderate rain showers"
	case 82:
		return "Violent rain showers"
	case 85:
		return "Slight snow showers"
	case 86:
		return "Heavy snow showers"
	case 95:
		return "Thunderstorm"
	case 96:
		return "Thunderstorm with slight hail"
	case 99:
		return "Thunderstorm with heavy hail"
	default:
		return "Unknown"
	}
}
