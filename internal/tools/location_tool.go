// In file: internal/tools/location_tool.go
package tools

import (
	"context"
	"fmt"
)

var locationErrorKinds = []ErrorKind{
	KindMissingRequiredField,
	KindInvalidFieldValue,
	KindLocationNotFound,
	KindInvalidURL,
	KindAPIError,
}

var locationEncoder = NewEncoder(
	StringField("place"),
	StringField("name"),
	StringField("country"),
	FloatField("latitude"),
	FloatField("longitude"),
	StringField("timezone"),
)

// PlaceMatch is the location tool's result.
type PlaceMatch struct {
	Place     string  `json:"place"`
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
}

func (p *PlaceMatch) Fields() map[string]any {
	return map[string]any{
		"place":     p.Place,
		"name":      p.Name,
		"country":   p.Country,
		"latitude":  p.Latitude,
		"longitude": p.Longitude,
		"timezone":  p.Timezone,
	}
}

func (p *PlaceMatch) Summary() string {
	label := p.Name
	if p.Country != "" {
		label += ", " + p.Country
	}
	return fmt.Sprintf("%s is at %.4f, %.4f", label, p.Latitude, p.Longitude)
}

// LocationTool resolves a place name to coordinates and time zone.
type LocationTool struct {
	geocoder Geocoder
}

var _ ToolExecutor = (*LocationTool)(nil)

func NewLocationTool(geocoder Geocoder) *LocationTool {
	return &LocationTool{geocoder: geocoder}
}

func (lt *LocationTool) Definition() Tool {
	return NewFunctionTool(
		"lookupLocation",
		"Find the coordinates, country and time zone of a place by name.",
		JSONSchema{
			Type: "object",
			Properties: map[string]*JSONSchema{
				"place": {
					Type:        "string",
					Description: "A city, town or landmark, e.g., Paris or Mount Fuji",
				},
			},
			Required: []string{"place"},
		},
	)
}

func (lt *LocationTool) Execute(ctx context.Context, arguments string) Output {
	args, err := ParseArguments(arguments, lt.Definition().Function.Parameters)
	if err != nil {
		echo := echoArguments(arguments, map[string]string{"place": "place"})
		return locationEncoder.EncodeError(asArgumentError(err).ToolError(), echo)
	}
	place := args.String("place")

	location, err := lt.geocoder.Geocode(ctx, place)
	if err != nil {
		return locationEncoder.EncodeError(
			Classify(mapWeatherError(err, KindLocationNotFound), locationErrorKinds, KindAPIError),
			map[string]any{"place": place},
		)
	}
	return locationEncoder.Encode(&PlaceMatch{
		Place:     place,
		Name:      location.Name,
		Country:   location.Country,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		Timezone:  location.Timezone,
	})
}
