package tools

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]*JSONSchema{
			"city": {Type: "string"},
			"unit": {Type: "string", Enum: []string{"celsius", "fahrenheit"}, Default: "celsius"},
			"count": {
				Type:    "integer",
				Default: 5.0,
				Minimum: Bound(1),
				Maximum: Bound(10),
			},
			"ratio":   {Type: "number"},
			"verbose": {Type: "boolean", Default: true},
		},
		Required: []string{"city"},
	}
}

func TestParseArgumentsAppliesDefaultsAndTrims(t *testing.T) {
	args, err := ParseArguments(`{"city": "  Paris  "}`, testSchema())
	require.NoError(t, err)

	assert.Equal(t, "Paris", args.String("city"))
	assert.Equal(t, "celsius", args.String("unit"))
	assert.Equal(t, 5, args.Int("count"))
	assert.True(t, args.Bool("verbose"))
	assert.False(t, args.Has("ratio"))
}

func TestParseArgumentsEnumIsCaseInsensitive(t *testing.T) {
	args, err := ParseArguments(`{"city": "Paris", "unit": "FAHRENHEIT"}`, testSchema())
	require.NoError(t, err)
	assert.Equal(t, "fahrenheit", args.String("unit"))
}

func TestParseArgumentsRejectsUnknownEnumValue(t *testing.T) {
	_, err := ParseArguments(`{"city": "Paris", "unit": "kelvin"}`, testSchema())
	require.Error(t, err)

	var argErr *ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, KindInvalidFieldValue, argErr.Kind)
	assert.Equal(t, "unit", argErr.Field)
}

func TestParseArgumentsMissingRequired(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty input", ""},
		{"empty object", "{}"},
		{"blank string", `{"city": "   "}`},
		{"null", `{"city": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArguments(tt.raw, testSchema())
			argErr := asArgumentError(err)
			assert.Equal(t, KindMissingRequiredField, argErr.Kind)
			assert.Equal(t, "city", argErr.Field)
		})
	}
}

func TestParseArgumentsClampsAndTruncatesNumbers(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{`{"city": "x", "count": 50}`, 10},
		{`{"city": "x", "count": 0}`, 1},
		{`{"city": "x", "count": -3}`, 1},
		{`{"city": "x", "count": 3.9}`, 3},
		{`{"city": "x", "count": "7"}`, 7},
	}
	for _, tt := range tests {
		args, err := ParseArguments(tt.raw, testSchema())
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, args.Int("count"), tt.raw)
	}
}

func TestParseArgumentsTypeErrors(t *testing.T) {
	tests := []struct {
		raw   string
		field string
	}{
		{`{"city": "x", "count": "many"}`, "count"},
		{`{"city": "x", "verbose": "maybe"}`, "verbose"},
		{`{"city": "x", "ratio": true}`, "ratio"},
		{`{"city": ["x"]}`, "city"},
		{`[1, 2]`, "arguments"},
		{`{not json`, "arguments"},
	}
	for _, tt := range tests {
		_, err := ParseArguments(tt.raw, testSchema())
		argErr := asArgumentError(err)
		assert.Equal(t, KindInvalidFieldValue, argErr.Kind, tt.raw)
		assert.Equal(t, tt.field, argErr.Field, tt.raw)
	}
}

func TestParseArgumentsBooleanStrings(t *testing.T) {
	args, err := ParseArguments(`{"city": "x", "verbose": "false"}`, testSchema())
	require.NoError(t, err)
	assert.False(t, args.Bool("verbose"))
}

func TestParseArgumentsIgnoresUnknownFields(t *testing.T) {
	args, err := ParseArguments(`{"city": "x", "extra": {"deep": 1}}`, testSchema())
	require.NoError(t, err)
	assert.False(t, args.Has("extra"))
}

func TestArgumentErrorToToolError(t *testing.T) {
	te := (&ArgumentError{Kind: KindInvalidFieldValue, Field: "unit", Reason: "must be one of celsius, fahrenheit"}).ToolError()
	assert.Equal(t, KindInvalidFieldValue, te.Kind)
	assert.Equal(t, "invalidFieldValue: unit must be one of celsius, fahrenheit", te.Error())
}

func TestParseArgumentsReportsFieldsInFixedOrder(t *testing.T) {
	tests := []struct {
		raw   string
		kind  ErrorKind
		field string
	}{
		// Optional fields are checked by name.
		{`{"city": "x", "verbose": "maybe", "unit": "kelvin", "count": "many"}`, KindInvalidFieldValue, "count"},
		{`{"city": "x", "verbose": "maybe", "unit": "kelvin"}`, KindInvalidFieldValue, "unit"},
		// Required fields come first.
		{`{"unit": "kelvin", "count": "many"}`, KindMissingRequiredField, "city"},
	}
	for _, tt := range tests {
		for i := 0; i < 50; i++ {
			_, err := ParseArguments(tt.raw, testSchema())
			argErr := asArgumentError(err)
			require.Equal(t, tt.kind, argErr.Kind, tt.raw)
			require.Equal(t, tt.field, argErr.Field, tt.raw)
		}
	}
}

func TestEchoArguments(t *testing.T) {
	keys := map[string]string{"city": "city", "type": "searchType", "count": "count"}

	echo := echoArguments(`{"city": " Paris ", "type": "semantic", "count": 3, "unit": "kelvin"}`, keys)
	assert.Equal(t, map[string]any{"city": "Paris", "searchType": "semantic", "count": "3"}, echo)

	assert.Empty(t, echoArguments(`{not json`, keys))
	assert.Empty(t, echoArguments(`{"city": ["x"]}`, keys))
}
