// In file: internal/tools/args.go
package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ArgumentError reports why raw arguments failed validation. Kind is either
// KindMissingRequiredField or KindInvalidFieldValue; adapters remap it to
// their own kinds by looking at Field.
type ArgumentError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

func (e *ArgumentError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Field)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Reason)
}

// ToolError converts the argument failure into the shared taxonomy.
func (e *ArgumentError) ToolError() *ToolError {
	detail := e.Field
	if e.Reason != "" {
		detail += " " + e.Reason
	}
	return NewError(e.Kind, detail)
}

// asArgumentError unwraps a ParseArguments failure.
func asArgumentError(err error) *ArgumentError {
	var argErr *ArgumentError
	if errors.As(err, &argErr) {
		return argErr
	}
	return &ArgumentError{Kind: KindInvalidFieldValue, Field: "arguments", Reason: err.Error()}
}

// Arguments holds validated, normalized arguments for one invocation.
// Strings are trimmed, defaults applied, enums in canonical spelling and
// numbers stored as float64.
type Arguments map[string]any

// ParseArguments decodes the planner's raw JSON arguments and validates them
// against schema. No external call should be attempted when it fails.
func ParseArguments(raw string, schema JSONSchema) (Arguments, error) {
	input := map[string]any{}
	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
		dec.UseNumber()
		if err := dec.Decode(&input); err != nil {
			return nil, &ArgumentError{Kind: KindInvalidFieldValue, Field: "arguments", Reason: "must be a JSON object"}
		}
		if input == nil {
			input = map[string]any{}
		}
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}
	args := make(Arguments, len(schema.Properties))
	for _, name := range propertyOrder(schema) {
		prop := schema.Properties[name]
		if prop == nil {
			continue
		}
		value, present := input[name]
		if present {
			normalized, ok, err := normalizeValue(name, prop, value)
			if err != nil {
				return nil, err
			}
			if ok {
				args[name] = normalized
				continue
			}
		}
		if prop.Default != nil {
			args[name] = prop.Default
		}
		if _, ok := args[name]; !ok && required[name] {
			return nil, &ArgumentError{Kind: KindMissingRequiredField, Field: name}
		}
	}

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			return nil, &ArgumentError{Kind: KindMissingRequiredField, Field: name}
		}
	}
	return args, nil
}

// propertyOrder is the order fields are validated in: required fields as
// declared, then the optional ones sorted by name. With several bad fields
// the same one is always reported.
func propertyOrder(schema JSONSchema) []string {
	order := make([]string, 0, len(schema.Properties))
	seen := make(map[string]bool, len(schema.Properties))
	for _, name := range schema.Required {
		if _, ok := schema.Properties[name]; ok && !seen[name] {
			order = append(order, name)
			seen[name] = true
		}
	}
	optional := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		if !seen[name] {
			optional = append(optional, name)
		}
	}
	sort.Strings(optional)
	return append(order, optional...)
}

// echoArguments pulls the raw string values of the named arguments out of
// the caller's JSON without validating them, keyed by output field. Error
// outputs use it to keep the caller's query, city or url even when
// validation fails. Malformed input yields an empty map.
func echoArguments(raw string, keys map[string]string) map[string]any {
	echo := map[string]any{}
	input := map[string]any{}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		return echo
	}
	for arg, field := range keys {
		switch v := input[arg].(type) {
		case string:
			echo[field] = strings.TrimSpace(v)
		case json.Number:
			echo[field] = v.String()
		}
	}
	return echo
}

// normalizeValue converts one input value to the property's type. ok is
// false when the value counts as absent (null or blank string).
func normalizeValue(name string, prop *JSONSchema, value any) (any, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	invalid := func(reason string) error {
		return &ArgumentError{Kind: KindInvalidFieldValue, Field: name, Reason: reason}
	}

	switch prop.Type {
	case "string":
		s, ok := value.(string)
		if !ok {
			if n, isNum := value.(json.Number); isNum {
				s = n.String()
			} else {
				return nil, false, invalid("must be a string")
			}
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return nil, false, nil
		}
		if len(prop.Enum) > 0 {
			for _, option := range prop.Enum {
				if strings.EqualFold(option, s) {
					return option, true, nil
				}
			}
			return nil, false, invalid(fmt.Sprintf("must be one of %s", strings.Join(prop.Enum, ", ")))
		}
		return s, true, nil

	case "number", "integer":
		var f float64
		switch v := value.(type) {
		case json.Number:
			parsed, err := v.Float64()
			if err != nil {
				return nil, false, invalid("must be a number")
			}
			f = parsed
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				return nil, false, nil
			}
			parsed, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, false, invalid("must be a number")
			}
			f = parsed
		default:
			return nil, false, invalid("must be a number")
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, false, invalid("must be a finite number")
		}
		if prop.Type == "integer" {
			f = math.Trunc(f)
		}
		if prop.Minimum != nil && f < *prop.Minimum {
			f = *prop.Minimum
		}
		if prop.Maximum != nil && f > *prop.Maximum {
			f = *prop.Maximum
		}
		return f, true, nil

	case "boolean":
		switch v := value.(type) {
		case bool:
			return v, true, nil
		case string:
			trimmed := strings.TrimSpace(v)
			if trimmed == "" {
				return nil, false, nil
			}
			b, err := strconv.ParseBool(trimmed)
			if err != nil {
				return nil, false, invalid("must be true or false")
			}
			return b, true, nil
		default:
			return nil, false, invalid("must be true or false")
		}
	}
	return value, true, nil
}

// Has reports whether name was supplied or defaulted.
func (a Arguments) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string value of name, or "".
func (a Arguments) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Float returns the numeric value of name, or 0.
func (a Arguments) Float(name string) float64 {
	switch v := a[name].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Int returns the numeric value of name truncated to an int, or 0.
func (a Arguments) Int(name string) int {
	return int(a.Float(name))
}

// Bool returns the boolean value of name, or false.
func (a Arguments) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}
