// In file: internal/tools/output.go
package tools

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Output is the only shape a caller ever sees: a flat map of string keys to
// primitive values. It erases the per-tool result type.
type Output map[string]any

// Status returns the "status" field.
func (o Output) Status() string {
	s, _ := o["status"].(string)
	return s
}

// Message returns the human-readable "message" field.
func (o Output) Message() string {
	s, _ := o["message"].(string)
	return s
}

// ErrorKind returns the "errorKind" field of an error output.
func (o Output) ErrorKind() ErrorKind {
	s, _ := o["errorKind"].(string)
	return ErrorKind(s)
}

// JSON renders the payload. Keys are emitted in sorted order, so identical
// outputs produce identical bytes.
func (o Output) JSON() string {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Sprintf(`{"status":%q,"message":%q}`, StatusError, err.Error())
	}
	return string(b)
}

// Decode maps the payload back into dst, a pointer to a struct whose json
// tags use the payload's key names.
func (o Output) Decode(dst any) error {
	b, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("failed to decode output: %w", err)
	}
	return nil
}

// Result is a tool's typed success value before flattening.
type Result interface {
	// Fields returns the result's values keyed by output field name.
	Fields() map[string]any
	// Summary is the human-readable message for the primary metric.
	Summary() string
}

// Field declares one key of a tool's stable output key set.
type Field struct {
	Key string
	// Default is written when the result has no usable value and is the
	// neutral value written on error outputs.
	Default any
	// Separator joins []string values; ", " when empty.
	Separator string
}

// StringField, IntField, FloatField and BoolField declare fields with the
// type's neutral default.
func StringField(key string) Field { return Field{Key: key, Default: ""} }
func IntField(key string) Field    { return Field{Key: key, Default: 0} }
func FloatField(key string) Field  { return Field{Key: key, Default: 0.0} }
func BoolField(key string) Field   { return Field{Key: key, Default: false} }

// ListField declares a []string field flattened with sep.
func ListField(key, sep string) Field {
	return Field{Key: key, Default: "", Separator: sep}
}

// Encoder turns results and failures into Output payloads with a fixed key set.
type Encoder struct {
	fields []Field
}

// NewEncoder returns an Encoder for the given key set.
func NewEncoder(fields ...Field) *Encoder {
	return &Encoder{fields: fields}
}

// Encode builds a success payload. Every declared key is present; values the
// result omits, or leaves nil, fall back to the field default.
func (e *Encoder) Encode(result Result) Output {
	out := Output{"status": StatusSuccess}
	var values map[string]any
	if result != nil {
		values = result.Fields()
	}
	for _, f := range e.fields {
		out[f.Key] = flatten(values[f.Key], f)
	}
	message := ""
	if result != nil {
		message = result.Summary()
	}
	out["message"] = message
	return out
}

// EncodeError builds an error payload. Declared keys carry their neutral
// value, echo restores caller context such as the query or city, and the
// error is rendered into "error", "errorKind" and "message".
func (e *Encoder) EncodeError(err *ToolError, echo map[string]any) Output {
	out := Output{"status": StatusError}
	for _, f := range e.fields {
		out[f.Key] = f.Default
	}
	for k, v := range echo {
		out[k] = flatten(v, Field{Key: k, Default: ""})
	}
	if err == nil {
		err = NewError(KindAPIError, "unknown failure")
	}
	out["error"] = err.Error()
	out["errorKind"] = string(err.Kind)
	out["message"] = err.Kind.Message()
	return out
}

// flatten reduces v to a primitive. Nested values never reach the caller.
func flatten(v any, f Field) any {
	if v == nil {
		return f.Default
	}
	switch val := v.(type) {
	case string, bool, int, int64, float64:
		return val
	case int32:
		return int(val)
	case float32:
		return float64(val)
	case []string:
		sep := f.Separator
		if sep == "" {
			sep = ", "
		}
		return strings.Join(val, sep)
	case time.Time:
		if val.IsZero() {
			return f.Default
		}
		return val.Format(time.RFC3339)
	case *string:
		if val == nil {
			return f.Default
		}
		return *val
	case *float64:
		if val == nil {
			return f.Default
		}
		return *val
	case *int:
		if val == nil {
			return f.Default
		}
		return *val
	case fmt.Stringer:
		return val.String()
	}
	return fmt.Sprint(v)
}
