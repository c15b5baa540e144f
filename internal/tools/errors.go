// In file: internal/tools/errors.go
package tools

import "errors"

// ErrorKind names one failure in a tool's closed error enumeration. The
// string value is what the caller sees in the "errorKind" output field.
type ErrorKind string

const (
	// Argument validation, shared by every tool.
	KindMissingRequiredField ErrorKind = "missingRequiredField"
	KindInvalidFieldValue    ErrorKind = "invalidFieldValue"

	// Missing or invalid input.
	KindEmptyQuery      ErrorKind = "emptyQuery"
	KindMissingDataType ErrorKind = "missingDataType"
	KindInvalidDataType ErrorKind = "invalidDataType"
	KindInvalidAction   ErrorKind = "invalidAction"
	KindEmptyURL        ErrorKind = "emptyURL"
	KindInvalidURL      ErrorKind = "invalidURL"

	// Resource unavailable.
	KindHealthKitNotAvailable ErrorKind = "healthKitNotAvailable"
	KindDataTypeNotAvailable  ErrorKind = "dataTypeNotAvailable"
	KindLocationNotFound      ErrorKind = "locationNotFound"
	KindStoreNotAvailable     ErrorKind = "storeNotAvailable"
	KindNotFound              ErrorKind = "notFound"

	// Permission.
	KindAuthorizationDenied ErrorKind = "authorizationDenied"

	// Transport and backend.
	KindAPIError     ErrorKind = "apiError"
	KindFetchFailed  ErrorKind = "fetchFailed"
	KindNetworkError ErrorKind = "networkError"
	KindQueryFailed  ErrorKind = "queryFailed"

	// Empty result.
	KindNoData    ErrorKind = "noData"
	KindNoResults ErrorKind = "noResults"

	// Configuration and unimplemented paths.
	KindMissingAPIKey  ErrorKind = "missingAPIKey"
	KindNotImplemented ErrorKind = "notImplemented"
)

var kindMessages = map[ErrorKind]string{
	KindMissingRequiredField:  "A required argument is missing.",
	KindInvalidFieldValue:     "One of the arguments has an invalid value.",
	KindEmptyQuery:            "Please provide a search query.",
	KindMissingDataType:       "Please specify which health data type to query.",
	KindInvalidDataType:       "That health data type is not supported. Use steps, heartRate, workouts, sleep, activeEnergy or distance.",
	KindInvalidAction:         "That action is not supported.",
	KindEmptyURL:              "Please provide a URL.",
	KindInvalidURL:            "The URL is not valid.",
	KindHealthKitNotAvailable: "Health data is not available on this device.",
	KindDataTypeNotAvailable:  "That health data type is not available for this request.",
	KindLocationNotFound:      "I couldn't find that location. Please try another city.",
	KindStoreNotAvailable:     "That data is not available on this device right now.",
	KindNotFound:              "No item matches that ID.",
	KindAuthorizationDenied:   "Access was denied. Allow it in Settings and try again.",
	KindAPIError:              "The service returned an error. Please try again later.",
	KindFetchFailed:           "I couldn't fetch that page.",
	KindNetworkError:          "A network error occurred. Please check the connection and try again.",
	KindQueryFailed:           "The data query failed.",
	KindNoData:                "No data was found for the requested period.",
	KindNoResults:             "No results were found for that search.",
	KindMissingAPIKey:         "Web search is not configured. An API key is required.",
	KindNotImplemented:        "That action is not implemented yet.",
}

// Message returns the fixed human-readable sentence for the kind.
func (k ErrorKind) Message() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "An unexpected error occurred."
}

// ToolError is a failure already classified into an ErrorKind. Detail is
// optional extra text; Cause is the underlying error, if any.
type ToolError struct {
	Kind   ErrorKind
	Detail string
	Cause  error
}

// NewError returns a ToolError of the given kind.
func NewError(kind ErrorKind, detail string) *ToolError {
	return &ToolError{Kind: kind, Detail: detail}
}

// WrapError returns a ToolError of the given kind that keeps cause.
func WrapError(kind ErrorKind, detail string, cause error) *ToolError {
	return &ToolError{Kind: kind, Detail: detail, Cause: cause}
}

func (e *ToolError) Error() string {
	text := string(e.Kind)
	if e.Detail != "" {
		text += ": " + e.Detail
	}
	if e.Cause != nil {
		text += ": " + e.Cause.Error()
	}
	return text
}

func (e *ToolError) Unwrap() error {
	return e.Cause
}

// Classify maps err into the closed set allowed. A ToolError whose kind is in
// the set is returned as is; anything else becomes fallback with the original
// error kept as the cause.
func Classify(err error, allowed []ErrorKind, fallback ErrorKind) *ToolError {
	if err == nil {
		return nil
	}
	var te *ToolError
	if errors.As(err, &te) {
		for _, k := range allowed {
			if te.Kind == k {
				return te
			}
		}
		return WrapError(fallback, "", te)
	}
	return WrapError(fallback, "", err)
}
