// In file: internal/calendar/types.go

// Package calendar stores the user's events in Redis and serves the
// date-ranged reads and creates the calendar tool needs.
package calendar

import (
	"errors"
	"time"
)

// ErrNotAvailable means the event store cannot be reached.
var ErrNotAvailable = errors.New("calendar store is not available")

// Event is one calendar entry. All-day events start at local midnight and
// end at the following midnight.
type Event struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title" yaml:"title"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	AllDay   bool      `json:"allDay,omitempty" yaml:"all_day,omitempty"`
	Location string    `json:"location,omitempty" yaml:"location,omitempty"`
	Notes    string    `json:"notes,omitempty" yaml:"notes,omitempty"`
}
