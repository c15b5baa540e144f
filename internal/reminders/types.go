// In file: internal/reminders/types.go

// Package reminders keeps the user's to-do items in a Redis hash.
package reminders

import (
	"errors"
	"time"
)

var (
	// ErrNotAvailable means the reminder store cannot be reached.
	ErrNotAvailable = errors.New("reminder store is not available")
	// ErrNotFound means no reminder has the requested ID.
	ErrNotFound = errors.New("reminder not found")
)

// Priority is a reminder's urgency.
type Priority string

const (
	PriorityNone   Priority = "none"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// AllPriorities lists the accepted priorities, lowest first.
var AllPriorities = []Priority{PriorityNone, PriorityLow, PriorityMedium, PriorityHigh}

// Reminder is one to-do item. Due is nil for undated reminders.
type Reminder struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Due         *time.Time `json:"due,omitempty"`
	Priority    Priority   `json:"priority"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Created     time.Time  `json:"created"`
}
