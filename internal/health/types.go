// In file: internal/health/types.go

// Package health holds the health datastore vocabulary (data types, samples,
// workouts) and a Redis-backed store that serves date-ranged, typed,
// authorization-gated queries to the health tool.
package health

import (
	"errors"
	"time"
)

// DataType identifies one kind of health sample.
type DataType string

const (
	Steps        DataType = "steps"
	HeartRate    DataType = "heartRate"
	Workouts     DataType = "workouts"
	Sleep        DataType = "sleep"
	ActiveEnergy DataType = "activeEnergy"
	Distance     DataType = "distance"
)

// AllDataTypes lists every supported data type.
var AllDataTypes = []DataType{Steps, HeartRate, Workouts, Sleep, ActiveEnergy, Distance}

// Cumulative reports whether samples of the type are summed (as opposed to
// averaged or listed).
func (d DataType) Cumulative() bool {
	return d == Steps || d == ActiveEnergy || d == Distance
}

// Valid reports whether d is a supported data type.
func (d DataType) Valid() bool {
	for _, t := range AllDataTypes {
		if t == d {
			return true
		}
	}
	return false
}

var (
	// ErrNotAvailable means the datastore cannot be reached at all.
	ErrNotAvailable = errors.New("health data store is not available")
	// ErrAuthorizationDenied means the user has not granted access to a type.
	ErrAuthorizationDenied = errors.New("health data authorization denied")
	// ErrNoData means a cumulative query matched no samples.
	ErrNoData = errors.New("no health samples in range")
)

// Sleep sample categories. Only the asleep ones count toward sleep time.
const (
	SleepInBed      = "inBed"
	SleepAwake      = "awake"
	SleepAsleep     = "asleep"
	SleepAsleepCore = "asleepCore"
	SleepAsleepDeep = "asleepDeep"
	SleepAsleepREM  = "asleepREM"
)

// Sample is one measurement. Units: steps count, heart rate in BPM, active
// energy in kcal, distance in meters. Sleep samples carry a Category and
// their duration is End minus Start.
type Sample struct {
	Type     DataType  `json:"type" yaml:"type"`
	Start    time.Time `json:"start" yaml:"start"`
	End      time.Time `json:"end" yaml:"end"`
	Value    float64   `json:"value" yaml:"value"`
	Category string    `json:"category,omitempty" yaml:"category,omitempty"`
}

// Asleep reports whether a sleep sample counts as time asleep.
func (s Sample) Asleep() bool {
	switch s.Category {
	case SleepInBed, SleepAwake:
		return false
	}
	return true
}

// Workout is one recorded workout. ActivityType uses the platform's numeric
// activity codes; the health tool maps them to display names.
type Workout struct {
	ID             string    `json:"id" yaml:"id"`
	ActivityType   int       `json:"activityType" yaml:"activity_type"`
	Start          time.Time `json:"start" yaml:"start"`
	End            time.Time `json:"end" yaml:"end"`
	DistanceMeters float64   `json:"distanceMeters,omitempty" yaml:"distance_meters,omitempty"`
}

// Duration is the workout's elapsed time.
func (w Workout) Duration() time.Duration {
	if w.End.Before(w.Start) {
		return 0
	}
	return w.End.Sub(w.Start)
}
