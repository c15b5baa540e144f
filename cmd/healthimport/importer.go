// In file: cmd/healthimport/importer.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dileep-u-k/device-tools/internal/calendar"
	"github.com/dileep-u-k/device-tools/internal/contacts"
	"github.com/dileep-u-k/device-tools/internal/health"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Files imported at once.
const importConcurrency = 4

// ImportFile is the on-disk shape of one export.
type ImportFile struct {
	// Authorize lists the data types the user has granted read access to.
	Authorize []health.DataType `yaml:"authorize"`
	Samples   []health.Sample   `yaml:"samples"`
	Workouts  []WorkoutRecord   `yaml:"workouts"`
	// Contacts and Events seed the address book and calendar.
	Contacts []contacts.Contact `yaml:"contacts"`
	Events   []calendar.Event   `yaml:"events"`
}

// WorkoutRecord is a workout plus the energy burned during it.
type WorkoutRecord struct {
	health.Workout `yaml:",inline"`
	EnergyKcal     float64 `yaml:"energy_kcal"`
}

// Stats counts what an import wrote.
type Stats struct {
	Files      int
	Samples    int
	Workouts   int
	Authorized int
	Contacts   int
	Events     int
}

// HealthWriter is the write side of the health store.
type HealthWriter interface {
	Authorize(ctx context.Context, types ...health.DataType) error
	AddSamples(ctx context.Context, samples ...health.Sample) error
	AddWorkout(ctx context.Context, w health.Workout, energyKcal float64) error
}

// ContactWriter is the write side of the contact store.
type ContactWriter interface {
	Add(ctx context.Context, cards ...contacts.Contact) ([]contacts.Contact, error)
}

// EventWriter is the write side of the calendar store.
type EventWriter interface {
	AddEvent(ctx context.Context, e calendar.Event) (calendar.Event, error)
}

// Importer loads YAML exports into the health store, and into the contact
// and calendar stores when those are attached.
type Importer struct {
	store    HealthWriter
	contacts ContactWriter
	events   EventWriter
}

func NewImporter(store HealthWriter) *Importer {
	return &Importer{store: store}
}

// WithContacts lets the import write contacts sections.
func (i *Importer) WithContacts(w ContactWriter) *Importer {
	i.contacts = w
	return i
}

// WithEvents lets the import write events sections.
func (i *Importer) WithEvents(w EventWriter) *Importer {
	i.events = w
	return i
}

// Run imports path, which is either a single YAML file or a directory whose
// *.yaml / *.yml files are imported concurrently.
func (i *Importer) Run(ctx context.Context, path string) (Stats, error) {
	log.Printf("🚀 Starting device data import from %s...", path)
	files, err := discoverFiles(path)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to discover import files: %w", err)
	}
	if len(files) == 0 {
		return Stats{}, fmt.Errorf("no YAML files found in %s", path)
	}

	perFile := make([]Stats, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for idx, file := range files {
		g.Go(func() error {
			stats, err := i.importFile(gctx, file)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			perFile[idx] = stats
			log.Printf("📥 Imported %s: %d samples, %d workouts, %d contacts, %d events",
				filepath.Base(file), stats.Samples, stats.Workouts, stats.Contacts, stats.Events)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	var total Stats
	for _, s := range perFile {
		total.Files++
		total.Samples += s.Samples
		total.Workouts += s.Workouts
		total.Authorized += s.Authorized
		total.Contacts += s.Contacts
		total.Events += s.Events
	}
	log.Printf("✅ Import complete: %d files, %d samples, %d workouts, %d contacts, %d events.",
		total.Files, total.Samples, total.Workouts, total.Contacts, total.Events)
	return total, nil
}

func discoverFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			files = append(files, filepath.Join(path, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

func (i *Importer) importFile(ctx context.Context, path string) (Stats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, err
	}
	var file ImportFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Stats{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := file.validate(); err != nil {
		return Stats{}, err
	}
	if len(file.Contacts) > 0 && i.contacts == nil {
		return Stats{}, fmt.Errorf("file has contacts but no contact store is attached")
	}
	if len(file.Events) > 0 && i.events == nil {
		return Stats{}, fmt.Errorf("file has events but no calendar store is attached")
	}

	if len(file.Authorize) > 0 {
		if err := i.store.Authorize(ctx, file.Authorize...); err != nil {
			return Stats{}, err
		}
	}
	if len(file.Samples) > 0 {
		if err := i.store.AddSamples(ctx, file.Samples...); err != nil {
			return Stats{}, err
		}
	}
	for _, w := range file.Workouts {
		if err := i.store.AddWorkout(ctx, w.Workout, w.EnergyKcal); err != nil {
			return Stats{}, err
		}
	}
	if len(file.Contacts) > 0 {
		if _, err := i.contacts.Add(ctx, file.Contacts...); err != nil {
			return Stats{}, err
		}
	}
	for _, e := range file.Events {
		if _, err := i.events.AddEvent(ctx, e); err != nil {
			return Stats{}, err
		}
	}
	return Stats{
		Samples:    len(file.Samples),
		Workouts:   len(file.Workouts),
		Authorized: len(file.Authorize),
		Contacts:   len(file.Contacts),
		Events:     len(file.Events),
	}, nil
}

func (f *ImportFile) validate() error {
	for _, t := range f.Authorize {
		if !t.Valid() {
			return fmt.Errorf("unknown data type %q in authorize", t)
		}
	}
	for n, s := range f.Samples {
		if !s.Type.Valid() || s.Type == health.Workouts {
			return fmt.Errorf("sample %d: unsupported type %q", n, s.Type)
		}
		if s.Start.IsZero() {
			return fmt.Errorf("sample %d: missing start", n)
		}
		if s.End.IsZero() {
			f.Samples[n].End = s.Start
		}
	}
	for n, w := range f.Workouts {
		if w.ID == "" {
			return fmt.Errorf("workout %d: missing id", n)
		}
		if w.Start.IsZero() || w.End.Before(w.Start) {
			return fmt.Errorf("workout %s: invalid time range", w.ID)
		}
	}
	for n, c := range f.Contacts {
		if c.FullName() == "" {
			return fmt.Errorf("contact %d: missing name", n)
		}
	}
	for n, e := range f.Events {
		if e.Start.IsZero() || e.End.Before(e.Start) {
			return fmt.Errorf("event %d: invalid time range", n)
		}
	}
	return nil
}
