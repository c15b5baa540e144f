package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dileep-u-k/device-tools/internal/calendar"
	"github.com/dileep-u-k/device-tools/internal/contacts"
	"github.com/dileep-u-k/device-tools/internal/health"
	"github.com/dileep-u-k/device-tools/internal/settings"
	"github.com/dileep-u-k/device-tools/internal/tools"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stepsExport = `authorize: [steps, workouts]
samples:
  - type: steps
    start: 2026-10-10T08:00:00Z
    end: 2026-10-10T09:00:00Z
    value: 4200
  - type: steps
    start: 2026-10-11T08:00:00Z
    value: 5100
`

const workoutExport = `workouts:
  - id: run-1
    activity_type: 37
    start: 2026-10-11T07:00:00Z
    end: 2026-10-11T07:30:00Z
    energy_kcal: 250
`

func newTestStore(t *testing.T) *health.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return health.NewStore(rdb)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportDirectoryFeedsHealthTool(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "steps.yaml", stepsExport)
	writeFile(t, dir, "workouts.yml", workoutExport)
	writeFile(t, dir, "README.txt", "ignored")
	store := newTestStore(t)

	stats, err := NewImporter(store).Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, Stats{Files: 2, Samples: 2, Workouts: 1, Authorized: 2}, stats)

	tool := tools.NewHealthTool(store, tools.HealthConfig{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC) },
	})

	out := tool.Execute(context.Background(), `{"dataType":"steps","startDate":"2026-10-10","endDate":"2026-10-12"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, 9300, out["totalSteps"])
	assert.Equal(t, 2, out["days"])

	out = tool.Execute(context.Background(), `{"dataType":"workouts","startDate":"2026-10-11","endDate":"2026-10-12"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, 1, out["workoutCount"])
	assert.Equal(t, "Running 30 min 250 kcal", out["workouts"])

	// Heart rate was never authorized.
	out = tool.Execute(context.Background(), `{"dataType":"heartRate","startDate":"2026-10-10","endDate":"2026-10-12"}`)
	assert.Equal(t, tools.KindAuthorizationDenied, out.ErrorKind())
}

func TestSingleDayQueryIncludesThatDay(t *testing.T) {
	path := writeFile(t, t.TempDir(), "steps.yaml", stepsExport)
	store := newTestStore(t)
	_, err := NewImporter(store).Run(context.Background(), path)
	require.NoError(t, err)

	tool := tools.NewHealthTool(store, tools.HealthConfig{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) },
	})

	out := tool.Execute(context.Background(), `{"dataType":"steps","startDate":"2026-10-11","endDate":"2026-10-11"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, 5100, out["totalSteps"])
	assert.Equal(t, 1, out["days"])
	assert.Equal(t, "2026-10-11", out["endDate"])

	out = tool.Execute(context.Background(), `{"dataType":"steps","startDate":"2026-10-09","endDate":"2026-10-10"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, 4200, out["totalSteps"], "the end date's samples are counted")
}

func TestImportDefaultsEndToStart(t *testing.T) {
	path := writeFile(t, t.TempDir(), "steps.yaml", stepsExport)
	store := newTestStore(t)

	_, err := NewImporter(store).Run(context.Background(), path)
	require.NoError(t, err)

	samples, err := store.Samples(context.Background(), health.Steps,
		time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.True(t, samples[0].End.Equal(samples[0].Start))
}

func TestImportRejectsInvalidFiles(t *testing.T) {
	tests := map[string]string{
		"unknown type":     "samples:\n  - type: calories\n    start: 2026-10-10T08:00:00Z\n    value: 1\n",
		"missing start":    "samples:\n  - type: steps\n    value: 1\n",
		"bad authorize":    "authorize: [calories]\n",
		"workout no id":    "workouts:\n  - activity_type: 37\n    start: 2026-10-11T07:00:00Z\n    end: 2026-10-11T07:30:00Z\n",
		"workout reverse":  "workouts:\n  - id: w\n    start: 2026-10-11T07:00:00Z\n    end: 2026-10-11T06:00:00Z\n",
		"not yaml":         "samples: [",
		"nameless card":    "contacts:\n  - emails: [a@b.c]\n",
		"event reverse":    "events:\n  - title: x\n    start: 2026-10-11T07:00:00Z\n    end: 2026-10-11T06:00:00Z\n",
		"no contact store": "contacts:\n  - given_name: Kai\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.yaml", content)
			_, err := NewImporter(newTestStore(t)).Run(context.Background(), path)
			assert.Error(t, err)
		})
	}
}

func TestImportEmptyDirectory(t *testing.T) {
	_, err := NewImporter(newTestStore(t)).Run(context.Background(), t.TempDir())
	assert.ErrorContains(t, err, "no YAML files")
}

const addressBookExport = `contacts:
  - id: c1
    given_name: Priya
    family_name: Nair
    organization: Acme
    emails: [priya@acme.io]
events:
  - title: Dentist
    start: 2026-10-20T09:00:00Z
    end: 2026-10-20T10:00:00Z
    location: Clinic
`

func TestImportContactsAndEvents(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	path := writeFile(t, t.TempDir(), "book.yaml", addressBookExport)
	ctx := context.Background()

	stats, err := NewImporter(health.NewStore(rdb)).
		WithContacts(contacts.NewStore(rdb)).
		WithEvents(calendar.NewStore(rdb)).
		Run(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Contacts)
	assert.Equal(t, 1, stats.Events)

	access := settings.NewStore(rdb)
	out := tools.NewContactsTool(contacts.NewStore(rdb), access).Execute(ctx, `{"query":"acme"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, "Priya Nair", out["name"])

	calendarTool := tools.NewCalendarTool(calendar.NewStore(rdb), access, tools.CalendarConfig{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) },
	})
	out = calendarTool.Execute(ctx, `{"startDate":"2026-10-20","endDate":"2026-10-20"}`)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, "Tue Oct 20 09:00-10:00 Dentist @ Clinic", out["events"])
}
