package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dileep-u-k/device-tools/internal/settings"
	"github.com/dileep-u-k/device-tools/internal/tools"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closingGenerator struct {
	closed int
	err    error
}

func (g *closingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return "", nil
}

func (g *closingGenerator) Close() error {
	g.closed++
	return g.err
}

type plainGenerator struct{}

func (plainGenerator) Generate(ctx context.Context, prompt string) (string, error) { return "", nil }

func TestReleaseGenerator(t *testing.T) {
	gen := &closingGenerator{}
	releaseGenerator(gen)
	assert.Equal(t, 1, gen.closed)

	failing := &closingGenerator{err: errors.New("already closed")}
	assert.NotPanics(t, func() { releaseGenerator(failing) })
	assert.Equal(t, 1, failing.closed)

	assert.NotPanics(t, func() { releaseGenerator(plainGenerator{}) })
	assert.NotPanics(t, func() { releaseGenerator(nil) })
}

func TestInitializeToolManager(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cfg := &AppConfig{File: defaultFileConfig(), Location: time.UTC}

	manager, err := initializeToolManager(cfg, rdb, "", nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		"getCurrentWeather", "lookupLocation", "queryHealthData", "fetchWebMetadata", "searchWeb",
		"manageCalendar", "manageReminders", "searchContacts",
	}, manager.Names())

	ctx := context.Background()
	out, err := manager.Execute(ctx, "manageReminders", `{"action": "create", "title": "Renew passport"}`)
	require.NoError(t, err)
	require.Equal(t, tools.StatusSuccess, out.Status(), out.JSON())
	assert.Equal(t, "granted", mr.HGet("settings", "access:reminders"))

	out, err = manager.Execute(ctx, "manageReminders", `{}`)
	require.NoError(t, err)
	assert.Equal(t, 1, out["reminderCount"])

	require.NoError(t, settings.NewStore(rdb).SetAccess(ctx, settings.AccessCalendar, false))
	out, err = manager.Execute(ctx, "manageCalendar", `{}`)
	require.NoError(t, err)
	assert.Equal(t, tools.KindAuthorizationDenied, out.ErrorKind())
}
