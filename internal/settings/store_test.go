package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/fitlog/internal/domain"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "settings.json"))

	got := store.Current()
	require.True(t, got.DarkMode())
	require.False(t, got.SidebarCollapsed())
	require.Equal(t, ThemeDark, got.Theme())
}

func TestLoadCorruptFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dark_mode": "yes"`), 0o644))

	require.Equal(t, Defaults(), NewStore(path).Current())

	require.NoError(t, os.WriteFile(path, []byte(`{"dark_mode": "yes"}`), 0o644))
	require.Equal(t, Defaults(), NewStore(path).Load())
}

func TestLoadFillsMissingKeyAndPreservesExtras(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"dark_mode": false, "units": "metric", "window": {"w": 800}}`), 0o644))

	store := NewStore(path)
	got := store.Current()
	require.False(t, got.DarkMode())
	require.False(t, got.SidebarCollapsed())
	require.Equal(t, ThemeLight, got.Theme())
	require.ElementsMatch(t, []string{"units", "window"}, got.ExtraKeys())

	units, ok := got.Extra("units")
	require.True(t, ok)
	require.JSONEq(t, `"metric"`, string(units))

	require.NoError(t, store.Save(got.WithSidebarCollapsed(true)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.JSONEq(t, `{"dark_mode": false, "sidebar_collapsed": true, "units": "metric", "window": {"w": 800}}`, string(data))
}

func TestUpdateAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	store := NewStore(path)
	before := store.Current()

	next, err := store.UpdateAndPersist(func(s Settings) Settings { return s.WithDarkMode(false) })
	require.NoError(t, err)
	require.False(t, next.DarkMode())
	require.True(t, before.DarkMode(), "previous value must not change")
	require.Equal(t, next, store.Current())

	reloaded := NewStore(path).Current()
	require.Equal(t, next, reloaded)
}

func TestUpdateAndPersistFailureKeepsCurrent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "no-such-dir", "settings.json"))

	got, err := store.UpdateAndPersist(func(s Settings) Settings { return s.WithDarkMode(false) })
	require.ErrorIs(t, err, domain.ErrPersistence)
	require.True(t, got.DarkMode())
	require.True(t, store.Current().DarkMode())
}

func TestThemeFor(t *testing.T) {
	require.Equal(t, ThemeDark, ThemeFor(true))
	require.Equal(t, ThemeLight, ThemeFor(false))
}

func TestMarshalDefaults(t *testing.T) {
	data, err := json.Marshal(Defaults())
	require.NoError(t, err)
	require.JSONEq(t, `{"dark_mode": true, "sidebar_collapsed": false}`, string(data))
}
