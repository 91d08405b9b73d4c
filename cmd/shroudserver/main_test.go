package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/config"
	"github.com/Dragynn-Redeux/ACE-Dragynn-sub001/internal/shroud"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel(""))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}

func TestOpenStoreFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shroud_zones: \"0x1 [1 2 3] 0 0 0 1|1|2\"\n"), 0o644))

	source, closeStore, err := openStore(context.Background(), config.StoreConfig{
		Backend:  config.BackendFile,
		FilePath: path,
	})
	require.NoError(t, err)
	defer closeStore()

	m := shroud.NewManager(source, shroud.ManagerConfig{})
	changed, err := m.Reload(context.Background())
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, m.Zones().Len())
}

func TestOpenStoreSQLite(t *testing.T) {
	source, closeStore, err := openStore(context.Background(), config.StoreConfig{
		Backend:    config.BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "props.db"),
	})
	require.NoError(t, err)
	defer closeStore()

	v, err := source.GetString(context.Background(), shroud.PropertyKey, "unset")
	require.NoError(t, err)
	assert.Equal(t, "unset", v)
}

func TestOpenStoreUnknownBackend(t *testing.T) {
	_, _, err := openStore(context.Background(), config.StoreConfig{Backend: "redis"})
	assert.Error(t, err)
}
