package config

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a: b\n"), 0o644))

	fw := NewFileWatcher(path, 100*time.Millisecond, nil)

	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- fw.Watch(ctx, func() { calls.Add(1) }) }()

	// Даём watcher'у подписаться на директорию.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("a: c\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	// Файлы рядом не вызывают reload.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: y\n"), 0o644))
	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestFileWatcherMissingDirectory(t *testing.T) {
	fw := NewFileWatcher(filepath.Join(t.TempDir(), "nope", "properties.yaml"), 0, nil)
	err := fw.Watch(context.Background(), func() {})
	assert.Error(t, err)
}
