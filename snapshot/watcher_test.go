package snapshot

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/netlens/errors"
	"github.com/teranos/netlens/graph"
)

func TestWatcherReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "net.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": "A"}]}`), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Stop()

	var mu sync.Mutex
	var seen []int
	w.OnReload(func(s *graph.Snapshot) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, len(s.Nodes))
		return nil
	})
	w.Start()

	// Unrelated files in the same directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0644))
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": "A"}, {"id": "B"}]}`), 0644))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) > 0 && seen[len(seen)-1] == 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherReloadCallbackErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": [{"id": "A"}]}`), 0644))

	w, err := NewWatcher(path, 0)
	require.NoError(t, err)
	defer w.Stop()

	calls := 0
	w.OnReload(func(*graph.Snapshot) error {
		calls++
		return errors.New("engine busy")
	})
	w.OnReload(func(*graph.Snapshot) error {
		calls++
		return nil
	})

	require.NoError(t, w.Reload())
	assert.Equal(t, 2, calls)

	require.NoError(t, os.WriteFile(path, []byte(`{"nodes": `), 0644))
	assert.Error(t, w.Reload())
	assert.Equal(t, 2, calls)
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "net.json"), 0)
	assert.Error(t, err)
}
