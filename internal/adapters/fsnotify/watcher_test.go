package fsnotify

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// fsnotify Watcher Adapter: detect database/query file changes, trigger recount
// Expectation: changes to watched files fire within <100ms; siblings are ignored.
// =============================================================================

// waitForCallback waits up to timeout for the callback channel to receive a value.
func waitForCallback(ch <-chan string, timeout time.Duration) (string, bool) {
	select {
	case v := <-ch:
		return v, true
	case <-time.After(timeout):
		return "", false
	}
}

func startWatcher(t *testing.T, debounce time.Duration, paths ...string) <-chan string {
	t.Helper()
	w, err := NewWatcher(debounce)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	changed := make(chan string, 10)
	require.NoError(t, w.Watch(paths, func(path string) {
		changed <- path
	}))

	// Give watcher time to start
	time.Sleep(50 * time.Millisecond)
	return changed
}

func TestWatcher_DetectsFileChange(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte("original"), 0644))

	changed := startWatcher(t, 0, db)

	require.NoError(t, os.WriteFile(db, []byte("modified"), 0644))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for file change")
	assert.Equal(t, db, path)
}

func TestWatcher_IgnoresUnwatchedSiblings(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte("x"), 0644))

	changed := startWatcher(t, 0, db)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("noise"), 0644))

	_, ok := waitForCallback(changed, 300*time.Millisecond)
	assert.False(t, ok, "sibling file must not trigger a callback")
}

func TestWatcher_DetectsReplaceByRename(t *testing.T) {
	// Editors write a temp file and rename it over the original.
	dir := t.TempDir()
	q := filepath.Join(dir, "queries.txt")
	require.NoError(t, os.WriteFile(q, []byte("he\n"), 0644))

	changed := startWatcher(t, 0, q)

	tmp := filepath.Join(dir, ".queries.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("he\nshe\n"), 0644))
	require.NoError(t, os.Rename(tmp, q))

	path, ok := waitForCallback(changed, 2*time.Second)
	assert.True(t, ok, "expected callback for rename over watched file")
	assert.Equal(t, q, path)
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte("0"), 0644))

	changed := startWatcher(t, 200*time.Millisecond, db)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(db, []byte{byte('a' + i)}, 0644))
		time.Sleep(20 * time.Millisecond)
	}

	_, ok := waitForCallback(changed, 2*time.Second)
	require.True(t, ok)
	_, again := waitForCallback(changed, 400*time.Millisecond)
	assert.False(t, again, "burst of writes should collapse into one callback")
}

func TestWatcher_DebounceFiresAfterLastWrite(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte("0"), 0644))

	w, err := NewWatcher(100 * time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { w.Stop() })

	seen := make(chan string, 10)
	require.NoError(t, w.Watch([]string{db}, func(path string) {
		data, _ := os.ReadFile(path)
		seen <- string(data)
	}))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(db, []byte("aaa"), 0644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(db, []byte("aaaaaa"), 0644))
	lastWrite := time.Now()

	content, ok := waitForCallback(seen, 2*time.Second)
	require.True(t, ok, "expected callback after burst")
	assert.Equal(t, "aaaaaa", content, "callback must observe the final write")
	assert.GreaterOrEqual(t, time.Since(lastWrite), 90*time.Millisecond, "callback waits for the burst to settle")

	_, again := waitForCallback(seen, 300*time.Millisecond)
	assert.False(t, again)
}

func TestWatcher_StopCancelsPendingCallback(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "database.txt")
	require.NoError(t, os.WriteFile(db, []byte("0"), 0644))

	w, err := NewWatcher(300 * time.Millisecond)
	require.NoError(t, err)
	changed := make(chan string, 10)
	require.NoError(t, w.Watch([]string{db}, func(path string) { changed <- path }))
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(db, []byte("1"), 0644))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, w.Stop())

	_, ok := waitForCallback(changed, 600*time.Millisecond)
	assert.False(t, ok, "no callback after Stop")
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch([]string{filepath.Join(t.TempDir(), "nope", "db.txt")}, func(string) {})
	assert.Error(t, err)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	w, err := NewWatcher(0)
	require.NoError(t, err)
	assert.NoError(t, w.Stop())
	assert.NoError(t, w.Stop())
}
