package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWatcher records watched paths and lets a test fire change events.
type fakeWatcher struct {
	mu       sync.Mutex
	paths    []string
	onChange func(string)
	stopped  bool
	watching chan struct{}
	onWatch  func() // runs inside Watch, before it returns
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{watching: make(chan struct{})}
}

func (f *fakeWatcher) Watch(paths []string, onChange func(string)) error {
	f.mu.Lock()
	f.paths = paths
	f.onChange = onChange
	hook := f.onWatch
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	close(f.watching)
	return nil
}

func (f *fakeWatcher) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
	return nil
}

func (f *fakeWatcher) fire(path string) {
	f.mu.Lock()
	fn := f.onChange
	f.mu.Unlock()
	fn(path)
}

func TestWatch_RecountsOnChange(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "aaaa", "aa\n")
	out := filepath.Join(dir, "out.txt")
	req := CountRequest{Database: db, Queries: q, Output: out}

	results := make(chan *CountResult, 4)
	onCount := func(res *CountResult, err error) {
		require.NoError(t, err)
		results <- res
	}

	fw := newFakeWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watchWith(ctx, fw, req, onCount) }()

	<-fw.watching
	assert.Equal(t, []string{db, q}, fw.paths)
	initial := <-results
	got, _ := initial.Counts.Get("aa")
	assert.Equal(t, 3, got)

	require.NoError(t, os.WriteFile(db, []byte("aaaaaa"), 0644))
	fw.fire(db)

	select {
	case res := <-results:
		got, _ = res.Counts.Get("aa")
		assert.Equal(t, 5, got)
	case <-time.After(2 * time.Second):
		t.Fatal("no recount")
	}

	counts, err := corpus.ReadCountsFile(out)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, counts.Values)

	cancel()
	assert.NoError(t, <-done)
	assert.True(t, fw.stopped)
}

func TestWatch_RecountErrorIsReported(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "x", "x\n")

	errs := make(chan error, 2)
	fw := newFakeWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.watchWith(ctx, fw, CountRequest{Database: db, Queries: q}, func(_ *CountResult, err error) {
		errs <- err
	})

	<-fw.watching
	require.NoError(t, <-errs, "initial count")
	require.NoError(t, os.Remove(db))
	fw.fire(db)

	select {
	case err := <-errs:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("no callback")
	}
}

func TestWatch_SkipsUnchangedContent(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "abab", "ab\n")

	calls := make(chan struct{}, 4)
	fw := newFakeWatcher()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.watchWith(ctx, fw, CountRequest{Database: db, Queries: q}, func(*CountResult, error) {
		calls <- struct{}{}
	})

	<-fw.watching
	<-calls // initial count
	require.NoError(t, os.WriteFile(db, []byte("abab"), 0644))
	fw.fire(db)
	assert.Empty(t, calls, "same bytes must not recount")

	require.NoError(t, os.WriteFile(q, []byte("ab\nba\n"), 0644))
	fw.fire(q)
	select {
	case <-calls:
	case <-time.After(2 * time.Second):
		t.Fatal("query change must recount")
	}
}

func TestWatch_ChangeDuringStartupRecounts(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "aaaa", "aa\n")

	results := make(chan int, 4)
	fw := newFakeWatcher()
	// The edit lands after the watch is registered but before the initial
	// count; its event must not be mistaken for already-seen content.
	fw.onWatch = func() {
		require.NoError(t, os.WriteFile(db, []byte("aaaaaa"), 0644))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.watchWith(ctx, fw, CountRequest{Database: db, Queries: q}, func(res *CountResult, err error) {
		require.NoError(t, err)
		v, _ := res.Counts.Get("aa")
		results <- v
	})

	<-fw.watching
	assert.Equal(t, 5, <-results, "initial count sees the edit")
	fw.fire(db)
	select {
	case v := <-results:
		assert.Equal(t, 5, v)
	case <-time.After(2 * time.Second):
		t.Fatal("event for a change made during startup was skipped")
	}
}

func TestWatch_InitialCountFails(t *testing.T) {
	a, dir := newTestApp(t)
	err := a.Watch(context.Background(), CountRequest{
		Database: filepath.Join(dir, "missing.txt"),
		Queries:  filepath.Join(dir, "missing-q.txt"),
	}, nil)
	assert.Error(t, err)
}

func TestWatch_RealWatcher(t *testing.T) {
	a, dir := newTestApp(t)
	a.Config.Watch.Debounce = 10 * time.Millisecond
	db, q := writeInputs(t, dir, "he", "he\n")

	results := make(chan int, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, CountRequest{Database: db, Queries: q}, func(res *CountResult, err error) {
			if err == nil {
				v, _ := res.Counts.Get("he")
				results <- v
			}
		})
	}()

	select {
	case v := <-results:
		assert.Equal(t, 1, v, "initial count")
	case <-time.After(2 * time.Second):
		t.Fatal("no initial count")
	}

	require.NoError(t, os.WriteFile(db, []byte("hehehe"), 0644))

	deadline := time.After(3 * time.Second)
	for {
		select {
		case v := <-results:
			if v == 3 {
				cancel()
				assert.NoError(t, <-done)
				return
			}
		case <-deadline:
			t.Fatal("no recount after write")
		}
	}
}

func TestWatch_ReportsFinalContentAfterBurst(t *testing.T) {
	a, dir := newTestApp(t)
	a.Config.Watch.Debounce = 100 * time.Millisecond
	db, q := writeInputs(t, dir, "a", "aa\n")
	out := filepath.Join(dir, "out.txt")

	results := make(chan int, 8)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, CountRequest{Database: db, Queries: q, Output: out}, func(res *CountResult, err error) {
			if err == nil {
				v, _ := res.Counts.Get("aa")
				results <- v
			}
		})
	}()

	select {
	case v := <-results:
		assert.Equal(t, 0, v, "initial count")
	case <-time.After(2 * time.Second):
		t.Fatal("no initial count")
	}

	require.NoError(t, os.WriteFile(db, []byte("aaa"), 0644))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, os.WriteFile(db, []byte("aaaaaa"), 0644))

	select {
	case v := <-results:
		assert.Equal(t, 5, v, "recount must see the last write of the burst")
	case <-time.After(3 * time.Second):
		t.Fatal("no recount after writes")
	}
	select {
	case v := <-results:
		t.Fatalf("unexpected extra recount: aa=%d", v)
	case <-time.After(300 * time.Millisecond):
	}

	counts, err := corpus.ReadCountsFile(out)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, counts.Values)

	cancel()
	assert.NoError(t, <-done)
}
