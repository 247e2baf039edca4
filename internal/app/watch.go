package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	fsw "github.com/corey/kwcount/internal/adapters/fsnotify"
	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/corey/kwcount/internal/ports"
	"go.uber.org/zap"
)

// Watch counts once, then recounts every time the content of the database
// or query file changes, until ctx is done. Events that leave both files
// byte-identical are skipped. onCount, if non-nil, receives every outcome,
// including failed recounts (a half-written file is not fatal). When
// metrics.addr is set, /metrics is served for the lifetime of the watch.
func (a *App) Watch(ctx context.Context, req CountRequest, onCount func(*CountResult, error)) error {
	w, err := fsw.NewWatcher(a.Config.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	return a.watchWith(ctx, w, req, onCount)
}

// watchWith takes the baseline digest and registers the watch before the
// initial count, so a change landing during startup always yields a recount.
func (a *App) watchWith(ctx context.Context, w ports.Watcher, req CountRequest, onCount func(*CountResult, error)) error {
	defer w.Stop()

	if onCount == nil {
		onCount = func(*CountResult, error) {}
	}
	if ew, ok := w.(interface{ OnError(func(error)) }); ok {
		ew.OnError(func(err error) {
			a.Log.Warn("watcher error", zap.Error(err))
		})
	}

	inputs := []string{req.Database, req.Queries}
	var (
		mu   sync.Mutex // held by the initial count and every recount
		last string
	)
	recount := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		digest, derr := corpus.FileDigest(inputs...)
		if derr == nil && digest == last {
			a.Log.Debug("input unchanged, skipping", zap.String("path", path))
			return
		}
		last = digest
		a.Log.Info("input changed, recounting", zap.String("path", path))
		res, err := a.Count(req)
		if err != nil {
			a.Log.Warn("recount failed", zap.Error(err))
		}
		onCount(res, err)
	}

	mu.Lock()
	err := func() error {
		defer mu.Unlock()
		var err error
		if last, err = corpus.FileDigest(inputs...); err != nil {
			return err
		}
		if err = w.Watch(inputs, recount); err != nil {
			return err
		}
		res, err := a.Count(req)
		if err != nil {
			return err
		}
		onCount(res, nil)
		return nil
	}()
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	if addr := a.Config.Metrics.Addr; addr != "" {
		a.Log.Info("serving metrics", zap.String("addr", addr))
		go func() { serveErr <- a.Metrics.Serve(ctx, addr) }()
	}

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil
		}
		return ctx.Err()
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		<-ctx.Done()
		return nil
	}
}
