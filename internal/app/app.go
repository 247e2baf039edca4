// Package app wires together all adapters and domain logic.
// It owns configuration, the strategy registry, and the count, bench,
// verify, scan, locate and watch workflows the CLI exposes.
package app

import (
	"errors"
	"fmt"
	"sync"

	"github.com/corey/kwcount/internal/adapters/bbolt"
	"github.com/corey/kwcount/internal/adapters/metrics"
	"github.com/corey/kwcount/internal/ports"
	"go.uber.org/zap"
)

var (
	// ErrUnknownStrategy is returned for strategy names not in the registry.
	ErrUnknownStrategy = errors.New("unknown strategy")
	// ErrInvalidRuns is returned when a bench run count is not positive.
	ErrInvalidRuns = errors.New("runs must be a positive integer")
	// ErrValidateUnsupported is returned when invariant validation is
	// requested for a strategy that builds no automaton of its own.
	ErrValidateUnsupported = errors.New("validation is only available for the aho strategy")
)

// App is the top-level container wiring all components together.
type App struct {
	Config  *Config
	Paths   *Paths
	Log     *zap.Logger
	Metrics *metrics.Recorder

	mu    sync.Mutex // guards store
	store *bbolt.Store
}

// New creates an App for workDir. A nil logger is replaced with a no-op one.
func New(workDir string, cfg *Config, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		Config:  cfg,
		Paths:   NewPaths(workDir),
		Log:     log,
		Metrics: metrics.NewRecorder(),
	}
}

// Store opens the run history on first use.
func (a *App) Store() (ports.RunStore, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.store != nil {
		return a.store, nil
	}
	if err := a.Paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	s, err := bbolt.NewStore(a.Config.Store.Path)
	if err != nil {
		return nil, err
	}
	a.store = s
	a.Log.Debug("opened run history", zap.String("path", a.Config.Store.Path))
	return s, nil
}

// Close releases the run history, if open, and flushes the logger.
func (a *App) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	var err error
	if a.store != nil {
		err = a.store.Close()
		a.store = nil
	}
	_ = a.Log.Sync()
	return err
}
