package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/corey/kwcount/internal/ports"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// BenchRequest names the inputs of one bench invocation. Zero fields fall
// back to the bench.* config.
type BenchRequest struct {
	Runs       int
	Database   string
	Queries    string
	Strategies []string
	OutDir     string
	NoSave     bool
}

// OutputFileName returns the report file written for strategy.
func OutputFileName(strategy string) string {
	return "output_" + strategy + ".txt"
}

// Bench times every requested strategy Runs times. One run is a full
// pipeline (read inputs, count, write the report) so strategies are compared
// on what a user would wait for. Results are sorted fastest first and,
// unless NoSave is set, stored in the run history.
func (a *App) Bench(ctx context.Context, req BenchRequest) (*ports.BenchRun, error) {
	if req.Runs == 0 {
		req.Runs = a.Config.Bench.Runs
	}
	if req.Runs <= 0 {
		return nil, fmt.Errorf("bench %d: %w", req.Runs, ErrInvalidRuns)
	}
	if len(req.Strategies) == 0 {
		req.Strategies = a.Config.Bench.Strategies
	}
	if req.OutDir == "" {
		req.OutDir = a.Config.Bench.OutDir
	}

	counters := make([]ports.Counter, 0, len(req.Strategies))
	for _, name := range req.Strategies {
		c, err := a.Strategy(name)
		if err != nil {
			return nil, err
		}
		counters = append(counters, c)
	}
	if err := os.MkdirAll(req.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("create out dir: %w", err)
	}

	// Validate inputs once so a bad path fails before any timing starts.
	in, err := loadInputs(req.Database, req.Queries)
	if err != nil {
		return nil, err
	}

	started := time.Now()
	run := &ports.BenchRun{
		ID:            ulid.Make().String(),
		StartedAt:     started,
		Runs:          req.Runs,
		Database:      req.Database,
		Queries:       req.Queries,
		DatabaseBytes: len(in.database),
		Digest:        corpus.InputDigest(in.database, in.queries),
		QueryCount:    ports.NewCounts(in.queries).Len(),
	}

	for _, c := range counters {
		res, err := a.benchOne(ctx, c, req)
		if err != nil {
			return nil, err
		}
		a.Metrics.ObserveBench(res.Strategy, res.Average)
		a.Log.Info("bench strategy done",
			zap.String("strategy", res.Strategy),
			zap.Int("runs", req.Runs),
			zap.Duration("avg", res.Average),
			zap.Duration("min", res.Min),
			zap.Duration("max", res.Max))
		run.Results = append(run.Results, res)
	}

	sort.SliceStable(run.Results, func(i, j int) bool {
		return run.Results[i].Average < run.Results[j].Average
	})

	if !req.NoSave && a.Config.Bench.Save {
		store, err := a.Store()
		if err != nil {
			return nil, err
		}
		if err := store.SaveRun(run); err != nil {
			return nil, fmt.Errorf("save run: %w", err)
		}
		a.Log.Debug("bench run saved", zap.String("id", run.ID))
	}
	return run, nil
}

func (a *App) benchOne(ctx context.Context, c ports.Counter, req BenchRequest) (ports.StrategyResult, error) {
	res := ports.StrategyResult{
		Strategy:    c.Name(),
		Overlapping: c.Overlapping(),
		OutputFile:  filepath.Join(req.OutDir, OutputFileName(c.Name())),
	}

	var total time.Duration
	for i := 0; i < req.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		start := time.Now()
		in, err := loadInputs(req.Database, req.Queries)
		if err != nil {
			return res, err
		}
		counts, err := c.Count(in.database, in.queries)
		if err != nil {
			return res, fmt.Errorf("%s: %w", c.Name(), err)
		}
		if err := corpus.WriteCountsFile(res.OutputFile, counts); err != nil {
			return res, err
		}
		d := time.Since(start)
		a.Metrics.ObserveScan(c.Name(), len(in.database), counts.Total(), d)

		total += d
		if i == 0 || d < res.Min {
			res.Min = d
		}
		if d > res.Max {
			res.Max = d
		}
		res.TotalHits = counts.Total()
	}
	res.Average = total / time.Duration(req.Runs)
	return res, nil
}

// History returns up to limit saved bench runs, newest first.
func (a *App) History(limit int) ([]*ports.BenchRun, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return store.ListRuns(limit)
}

// HistoryRun returns the saved bench run with the given ID. Unknown IDs
// yield an error wrapping bbolt.ErrRunNotFound.
func (a *App) HistoryRun(id string) (*ports.BenchRun, error) {
	store, err := a.Store()
	if err != nil {
		return nil, err
	}
	return store.LoadRun(id)
}

// ClearHistory removes every saved bench run.
func (a *App) ClearHistory() error {
	store, err := a.Store()
	if err != nil {
		return err
	}
	return store.DeleteRuns()
}
