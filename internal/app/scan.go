package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/corey/kwcount/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FileCounts holds the counts of one database file.
type FileCounts struct {
	Path   string
	Bytes  int
	Counts *ports.Counts
}

// ScanResult holds per-file counts, in argument order, and their sum.
type ScanResult struct {
	Files   []FileCounts
	Totals  *ports.Counts
	Elapsed time.Duration
}

// Scan counts the queries in every database file. The automaton is built
// once and shared by up to scan.workers goroutines; each file is matched as
// one contiguous text. The first read error cancels files not yet started.
func (a *App) Scan(ctx context.Context, queriesPath string, databases []string) (*ScanResult, error) {
	queries, err := corpus.ReadQueries(queriesPath)
	if err != nil {
		return nil, err
	}
	ac := automaton.Build(queries)
	a.Metrics.SetAutomatonNodes(ac.Stats().Nodes)

	start := time.Now()
	files := make([]FileCounts, len(databases))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(a.Config.Scan.Workers)
	for i, path := range databases {
		if egCtx.Err() != nil {
			break
		}
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read database: %w", err)
			}
			t0 := time.Now()
			counts := ac.CountBytes(text)
			a.Metrics.ObserveScan(automaton.StrategyName, len(text), counts.Total(), time.Since(t0))
			files[i] = FileCounts{Path: path, Bytes: len(text), Counts: counts}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	totals := ports.NewCounts(ac.Keywords())
	for _, f := range files {
		totals.Merge(f.Counts)
	}
	res := &ScanResult{Files: files, Totals: totals, Elapsed: time.Since(start)}
	a.Log.Info("scan done",
		zap.Int("files", len(files)),
		zap.Int("workers", a.Config.Scan.Workers),
		zap.Int("matches", totals.Total()),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

// Locate returns up to max match events (all when max <= 0) in end-offset
// order.
func (a *App) Locate(databasePath, queriesPath string, max int) ([]automaton.Match, error) {
	in, err := loadInputs(databasePath, queriesPath)
	if err != nil {
		return nil, err
	}
	return automaton.Build(in.queries).FindAll(in.database, max), nil
}
