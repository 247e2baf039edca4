package app

import (
	"fmt"
	"time"

	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/corey/kwcount/internal/ports"
	"go.uber.org/zap"
)

// CountRequest names the inputs of one count.
type CountRequest struct {
	Database string // path to the database text
	Queries  string // path to the query file
	Output   string // path of the report; empty skips writing
	Strategy string // empty uses count.strategy
	Validate bool   // aho only: check automaton invariants before matching
}

// CountResult is the outcome of one count.
type CountResult struct {
	Strategy string
	Counts   *ports.Counts
	Elapsed  time.Duration
	Stats    *automaton.Stats // aho only
}

// inputs holds a loaded database and query list.
type inputs struct {
	database string
	queries  []string
}

func loadInputs(databasePath, queriesPath string) (*inputs, error) {
	db, err := corpus.ReadDatabase(databasePath)
	if err != nil {
		return nil, err
	}
	qs, err := corpus.ReadQueries(queriesPath)
	if err != nil {
		return nil, err
	}
	return &inputs{database: db, queries: qs}, nil
}

// Count reads the inputs, counts with the requested strategy and writes
// the report.
func (a *App) Count(req CountRequest) (*CountResult, error) {
	name := req.Strategy
	if name == "" {
		name = a.Config.Count.Strategy
	}
	counter, err := a.Strategy(name)
	if err != nil {
		return nil, err
	}
	if req.Validate && name != automaton.StrategyName {
		return nil, fmt.Errorf("strategy %s: %w", name, ErrValidateUnsupported)
	}
	in, err := loadInputs(req.Database, req.Queries)
	if err != nil {
		return nil, err
	}

	res := &CountResult{Strategy: name}
	start := time.Now()
	if name == automaton.StrategyName {
		ac := automaton.Build(in.queries)
		if req.Validate {
			if err := ac.Validate(); err != nil {
				return nil, fmt.Errorf("automaton invariants: %w", err)
			}
		}
		stats := ac.Stats()
		res.Stats = &stats
		a.Metrics.SetAutomatonNodes(stats.Nodes)
		a.Log.Debug("automaton built",
			zap.Int("nodes", stats.Nodes),
			zap.Int("keywords", stats.Keywords),
			zap.Int("outputs", stats.Outputs),
			zap.Int("max_depth", stats.MaxDepth),
			zap.Int("automaton_bytes", stats.Bytes))
		res.Counts = ac.Count(in.database)
	} else {
		res.Counts, err = counter.Count(in.database, in.queries)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	res.Elapsed = time.Since(start)
	a.Metrics.ObserveScan(name, len(in.database), res.Counts.Total(), res.Elapsed)

	if req.Output != "" {
		if err := corpus.WriteCountsFile(req.Output, res.Counts); err != nil {
			return nil, err
		}
	}
	a.Log.Info("counted",
		zap.String("strategy", name),
		zap.Int("bytes", len(in.database)),
		zap.Int("keywords", res.Counts.Len()),
		zap.Int("matches", res.Counts.Total()),
		zap.Duration("elapsed", res.Elapsed),
		zap.String("output", req.Output))
	return res, nil
}
