package app

import (
	"github.com/corey/kwcount/internal/adapters/baseline"
	"github.com/corey/kwcount/internal/domain/corpus"
	"github.com/corey/kwcount/internal/ports"
	"go.uber.org/zap"
)

// Mismatch is one keyword whose count disagrees with the reference.
type Mismatch struct {
	Keyword string
	Got     int
	Want    int
}

// StrategyCheck is the verification outcome of one strategy.
type StrategyCheck struct {
	Strategy    string
	Overlapping bool
	Mismatches  []Mismatch
}

// OK reports whether the strategy agreed with the reference on every keyword.
func (s StrategyCheck) OK() bool { return len(s.Mismatches) == 0 }

// VerifyReport collects the per-strategy checks of one verify call.
type VerifyReport struct {
	Reference string // "window" or the expected-counts file path
	Keywords  int
	Checks    []StrategyCheck
}

// VerifyRequest names the inputs of one verification.
type VerifyRequest struct {
	Database string
	Queries  string
	// Expected, when set, is a "<keyword> <count>" file used as the reference
	// instead of the sliding-window oracle.
	Expected   string
	Strategies []string // empty: all
}

// Verify counts with every strategy and compares each against the reference.
// Non-overlapping strategies are expected to disagree wherever a keyword can
// overlap itself; the report says which strategies overlap.
func (a *App) Verify(req VerifyRequest) (*VerifyReport, error) {
	names := req.Strategies
	if len(names) == 0 {
		names = StrategyNames()
	}
	in, err := loadInputs(req.Database, req.Queries)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{Reference: baseline.WindowName}
	var want *ports.Counts
	if req.Expected != "" {
		want, err = corpus.ReadCountsFile(req.Expected)
		if err != nil {
			return nil, err
		}
		report.Reference = req.Expected
	} else {
		want, err = baseline.Window{}.Count(in.database, in.queries)
		if err != nil {
			return nil, err
		}
	}
	report.Keywords = ports.NewCounts(in.queries).Len()

	for _, name := range names {
		c, err := a.Strategy(name)
		if err != nil {
			return nil, err
		}
		got, err := c.Count(in.database, in.queries)
		if err != nil {
			return nil, err
		}
		check := StrategyCheck{Strategy: name, Overlapping: c.Overlapping()}
		for _, kw := range got.Diff(want) {
			g, _ := got.Get(kw)
			w, _ := want.Get(kw)
			check.Mismatches = append(check.Mismatches, Mismatch{Keyword: kw, Got: g, Want: w})
		}
		a.Log.Debug("verified strategy",
			zap.String("strategy", name),
			zap.String("reference", report.Reference),
			zap.Int("mismatches", len(check.Mismatches)))
		report.Checks = append(report.Checks, check)
	}
	return report, nil
}
