// Package ahocorasick provides the "library" counting strategy: multi-pattern
// matching delegated to the petar-dambovaliev/aho-corasick package, as
// opposed to the automaton built from scratch in internal/domain/automaton.
package ahocorasick

import (
	"unicode/utf8"

	"github.com/corey/kwcount/internal/ports"
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// StrategyName is the CLI name of this counter.
const StrategyName = "library"

// Counter implements ports.Counter with a pre-built library automaton.
// The automaton is rebuilt on every Count call; overlapping iteration gives
// the same semantics as the in-house automaton.
type Counter struct {
	dfa bool
}

// NewCounter returns a library-backed counter. DFA mode trades build time
// and memory for faster scanning.
func NewCounter(dfa bool) *Counter {
	return &Counter{dfa: dfa}
}

// Name implements ports.Counter.
func (c *Counter) Name() string { return StrategyName }

// Overlapping implements ports.Counter.
func (c *Counter) Overlapping() bool { return true }

// Count implements ports.Counter.
func (c *Counter) Count(database string, queries []string) (*ports.Counts, error) {
	counts := ports.NewCounts(queries)
	scanner := NewTextScanner(counts.Keywords, c.dfa)
	for _, m := range scanner.Scan(database) {
		counts.Values[m.PatternIndex]++
	}
	// The empty keyword never reaches the library; it matches at every
	// character boundary.
	if id, ok := counts.ID(""); ok {
		counts.Values[id] = utf8.RuneCountInString(database) + 1
	}
	return counts, nil
}

// TextMatch is one match with byte offsets.
type TextMatch struct {
	PatternIndex int // index into the patterns given to NewTextScanner
	Start        int // byte offset start (inclusive)
	End          int // byte offset end (exclusive)
}

// TextScanner wraps a library automaton and maps its pattern ids back to
// the caller's pattern indices. Empty patterns are skipped.
type TextScanner struct {
	automaton aho.AhoCorasick
	ids       []int // library pattern id -> caller index
}

// NewTextScanner builds a scanner over patterns.
func NewTextScanner(patterns []string, dfa bool) *TextScanner {
	nonEmpty := make([]string, 0, len(patterns))
	ids := make([]int, 0, len(patterns))
	for i, pat := range patterns {
		if pat == "" {
			continue
		}
		nonEmpty = append(nonEmpty, pat)
		ids = append(ids, i)
	}

	s := &TextScanner{ids: ids}
	if len(nonEmpty) > 0 {
		builder := aho.NewAhoCorasickBuilder(aho.Opts{
			DFA: dfa,
		})
		s.automaton = builder.Build(nonEmpty)
	}
	return s
}

// Scan returns every overlapping match in content.
func (s *TextScanner) Scan(content string) []TextMatch {
	if len(s.ids) == 0 {
		return nil
	}
	iter := s.automaton.IterOverlapping(content)
	var matches []TextMatch
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		matches = append(matches, TextMatch{
			PatternIndex: s.ids[m.Pattern()],
			Start:        m.Start(),
			End:          m.End(),
		})
	}
	return matches
}
