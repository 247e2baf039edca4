package automaton

import (
	"unicode/utf8"

	"github.com/corey/kwcount/internal/ports"
)

// Count returns the number of (possibly overlapping) occurrences of every
// keyword in text. Every distinct keyword has an entry, zero if absent.
// The empty keyword, if present, counts one match per character boundary:
// utf8.RuneCountInString(text) + 1.
func (a *Automaton) Count(text string) *ports.Counts {
	counts := a.newCounts()
	tally(a, text, counts.Values)
	if a.empty >= 0 {
		counts.Values[a.empty] += utf8.RuneCountInString(text) + 1
	}
	return counts
}

// CountBytes is Count for a byte slice.
func (a *Automaton) CountBytes(text []byte) *ports.Counts {
	counts := a.newCounts()
	tally(a, text, counts.Values)
	if a.empty >= 0 {
		counts.Values[a.empty] += utf8.RuneCount(text) + 1
	}
	return counts
}

// tally runs the automaton over text once, adding one to values[id] for
// every keyword id in the output set of each state entered.
func tally[T ~string | ~[]byte](a *Automaton, text T, values []int) {
	nodes, outputs := a.nodes, a.outputs
	state := root
	for i := 0; i < len(text); i++ {
		state = step(nodes, state, text[i])
		n := &nodes[state]
		for _, id := range outputs[n.outStart:n.outEnd] {
			values[id]++
		}
	}
}

// Match is one keyword occurrence. Start and End are byte offsets into the
// scanned text, End exclusive.
type Match struct {
	Keyword string
	ID      int
	Start   int
	End     int
}

// Scan reports every occurrence to fn in order of end offset; occurrences
// ending at the same offset are reported longest first. Scanning stops
// early when fn returns false. The empty keyword is never reported.
func (a *Automaton) Scan(text string, fn func(Match) bool) {
	nodes, outputs := a.nodes, a.outputs
	state := root
	for i := 0; i < len(text); i++ {
		state = step(nodes, state, text[i])
		n := &nodes[state]
		for _, id := range outputs[n.outStart:n.outEnd] {
			kw := a.keywords[id]
			m := Match{Keyword: kw, ID: int(id), Start: i + 1 - len(kw), End: i + 1}
			if !fn(m) {
				return
			}
		}
	}
}

// FindAll collects up to limit occurrences (all when limit <= 0).
func (a *Automaton) FindAll(text string, limit int) []Match {
	var out []Match
	a.Scan(text, func(m Match) bool {
		out = append(out, m)
		return limit <= 0 || len(out) < limit
	})
	return out
}
