package automaton

import "github.com/corey/kwcount/internal/ports"

// StrategyName is the CLI name of the in-house automaton strategy.
const StrategyName = "aho"

// Counter adapts the automaton to ports.Counter. Each Count call builds a
// fresh automaton from the queries; callers that match many texts against
// the same queries should Build once and call Count on the Automaton.
type Counter struct{}

// Name implements ports.Counter.
func (Counter) Name() string { return StrategyName }

// Overlapping implements ports.Counter.
func (Counter) Overlapping() bool { return true }

// Count implements ports.Counter.
func (Counter) Count(database string, queries []string) (*ports.Counts, error) {
	return Build(queries).Count(database), nil
}
