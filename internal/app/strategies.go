package app

import (
	"fmt"

	"github.com/corey/kwcount/internal/adapters/ahocorasick"
	"github.com/corey/kwcount/internal/adapters/baseline"
	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/corey/kwcount/internal/ports"
)

// strategies lists every counter in bench order.
var strategies = []func(cfg *Config) ports.Counter{
	func(*Config) ports.Counter { return automaton.Counter{} },
	func(cfg *Config) ports.Counter {
		dfa := true
		if cfg != nil {
			dfa = cfg.Count.LibraryDFA
		}
		return ahocorasick.NewCounter(dfa)
	},
	func(*Config) ports.Counter { return baseline.Naive{} },
	func(*Config) ports.Counter { return baseline.Regex{} },
	func(*Config) ports.Counter { return baseline.Window{} },
}

// StrategyNames returns the names of all registered strategies.
func StrategyNames() []string {
	names := make([]string, len(strategies))
	for i, mk := range strategies {
		names[i] = mk(nil).Name()
	}
	return names
}

// Strategy returns the counter registered under name.
func (a *App) Strategy(name string) (ports.Counter, error) {
	for _, mk := range strategies {
		if c := mk(a.Config); c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownStrategy, name, StrategyNames())
}

// lookupStrategy validates a name without an App.
func lookupStrategy(name string) (ports.Counter, error) {
	return (&App{}).Strategy(name)
}
