// Package baseline holds the reference counting strategies the automaton is
// compared against. They are built on the standard library on purpose: each
// one is defined by the behaviour of a specific standard routine.
//
//	naive   strings.Count, non-overlapping
//	regex   regexp over the escaped keyword, non-overlapping
//	window  sliding window of step 1, overlapping (ground truth for the automaton)
package baseline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/corey/kwcount/internal/ports"
)

// Strategy names.
const (
	NaiveName  = "naive"
	RegexName  = "regex"
	WindowName = "window"
)

// Naive counts each keyword with strings.Count. Occurrences are counted
// left to right without overlap: "aa" in "aaaa" counts 2.
type Naive struct{}

// Name implements ports.Counter.
func (Naive) Name() string { return NaiveName }

// Overlapping implements ports.Counter.
func (Naive) Overlapping() bool { return false }

// Count implements ports.Counter.
func (Naive) Count(database string, queries []string) (*ports.Counts, error) {
	counts := ports.NewCounts(queries)
	for i, kw := range counts.Keywords {
		counts.Values[i] = strings.Count(database, kw)
	}
	return counts, nil
}

// Regex compiles one escaped literal pattern per keyword and counts
// non-overlapping matches.
type Regex struct{}

// Name implements ports.Counter.
func (Regex) Name() string { return RegexName }

// Overlapping implements ports.Counter.
func (Regex) Overlapping() bool { return false }

// Count implements ports.Counter.
func (Regex) Count(database string, queries []string) (*ports.Counts, error) {
	counts := ports.NewCounts(queries)
	for i, kw := range counts.Keywords {
		re, err := regexp.Compile(regexp.QuoteMeta(kw))
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", kw, err)
		}
		counts.Values[i] = len(re.FindAllStringIndex(database, -1))
	}
	return counts, nil
}

// Window counts overlapping occurrences by advancing one byte past every
// match start. Work is O(|text| x keywords).
type Window struct{}

// Name implements ports.Counter.
func (Window) Name() string { return WindowName }

// Overlapping implements ports.Counter.
func (Window) Overlapping() bool { return true }

// Count implements ports.Counter.
func (Window) Count(database string, queries []string) (*ports.Counts, error) {
	counts := ports.NewCounts(queries)
	for i, kw := range counts.Keywords {
		counts.Values[i] = CountOverlapping(database, kw)
	}
	return counts, nil
}

// CountOverlapping returns the number of start positions at which kw occurs
// in text. The empty keyword occurs at every character boundary.
func CountOverlapping(text, kw string) int {
	if kw == "" {
		return utf8.RuneCountInString(text) + 1
	}
	n := 0
	for i := 0; i+len(kw) <= len(text); {
		j := strings.Index(text[i:], kw)
		if j < 0 {
			break
		}
		n++
		i += j + 1
	}
	return n
}
