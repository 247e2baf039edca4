package ahocorasick

import (
	"testing"

	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Library strategy: petar-dambovaliev/aho-corasick with overlapping iteration
// Expectation: identical counts to the in-house automaton for every input.
// =============================================================================

func TestCounter_SuffixSharing(t *testing.T) {
	c := NewCounter(true)
	got, err := c.Count("ushers", []string{"he", "she", "his", "hers"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"he": 1, "she": 1, "his": 0, "hers": 1}, got.Map())
}

func TestCounter_Overlap(t *testing.T) {
	for _, dfa := range []bool{true, false} {
		got, err := NewCounter(dfa).Count("aaaa", []string{"aa"})
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"aa": 3}, got.Map(), "dfa=%v", dfa)
	}
}

func TestCounter_Degenerate(t *testing.T) {
	c := NewCounter(true)

	got, err := c.Count("anything", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())

	got, err = c.Count("", []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 0}, got.Map())

	got, err = c.Count("abab", []string{"ab", "ab"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ab"}, got.Keywords)
	assert.Equal(t, map[string]int{"ab": 2}, got.Map())
}

func TestCounter_EmptyKeyword(t *testing.T) {
	got, err := NewCounter(true).Count("né", []string{"", "é"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"": 3, "é": 1}, got.Map())
}

func TestCounter_MatchesAutomaton(t *testing.T) {
	queries := []string{"log", "login", "in", "gin", "n", "og", "ogi"}
	text := "login page, log in, begin again, logging"

	want := automaton.Build(queries).Count(text)
	got, err := NewCounter(true).Count(text, queries)
	require.NoError(t, err)
	assert.Equal(t, want.Keywords, got.Keywords)
	assert.Equal(t, want.Values, got.Values)
}

func TestCounter_Name(t *testing.T) {
	c := NewCounter(false)
	assert.Equal(t, "library", c.Name())
	assert.True(t, c.Overlapping())
}

func TestTextScanner_Offsets(t *testing.T) {
	s := NewTextScanner([]string{"", "log", "login"}, true)

	matches := s.Scan("login")
	require.Len(t, matches, 2)
	seen := map[int]TextMatch{}
	for _, m := range matches {
		seen[m.PatternIndex] = m
	}
	assert.Equal(t, TextMatch{PatternIndex: 1, Start: 0, End: 3}, seen[1])
	assert.Equal(t, TextMatch{PatternIndex: 2, Start: 0, End: 5}, seen[2])
}

func TestTextScanner_OnlyEmptyPatterns(t *testing.T) {
	s := NewTextScanner([]string{""}, true)
	assert.Nil(t, s.Scan("abc"))
}

func BenchmarkCount(b *testing.B) {
	queries := []string{"he", "she", "his", "hers", "login", "auth", "session"}
	text := "ushers his hers login auth session "
	for len(text) < 64*1024 {
		text += text
	}
	c := NewCounter(true)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Count(text, queries)
	}
}
