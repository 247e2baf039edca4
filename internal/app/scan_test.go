package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_PerFileAndTotals(t *testing.T) {
	a, dir := newTestApp(t)
	a.Config.Scan.Workers = 2

	q := filepath.Join(dir, "queries.txt")
	require.NoError(t, os.WriteFile(q, []byte("he\nshe\nhers\n"), 0644))

	texts := []string{"ushers", "he said she", "", "hehehe"}
	var paths []string
	for i, text := range texts {
		p := filepath.Join(dir, fmt.Sprintf("db%d.txt", i))
		require.NoError(t, os.WriteFile(p, []byte(text), 0644))
		paths = append(paths, p)
	}

	res, err := a.Scan(context.Background(), q, paths)
	require.NoError(t, err)
	require.Len(t, res.Files, len(paths))

	for i, f := range res.Files {
		assert.Equal(t, paths[i], f.Path, "argument order kept")
		assert.Equal(t, len(texts[i]), f.Bytes)
		want := automaton.Build([]string{"he", "she", "hers"}).Count(texts[i])
		assert.Equal(t, want.Values, f.Counts.Values, f.Path)
	}

	// he: 1+2+0+3, she: 1+1, hers: 1
	assert.Equal(t, map[string]int{"he": 6, "she": 2, "hers": 1}, res.Totals.Map())
}

func TestScan_MissingFile(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "abc", "a\n")

	_, err := a.Scan(context.Background(), q, []string{db, filepath.Join(dir, "gone.txt")})
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestScan_NoFiles(t *testing.T) {
	a, dir := newTestApp(t)
	_, q := writeInputs(t, dir, "", "a\nb\n")

	res, err := a.Scan(context.Background(), q, nil)
	require.NoError(t, err)
	assert.Empty(t, res.Files)
	assert.Equal(t, []int{0, 0}, res.Totals.Values)
}

func TestLocate(t *testing.T) {
	a, dir := newTestApp(t)
	db, q := writeInputs(t, dir, "ushers", "he\nshe\nhers\n")

	matches, err := a.Locate(db, q, 0)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "she", matches[0].Keyword)
	assert.Equal(t, 1, matches[0].Start)
	assert.Equal(t, "he", matches[1].Keyword)
	assert.Equal(t, 2, matches[1].Start)
	assert.Equal(t, "hers", matches[2].Keyword)
	assert.Equal(t, 2, matches[2].Start)

	limited, err := a.Locate(db, q, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
