// Package corpus reads database and query files and writes count reports.
//
// File formats:
//
//	database  whole file is one text, read as-is
//	queries   one keyword per line ("\n", optional "\r" before it);
//	          a trailing newline does not add an empty keyword
//	output    "<keyword> <count>\n" per distinct keyword, first-appearance order
package corpus

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/corey/kwcount/internal/ports"
)

// ParseQueries splits query file contents into keywords. Duplicates and
// blank lines in the middle of the file are kept; callers collapse
// duplicates when counting.
func ParseQueries(data []byte) []string {
	if len(data) == 0 {
		return nil
	}
	lines := bytes.Split(data, []byte{'\n'})
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	queries := make([]string, len(lines))
	for i, line := range lines {
		queries[i] = string(bytes.TrimSuffix(line, []byte{'\r'}))
	}
	return queries
}

// ReadQueries reads and parses a query file.
func ReadQueries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read queries: %w", err)
	}
	return ParseQueries(data), nil
}

// ReadDatabase reads the whole database file as one text.
func ReadDatabase(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read database: %w", err)
	}
	return string(data), nil
}

// WriteCounts writes one "<keyword> <count>" line per keyword.
func WriteCounts(w io.Writer, counts *ports.Counts) error {
	bw := bufio.NewWriter(w)
	for i, kw := range counts.Keywords {
		bw.WriteString(kw)
		bw.WriteByte(' ')
		bw.WriteString(strconv.Itoa(counts.Values[i]))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteCountsFile writes counts to path, replacing any existing file.
func WriteCountsFile(path string, counts *ports.Counts) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := WriteCounts(f, counts); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

// ParseCounts reads a report written by WriteCounts (or by any tool using
// the same format). The count is the text after the last space, so
// keywords may themselves contain spaces.
func ParseCounts(r io.Reader) (*ports.Counts, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read counts: %w", err)
	}

	lines := ParseQueries(data)
	keywords := make([]string, 0, len(lines))
	values := make([]int, 0, len(lines))
	for i, line := range lines {
		sep := strings.LastIndexByte(line, ' ')
		if sep < 0 {
			return nil, fmt.Errorf("line %d: missing count in %q", i+1, line)
		}
		n, err := strconv.Atoi(line[sep+1:])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad count: %w", i+1, err)
		}
		keywords = append(keywords, line[:sep])
		values = append(values, n)
	}

	counts := ports.NewCounts(keywords)
	for i, kw := range keywords {
		if id, ok := counts.ID(kw); ok {
			counts.Values[id] = values[i]
		}
	}
	return counts, nil
}

// ReadCountsFile opens and parses a report file.
func ReadCountsFile(path string) (*ports.Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open counts: %w", err)
	}
	defer f.Close()
	return ParseCounts(f)
}

// InputDigest hashes a database and its query list as 16 hex digits. The
// parts are streamed into the hash, so the database is never copied.
func InputDigest(database string, queries []string) string {
	h := xxhash.New()
	h.WriteString(database)
	h.Write([]byte{0})
	for _, q := range queries {
		h.WriteString(q)
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// FileDigest hashes the contents of paths in order. Used to tell a real
// content change from a touch or an editor re-saving identical bytes.
func FileDigest(paths ...string) (string, error) {
	h := xxhash.New()
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return "", fmt.Errorf("digest: %w", err)
		}
		_, err = io.Copy(h, f)
		f.Close()
		if err != nil {
			return "", fmt.Errorf("digest %s: %w", p, err)
		}
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
