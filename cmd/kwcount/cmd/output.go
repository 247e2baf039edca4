package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/corey/kwcount/internal/app"
	"github.com/corey/kwcount/internal/domain/automaton"
	"github.com/corey/kwcount/internal/ports"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorGray   = "\033[90m"
)

// palette returns color codes, or empty strings when color is off.
type palette struct{ on bool }

func (p palette) c(code string) string {
	if !p.on {
		return ""
	}
	return code
}

func (p palette) reset() string { return p.c(colorReset) }

// formatMillis renders d as milliseconds with one decimal.
func formatMillis(d time.Duration) string {
	return fmt.Sprintf("%.1f ms", float64(d)/float64(time.Millisecond))
}

// formatBenchRun formats a bench run ranking, fastest first.
//
//	Average runtime for 10 tests
//	aho: 1.2 ms
//	library: 1.9 ms
func formatBenchRun(run *ports.BenchRun, color bool) string {
	p := palette{color}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%sAverage runtime for %d tests%s\n", p.c(colorBold), run.Runs, p.reset())
	for i, r := range run.Results {
		name := r.Strategy
		if i == 0 {
			name = p.c(colorGreen) + name + p.reset()
		}
		fmt.Fprintf(&sb, "%s: %s", name, formatMillis(r.Average))
		if !r.Overlapping {
			fmt.Fprintf(&sb, "  %s(non-overlapping)%s", p.c(colorGray), p.reset())
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatCountResult formats the one-line summary of a count.
func formatCountResult(res *app.CountResult, output string, color bool) string {
	p := palette{color}
	line := fmt.Sprintf("%s⚡ %d keywords │ %d matches%s │ %s │ %s",
		p.c(colorBold), res.Counts.Len(), res.Counts.Total(), p.reset(), res.Strategy, res.Elapsed.Round(time.Microsecond))
	if res.Stats != nil {
		line += fmt.Sprintf(" │ %d nodes", res.Stats.Nodes)
	}
	if output != "" {
		line += fmt.Sprintf(" → %s%s%s", p.c(colorCyan), output, p.reset())
	}
	return line + "\n"
}

// formatHistory formats saved bench runs, newest first.
//
//	01J... 2026-10-18 12:00:00  10 runs  4 keywords  1.2 MB
//	  aho: 1.2 ms  library: 1.9 ms  ...
func formatHistory(runs []*ports.BenchRun, color bool) string {
	p := palette{color}
	if len(runs) == 0 {
		return "⚡ no saved bench runs\n"
	}
	var sb strings.Builder
	for _, run := range runs {
		fmt.Fprintf(&sb, "%s%s%s %s  %d runs  %d keywords  %s\n",
			p.c(colorCyan), run.ID, p.reset(),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Runs, run.QueryCount, formatBytes(run.DatabaseBytes))
		sb.WriteString(" ")
		for _, r := range run.Results {
			fmt.Fprintf(&sb, " %s: %s", r.Strategy, formatMillis(r.Average))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatRunDetail formats one saved run: its inputs, then the ranking.
//
//	01J... 2026-10-18 12:00:00
//	database: database.txt (1.2 MB)  queries: queries.txt (4 keywords)  digest: 9f86d081884c7d65
//	Average runtime for 10 tests
//	aho: 1.2 ms
func formatRunDetail(run *ports.BenchRun, color bool) string {
	p := palette{color}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s%s%s %s\n", p.c(colorCyan), run.ID, p.reset(),
		run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "database: %s (%s)  queries: %s (%d keywords)",
		run.Database, formatBytes(run.DatabaseBytes), run.Queries, run.QueryCount)
	if run.Digest != "" {
		fmt.Fprintf(&sb, "  digest: %s", run.Digest)
	}
	sb.WriteString("\n")
	sb.WriteString(formatBenchRun(run, color))
	return sb.String()
}

// formatVerify formats a verification report. Mismatches are listed per
// strategy, at most limit each (all when limit <= 0).
func formatVerify(report *app.VerifyReport, limit int, color bool) string {
	p := palette{color}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s⚡ %d keywords vs %s%s\n", p.c(colorBold), report.Keywords, report.Reference, p.reset())
	for _, c := range report.Checks {
		if c.OK() {
			fmt.Fprintf(&sb, "  %s✓%s %s\n", p.c(colorGreen), p.reset(), c.Strategy)
			continue
		}
		mark, col := "✗", colorRed
		note := ""
		if !c.Overlapping {
			mark, col = "~", colorYellow
			note = " (non-overlapping)"
		}
		fmt.Fprintf(&sb, "  %s%s%s %s: %d differ%s\n", p.c(col), mark, p.reset(), c.Strategy, len(c.Mismatches), note)
		for i, m := range c.Mismatches {
			if limit > 0 && i >= limit {
				fmt.Fprintf(&sb, "      %s… %d more%s\n", p.c(colorGray), len(c.Mismatches)-limit, p.reset())
				break
			}
			fmt.Fprintf(&sb, "      %q got %d want %d\n", m.Keyword, m.Got, m.Want)
		}
	}
	return sb.String()
}

// formatScan formats per-file and total counts.
//
//	db1.txt  he=1 she=1
//	total    he=2 she=1
func formatScan(res *app.ScanResult, color bool) string {
	p := palette{color}
	width := len("total")
	for _, f := range res.Files {
		width = max(width, len(f.Path))
	}
	var sb strings.Builder
	for _, f := range res.Files {
		fmt.Fprintf(&sb, "%s%-*s%s  %s\n", p.c(colorCyan), width, f.Path, p.reset(), formatPairs(f.Counts))
	}
	fmt.Fprintf(&sb, "%s%-*s%s  %s\n", p.c(colorBold), width, "total", p.reset(), formatPairs(res.Totals))
	return sb.String()
}

func formatPairs(c *ports.Counts) string {
	parts := make([]string, len(c.Keywords))
	for i, kw := range c.Keywords {
		parts[i] = fmt.Sprintf("%s=%d", kw, c.Values[i])
	}
	return strings.Join(parts, " ")
}

// formatMatches formats match events as "<offset> <keyword>" lines.
func formatMatches(matches []automaton.Match, color bool) string {
	p := palette{color}
	var sb strings.Builder
	for _, m := range matches {
		fmt.Fprintf(&sb, "%s%d%s %s\n", p.c(colorGray), m.Start, p.reset(), m.Keyword)
	}
	return sb.String()
}

func formatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	}
	return fmt.Sprintf("%d B", n)
}
