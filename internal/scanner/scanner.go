package scanner

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

var detectors = []struct {
	category Category
	pattern  *regexp.Regexp
}{
	{Email, regexp.MustCompile(`\b[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}\b`)},
	{Phone, regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)},
	{CreditCard, regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`)},
}

// Scan finds every PII-looking span in line. Categories are matched
// independently, so one line can yield matches of several categories and
// spans of different categories may overlap.
func Scan(line string) []Match {
	var matches []Match
	for _, d := range detectors {
		matches = append(matches, find(line, d.category, d.pattern)...)
	}
	return matches
}

// Find returns the spans of a single category within line.
func Find(line string, category Category) []Match {
	for _, d := range detectors {
		if d.category == category {
			return find(line, category, d.pattern)
		}
	}
	return nil
}

func find(line string, category Category, pattern *regexp.Regexp) []Match {
	locs := pattern.FindAllStringIndex(line, -1)
	if locs == nil {
		return nil
	}
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		matches = append(matches, Match{
			Value:    line[loc[0]:loc[1]],
			Start:    loc[0],
			End:      loc[1],
			Category: category,
		})
	}
	return matches
}

// LineReader yields one line at a time from a stream. Bulk INSERT lines
// routinely run past any fixed token size, so unlike bufio.Scanner it puts
// no limit on line length; a line is bounded only by memory. The final line
// is yielded even without a trailing newline.
type LineReader struct {
	r    *bufio.Reader
	line string
	err  error
	done bool
}

// NewLineReader returns a LineReader over r.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{r: bufio.NewReader(r)}
}

// Scan advances to the next line. It returns false at end of stream or on
// the first read failure.
func (l *LineReader) Scan() bool {
	if l.done {
		return false
	}
	line, err := l.r.ReadString('\n')
	if err != nil {
		l.done = true
		if err != io.EOF {
			l.err = err
			return false
		}
		if line == "" {
			return false
		}
	}
	l.line = trimLineEnding(line)
	return true
}

// Text returns the current line without its line ending.
func (l *LineReader) Text() string {
	return l.line
}

// Err returns the first read failure, if any.
func (l *LineReader) Err() error {
	return l.err
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}

// Tally runs the scan-only pass over r. Each line bumps a category counter at
// most once regardless of how many matches it holds; TotalLines counts every
// line. The first read failure aborts the pass.
func Tally(r io.Reader) (Report, error) {
	var report Report

	in := NewLineReader(r)
	for in.Scan() {
		line := in.Text()
		report.TotalLines++

		for _, d := range detectors {
			if !d.pattern.MatchString(line) {
				continue
			}
			switch d.category {
			case Email:
				report.EmailLines++
			case Phone:
				report.PhoneLines++
			case CreditCard:
				report.CreditCardLines++
			}
		}
	}
	if err := in.Err(); err != nil {
		return report, fmt.Errorf("reading dump: %w", err)
	}
	return report, nil
}
