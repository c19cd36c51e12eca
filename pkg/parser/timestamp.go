package parser

import (
	"fmt"
	"regexp"
	"time"
)

// Default timestamp format emitted by adlib's debug logger: every relevant
// line starts with "[<ISO-8601 UTC timestamp> <level>]". The capture group is
// the timestamp token itself.
const (
	DefaultTimestampPattern = `^\[(\d{4}-\d{2}-\d{2}T[\d:.]+Z)\s+\w+`
	DefaultTimestampLayout  = time.RFC3339Nano
)

// TimestampExtractor extracts and parses the leading timestamp of a log line.
type TimestampExtractor struct {
	pattern *regexp.Regexp
	layout  string
}

// NewTimestampExtractor creates an extractor for the given prefix pattern and
// time layout. The pattern's first capture group must be the timestamp token.
func NewTimestampExtractor(pattern *regexp.Regexp, layout string) *TimestampExtractor {
	return &TimestampExtractor{
		pattern: pattern,
		layout:  layout,
	}
}

// NewDefaultExtractor creates an extractor for adlib's debug-log prefix.
func NewDefaultExtractor() *TimestampExtractor {
	return NewTimestampExtractor(
		regexp.MustCompile(DefaultTimestampPattern),
		DefaultTimestampLayout,
	)
}

// Extract attempts to extract and parse a timestamp from a log line.
// Returns the parsed time normalized to UTC on success. Returns zero time and
// an error when the prefix shape doesn't match or the token is not a valid
// calendar time; callers treat either as "skip this line", never as fatal.
func (e *TimestampExtractor) Extract(line string) (time.Time, error) {
	matches := e.pattern.FindStringSubmatch(line)
	if len(matches) < 2 {
		return time.Time{}, fmt.Errorf("timestamp pattern did not match")
	}

	tsStr := matches[1]

	ts, err := time.Parse(e.layout, tsStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", tsStr, err)
	}

	return ts.UTC(), nil
}
