package output

import (
	"context"
	"io"
)

// Formatter renders a parse report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (summary, full, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Color enables ANSI styling of section headers.
	Color bool
}
