package output

import (
	"context"
	"encoding/json"
	"io"
)

// JSONLinesFormatter renders one JSON object per event per line.
type JSONLinesFormatter struct {
	opts FormatOptions
}

// NewJSONLinesFormatter creates a JSON Lines formatter with the given options.
func NewJSONLinesFormatter(opts FormatOptions) *JSONLinesFormatter {
	return &JSONLinesFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONLinesFormatter) Name() string {
	return "json"
}

// Format renders each event as a flat JSON object on its own line.
func (f *JSONLinesFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for _, ev := range report.Events {
		if err := encoder.Encode(ev); err != nil {
			return err
		}
	}
	return nil
}
