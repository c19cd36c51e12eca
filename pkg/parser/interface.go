// Package parser reads adlib debug logs and turns tagged lines into events.
package parser

import (
	"context"
	"io"

	"github.com/adlib-audio/translog/pkg/event"
)

// EventSource provides an iterator over parsed events.
// Implementations must be safe for sequential access (not concurrent).
type EventSource interface {
	// Next returns the next parsed event.
	// Returns io.EOF when no more events are available.
	// Lines that cannot be parsed (no timestamp, no matching tag, or
	// unparseable fields) are skipped silently.
	Next(ctx context.Context) (*event.Event, error)

	// Close releases any resources held by the source.
	Close() error
}

// ReadAll drains a source into an ordered slice, preserving line order.
// The source is fully consumed even when zero events are produced.
func ReadAll(ctx context.Context, src EventSource) ([]*event.Event, error) {
	var events []*event.Event
	for {
		ev, err := src.Next(ctx)
		if err == io.EOF {
			return events, nil
		}
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
}
