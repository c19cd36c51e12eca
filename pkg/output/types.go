// Package output renders parsed event sequences for human or machine
// consumption.
package output

import (
	"time"

	"github.com/adlib-audio/translog/pkg/event"
)

// Report is the complete parse output handed to formatters and webhooks.
type Report struct {
	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`

	// Events is the ordered event sequence, read-only once built.
	Events []*event.Event `json:"events"`

	// Metadata provides context about the parse run.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate counts over the event sequence.
type Summary struct {
	// TotalEvents is the number of successfully parsed events.
	TotalEvents int `json:"total_events"`

	// Commits is the number of COMMIT events.
	Commits int `json:"commits"`

	// Pauses is the number of PAUSE events.
	Pauses int `json:"pauses"`

	// HallucinationRejections is the number of SEGMENT events the producer
	// flagged as hallucinations.
	HallucinationRejections int `json:"hallucination_rejections"`
}

// Metadata provides context about the parse run.
type Metadata struct {
	// Sources lists the log files that were parsed.
	Sources []string `json:"sources"`

	// ParsedAt is when the parse was performed.
	ParsedAt time.Time `json:"parsed_at"`
}

// NewReport builds a Report from an ordered event sequence.
func NewReport(events []*event.Event, sources []string) *Report {
	report := &Report{
		Events: events,
		Metadata: Metadata{
			Sources:  sources,
			ParsedAt: time.Now().UTC(),
		},
	}

	report.Summary.TotalEvents = len(events)
	for _, ev := range events {
		switch {
		case ev.Type == event.TypeCommit:
			report.Summary.Commits++
		case ev.Type == event.TypePause:
			report.Summary.Pauses++
		case ev.IsHallucination():
			report.Summary.HallucinationRejections++
		}
	}

	return report
}

// Commits returns the COMMIT events in sequence order.
func (r *Report) Commits() []*event.Event {
	var commits []*event.Event
	for _, ev := range r.Events {
		if ev.Type == event.TypeCommit {
			commits = append(commits, ev)
		}
	}
	return commits
}

// HallucinationRejections returns the hallucination-flagged SEGMENT events
// in sequence order.
func (r *Report) HallucinationRejections() []*event.Event {
	var rejected []*event.Event
	for _, ev := range r.Events {
		if ev.IsHallucination() {
			rejected = append(rejected, ev)
		}
	}
	return rejected
}
