// Package event defines the typed records produced by parsing adlib
// transcription debug logs.
package event

import (
	"encoding/json"
	"time"
)

// Type identifies the kind of transcription event a log line describes.
type Type string

const (
	// TypeLive is a provisional (not yet committed) transcription update.
	TypeLive Type = "LIVE"

	// TypeCommit is a finalized transcription segment accepted upstream.
	TypeCommit Type = "COMMIT"

	// TypePause marks the start of a final transcription pass after a pause.
	TypePause Type = "PAUSE"

	// TypeSegment is a single decoded segment, possibly flagged as a
	// hallucination by the producer.
	TypeSegment Type = "SEGMENT"

	// TypeSegments reports how many segments a transcription pass produced.
	TypeSegments Type = "SEGMENTS"

	// TypeSilence is a silence-detector sample.
	TypeSilence Type = "SILENCE"

	// TypeSpeech marks speech detection resetting the silence counter.
	TypeSpeech Type = "SPEECH"
)

// Data is the per-type payload carried by an Event. The concrete types below
// form a closed set: each event type has exactly one payload shape (LIVE has
// none), and every field of that shape is always populated.
type Data interface {
	eventData()
}

// CommitData accompanies COMMIT events.
type CommitData struct {
	Chars int `json:"chars"`
}

// PauseData accompanies PAUSE events.
type PauseData struct {
	Samples        int `json:"samples"`
	TrimmedSamples int `json:"trimmed_samples"`
}

// SegmentData accompanies SEGMENT events.
type SegmentData struct {
	Index         int  `json:"index"`
	Empty         bool `json:"empty"`
	Hallucination bool `json:"hallucination"`
}

// SegmentsData accompanies SEGMENTS events.
type SegmentsData struct {
	NumSegments int `json:"num_segments"`
}

// SilenceData accompanies SILENCE events.
type SilenceData struct {
	Count     int     `json:"count"`
	MaxCount  int     `json:"max_count"`
	RMS       float64 `json:"rms"`
	Threshold float64 `json:"threshold"`
}

// SpeechData accompanies SPEECH events.
type SpeechData struct {
	ResetFrom int `json:"reset_from"`
}

func (*CommitData) eventData()   {}
func (*PauseData) eventData()    {}
func (*SegmentData) eventData()  {}
func (*SegmentsData) eventData() {}
func (*SilenceData) eventData()  {}
func (*SpeechData) eventData()   {}

// Event is a single parsed log line. Events are immutable once constructed
// and ordered by their position in the source file.
type Event struct {
	// Timestamp is the log line's timestamp, normalized to UTC.
	Timestamp time.Time

	// Type is the event discriminant.
	Type Type

	// Text is the human-readable payload. Non-empty only for LIVE, COMMIT,
	// and SEGMENT events.
	Text string

	// Data holds the type-specific fields, nil for LIVE events.
	Data Data
}

// header is the common prefix of every JSON-encoded event.
type header struct {
	Timestamp string `json:"timestamp"`
	EventType Type   `json:"event_type"`
	Text      string `json:"text,omitempty"`
}

// MarshalJSON renders the event as a single flat JSON object: the common
// fields followed by the payload fields inlined at the top level.
func (e *Event) MarshalJSON() ([]byte, error) {
	h := header{
		Timestamp: e.Timestamp.UTC().Format(time.RFC3339Nano),
		EventType: e.Type,
		Text:      e.Text,
	}

	switch d := e.Data.(type) {
	case *CommitData:
		return json.Marshal(struct {
			header
			*CommitData
		}{h, d})
	case *PauseData:
		return json.Marshal(struct {
			header
			*PauseData
		}{h, d})
	case *SegmentData:
		return json.Marshal(struct {
			header
			*SegmentData
		}{h, d})
	case *SegmentsData:
		return json.Marshal(struct {
			header
			*SegmentsData
		}{h, d})
	case *SilenceData:
		return json.Marshal(struct {
			header
			*SilenceData
		}{h, d})
	case *SpeechData:
		return json.Marshal(struct {
			header
			*SpeechData
		}{h, d})
	default:
		return json.Marshal(h)
	}
}

// IsHallucination reports whether the event is a SEGMENT flagged as a
// hallucination by the producer.
func (e *Event) IsHallucination() bool {
	d, ok := e.Data.(*SegmentData)
	return ok && d.Hallucination
}
