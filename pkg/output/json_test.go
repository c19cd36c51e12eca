package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/adlib-audio/translog/pkg/event"
)

func TestJSONLinesFormatter_OneObjectPerLine(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []*event.Event{
		{Timestamp: ts, Type: event.TypeLive, Text: "hi"},
		{Timestamp: ts, Type: event.TypeCommit, Text: "hi there", Data: &event.CommitData{Chars: 8}},
	}

	var buf bytes.Buffer
	f := NewJSONLinesFormatter(FormatOptions{})
	if err := f.Format(context.Background(), NewReport(events, nil), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		lines++
		var obj map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", lines, err)
		}
	}
	if lines != 2 {
		t.Errorf("Got %d lines, want 2", lines)
	}
}

// Round-trip: rendering to JSON Lines and reparsing recovers the same
// event_type, text, and extra fields with identical values and types.
func TestJSONLinesFormatter_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 1, 10, 0, 0, 123000000, time.UTC)
	events := []*event.Event{
		{Timestamp: ts, Type: event.TypeLive, Text: "partial"},
		{Timestamp: ts, Type: event.TypeCommit, Text: "hello world", Data: &event.CommitData{Chars: 11}},
		{Timestamp: ts, Type: event.TypePause, Data: &event.PauseData{Samples: 8000, TrimmedSamples: 400}},
		{Timestamp: ts, Type: event.TypeSegment, Text: "ok", Data: &event.SegmentData{Index: 1, Empty: false, Hallucination: true}},
		{Timestamp: ts, Type: event.TypeSegments, Data: &event.SegmentsData{NumSegments: 2}},
		{Timestamp: ts, Type: event.TypeSilence, Data: &event.SilenceData{Count: 3, MaxCount: 10, RMS: 0.02, Threshold: 0.05}},
		{Timestamp: ts, Type: event.TypeSpeech, Data: &event.SpeechData{ResetFrom: 4}},
	}

	var buf bytes.Buffer
	f := NewJSONLinesFormatter(FormatOptions{})
	if err := f.Format(context.Background(), NewReport(events, nil), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := []map[string]interface{}{
		{"event_type": "LIVE", "text": "partial"},
		{"event_type": "COMMIT", "text": "hello world", "chars": float64(11)},
		{"event_type": "PAUSE", "samples": float64(8000), "trimmed_samples": float64(400)},
		{"event_type": "SEGMENT", "text": "ok", "index": float64(1), "empty": false, "hallucination": true},
		{"event_type": "SEGMENTS", "num_segments": float64(2)},
		{"event_type": "SILENCE", "count": float64(3), "max_count": float64(10), "rms": 0.02, "threshold": 0.05},
		{"event_type": "SPEECH", "reset_from": float64(4)},
	}

	scanner := bufio.NewScanner(&buf)
	for i := 0; scanner.Scan(); i++ {
		var obj map[string]interface{}
		if err := json.Unmarshal(scanner.Bytes(), &obj); err != nil {
			t.Fatalf("Line %d: %v", i+1, err)
		}

		if obj["timestamp"] != "2024-01-01T10:00:00.123Z" {
			t.Errorf("Line %d timestamp = %v", i+1, obj["timestamp"])
		}

		for k, v := range want[i] {
			if obj[k] != v {
				t.Errorf("Line %d key %q = %v (%T), want %v (%T)", i+1, k, obj[k], obj[k], v, v)
			}
		}

		// No stray keys beyond timestamp + expected fields.
		if len(obj) != len(want[i])+1 {
			t.Errorf("Line %d has %d keys, want %d: %v", i+1, len(obj), len(want[i])+1, obj)
		}
	}
}
