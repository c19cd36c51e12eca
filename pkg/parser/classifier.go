package parser

import (
	"regexp"
	"strconv"
	"time"

	"github.com/adlib-audio/translog/pkg/event"
)

// One pattern per event type. Each targets a distinct bracketed tag, so a
// line matches at most one pattern and evaluation order is immaterial.
var (
	livePattern     = regexp.MustCompile(`\[LIVE\] '(.*)'$`)
	commitPattern   = regexp.MustCompile(`\[COMMIT\] '(.*)' \((\d+) chars\)$`)
	pausePattern    = regexp.MustCompile(`\[PAUSE\] Running final transcription on (\d+) samples \(trimmed (\d+) silence samples\)`)
	segmentPattern  = regexp.MustCompile(`\[SEGMENT (\d+)\] text='(.*)', empty=(true|false), hallucination=(true|false)`)
	segmentsPattern = regexp.MustCompile(`\[SEGMENTS\] num_segments=(\d+)`)
	silencePattern  = regexp.MustCompile(`\[SILENCE\] count=(\d+)/(\d+), rms=([\d.]+), threshold=([\d.]+)`)
	speechPattern   = regexp.MustCompile(`\[SPEECH\] Detected, resetting silence count from (\d+)`)
)

// Classifier matches line content against adlib's fixed set of tagged line
// formats and extracts the typed fields for each.
//
// Field parse failures (an integer that overflows, a malformed float) cause
// the whole line to be treated as "no match" and skipped; the classifier
// never fails hard on input content.
type Classifier struct{}

// NewClassifier creates a line classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify produces the event described by a line, given the timestamp
// already extracted from it. Returns nil, false when no pattern matches.
func (c *Classifier) Classify(ts time.Time, line string) (*event.Event, bool) {
	if m := livePattern.FindStringSubmatch(line); m != nil {
		return &event.Event{Timestamp: ts, Type: event.TypeLive, Text: m[1]}, true
	}

	if m := commitPattern.FindStringSubmatch(line); m != nil {
		chars, ok := atoi(m[2])
		if !ok {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypeCommit,
			Text:      m[1],
			Data:      &event.CommitData{Chars: chars},
		}, true
	}

	if m := pausePattern.FindStringSubmatch(line); m != nil {
		samples, ok1 := atoi(m[1])
		trimmed, ok2 := atoi(m[2])
		if !ok1 || !ok2 {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypePause,
			Data:      &event.PauseData{Samples: samples, TrimmedSamples: trimmed},
		}, true
	}

	if m := segmentPattern.FindStringSubmatch(line); m != nil {
		index, ok := atoi(m[1])
		if !ok {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypeSegment,
			Text:      m[2],
			Data: &event.SegmentData{
				Index:         index,
				Empty:         parseBool(m[3]),
				Hallucination: parseBool(m[4]),
			},
		}, true
	}

	if m := segmentsPattern.FindStringSubmatch(line); m != nil {
		n, ok := atoi(m[1])
		if !ok {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypeSegments,
			Data:      &event.SegmentsData{NumSegments: n},
		}, true
	}

	if m := silencePattern.FindStringSubmatch(line); m != nil {
		count, ok1 := atoi(m[1])
		maxCount, ok2 := atoi(m[2])
		rms, ok3 := atof(m[3])
		threshold, ok4 := atof(m[4])
		if !ok1 || !ok2 || !ok3 || !ok4 {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypeSilence,
			Data: &event.SilenceData{
				Count:     count,
				MaxCount:  maxCount,
				RMS:       rms,
				Threshold: threshold,
			},
		}, true
	}

	if m := speechPattern.FindStringSubmatch(line); m != nil {
		n, ok := atoi(m[1])
		if !ok {
			return nil, false
		}
		return &event.Event{
			Timestamp: ts,
			Type:      event.TypeSpeech,
			Data:      &event.SpeechData{ResetFrom: n},
		}, true
	}

	return nil, false
}

// parseBool treats the literal token "true" as true and anything else,
// including malformed tokens, as false. This mirrors the producer's own
// tooling; do not tighten it without confirming intent upstream.
func parseBool(tok string) bool {
	return tok == "true"
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func atof(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}
