package output

import (
	"context"
	"fmt"
	"io"

	"github.com/adlib-audio/translog/pkg/event"
)

// TimelineFormatter renders every event on its own line with millisecond
// local timestamps. SEGMENTS events carry no timeline text of their own and
// produce no line; they still count toward totals and appear in JSON output.
type TimelineFormatter struct {
	opts FormatOptions
}

// NewTimelineFormatter creates a timeline formatter with the given options.
func NewTimelineFormatter(opts FormatOptions) *TimelineFormatter {
	return &TimelineFormatter{opts: opts}
}

// Name returns the format name.
func (f *TimelineFormatter) Name() string {
	return "full"
}

// Format renders the report as a full event timeline.
func (f *TimelineFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	for _, ev := range report.Events {
		timeStr := ev.Timestamp.Local().Format("15:04:05.000")

		switch d := ev.Data.(type) {
		case nil:
			if ev.Type == event.TypeLive {
				fmt.Fprintf(w, "[%s] LIVE: %s\n", timeStr, ev.Text)
			}
		case *event.CommitData:
			fmt.Fprintf(w, "[%s] COMMIT (%d chars): %s\n", timeStr, d.Chars, ev.Text)
		case *event.PauseData:
			fmt.Fprintf(w, "[%s] PAUSE: %d samples\n", timeStr, d.Samples)
		case *event.SegmentData:
			marker := ""
			if d.Hallucination {
				marker = " [HALLUCINATION]"
			}
			fmt.Fprintf(w, "[%s] SEGMENT%s: %s\n", timeStr, marker, ev.Text)
		case *event.SilenceData:
			fmt.Fprintf(w, "[%s] SILENCE: %d/%d\n", timeStr, d.Count, d.MaxCount)
		case *event.SpeechData:
			fmt.Fprintf(w, "[%s] SPEECH detected\n", timeStr)
		}
	}

	return nil
}
