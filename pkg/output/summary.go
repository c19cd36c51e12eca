package output

import (
	"context"
	"fmt"
	"io"

	"github.com/adlib-audio/translog/pkg/event"
)

// SummaryFormatter renders aggregate counts plus the committed segments and
// hallucination rejections. This is the default format.
type SummaryFormatter struct {
	opts FormatOptions
}

// NewSummaryFormatter creates a summary formatter with the given options.
func NewSummaryFormatter(opts FormatOptions) *SummaryFormatter {
	return &SummaryFormatter{opts: opts}
}

// Name returns the format name.
func (f *SummaryFormatter) Name() string {
	return "summary"
}

// Format renders the report as a concise summary.
func (f *SummaryFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	fmt.Fprintln(w, f.header("=== Log Summary ==="))
	fmt.Fprintf(w, "Total events: %d\n", report.Summary.TotalEvents)
	fmt.Fprintf(w, "Commits: %d\n", report.Summary.Commits)
	fmt.Fprintf(w, "Pauses: %d\n", report.Summary.Pauses)
	fmt.Fprintf(w, "Hallucination rejections: %d\n", report.Summary.HallucinationRejections)
	fmt.Fprintln(w)

	fmt.Fprintln(w, f.header("=== Committed Segments ==="))
	for i, commit := range report.Commits() {
		fmt.Fprintf(w, "%d. [%s] (%d chars)\n",
			i+1,
			commit.Timestamp.Local().Format("15:04:05"),
			commitChars(commit))
		fmt.Fprintf(w, "   %s\n", commit.Text)
		fmt.Fprintln(w)
	}

	rejected := report.HallucinationRejections()
	if len(rejected) > 0 {
		fmt.Fprintln(w, f.header("=== Hallucination Rejections ==="))
		for _, ev := range rejected {
			fmt.Fprintf(w, "[%s] '%s'\n", ev.Timestamp.Local().Format("15:04:05"), ev.Text)
		}
	}

	return nil
}

// header applies ANSI bold when color is enabled.
func (f *SummaryFormatter) header(s string) string {
	if f.opts.Color {
		return "\x1b[1m" + s + "\x1b[0m"
	}
	return s
}

func commitChars(ev *event.Event) int {
	if d, ok := ev.Data.(*event.CommitData); ok {
		return d.Chars
	}
	return 0
}
