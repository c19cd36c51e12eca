package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/adlib-audio/translog/internal/ui"
	"github.com/adlib-audio/translog/pkg/config"
	"github.com/adlib-audio/translog/pkg/output"
	"github.com/adlib-audio/translog/pkg/parser"
	"github.com/adlib-audio/translog/pkg/webhook"
)

// ParseOptions holds command-line options for the parse (root) command.
type ParseOptions struct {
	Full       bool
	JSON       bool
	Output     string
	ConfigPath string

	// Webhook options
	WebhookURL     string
	WebhookToken   string
	WebhookTrigger string
}

// NewParseCommand creates the root parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "translog <log-file> [log-file...]",
		Short: "Parse adlib debug logs into readable transcription events",
		Long: `Parse structured debug logs emitted by adlib (adlib -vv 2> debug.log)
and render them as a summary, a full timeline, or JSON Lines.

Recognized events:
  LIVE      provisional transcription updates
  COMMIT    finalized transcription segments
  PAUSE     final transcription passes after a pause
  SEGMENT   decoded segments (hallucination-flagged ones are listed)
  SEGMENTS  segment counts per pass
  SILENCE   silence-detector samples
  SPEECH    speech detection resetting the silence counter

Lines that carry no recognizable timestamp or tag are skipped silently.

Exit codes:
  0 - Parse completed (possibly with zero events)
  1 - Input file missing or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().BoolVar(&opts.Full, "full", false, "Show all events in a timeline")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON Lines")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output format (summary|full|json)")
	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Optional config file")

	// Webhook flags
	cmd.Flags().StringVar(&opts.WebhookURL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.WebhookToken, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.WebhookTrigger, "webhook-trigger", "on_events", "When to fire webhook (on_events|always|never)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := parser.ExpandGlobs(args)
	if err != nil {
		return fmt.Errorf("expanding log paths: %w", err)
	}

	// All inputs must exist before anything is written to stdout.
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("%s not found", file)
		}
	}

	extractor := parser.NewTimestampExtractor(
		cfg.TimestampFormat.CompiledPattern(),
		cfg.TimestampFormat.Layout,
	)

	// A single file keeps its line order; multiple files merge into one
	// chronological timeline.
	var source parser.EventSource
	if len(files) == 1 {
		source = parser.NewFileSource(files, extractor)
	} else {
		sources := make([]parser.EventSource, len(files))
		for i, file := range files {
			sources[i] = parser.NewFileSource([]string{file}, extractor)
		}
		source = parser.NewMergedSource(sources...)
	}
	defer source.Close()

	events, err := parser.ReadAll(ctx, source)
	if err != nil {
		return fmt.Errorf("parsing logs: %w", err)
	}

	report := output.NewReport(events, files)

	formatter, err := createFormatter(opts, cfg)
	if err != nil {
		return err
	}

	// Buffer stdout so a consumer closing the pipe early surfaces as a
	// write error here instead of killing the process mid-format.
	bw := bufio.NewWriter(os.Stdout)
	err = formatter.Format(ctx, report, bw)
	if err == nil {
		err = bw.Flush()
	}
	if err != nil {
		if errors.Is(err, syscall.EPIPE) {
			// Consumer went away (e.g. piped to head): normal shutdown.
			return nil
		}
		return fmt.Errorf("formatting output: %w", err)
	}

	// Send webhooks (errors logged but don't fail the run)
	sendWebhooks(ctx, cfg, opts, report)

	return nil
}

// createFormatter picks the output format. The boolean flags keep their
// original precedence (json over full); -o and the config default apply when
// neither boolean flag is given.
func createFormatter(opts *ParseOptions, cfg *config.Config) (output.Formatter, error) {
	format := cfg.Output.Format
	if opts.Output != "" {
		format = opts.Output
	}
	if opts.Full {
		format = "full"
	}
	if opts.JSON {
		format = "json"
	}

	formatOpts := output.FormatOptions{
		Color: shouldColor(cfg.Output.Color),
	}

	switch format {
	case "summary":
		return output.NewSummaryFormatter(formatOpts), nil
	case "full":
		return output.NewTimelineFormatter(formatOpts), nil
	case "json":
		return output.NewJSONLinesFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use summary, full, or json)", format)
	}
}

func shouldColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return ui.ShouldUseColor()
	}
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged to stderr but don't fail the run.
func sendWebhooks(ctx context.Context, cfg *config.Config, opts *ParseOptions, report *output.Report) {
	webhooks := collectWebhooks(cfg, opts)

	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.Summary.TotalEvents > 0) {
			continue
		}

		resp := client.Send(ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
		})

		name := wh.Name
		if name == "" {
			name = wh.URL
		}

		if resp.Success() {
			fmt.Fprintf(os.Stderr, "Webhook %s: sent (%d, %s)\n", name, resp.StatusCode, resp.Duration)
		} else {
			fmt.Fprintf(os.Stderr, "Webhook %s: failed (%v)\n", name, resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the CLI webhook.
func collectWebhooks(cfg *config.Config, opts *ParseOptions) []config.WebhookConfig {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)

	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.WebhookURL != "" {
		trigger := config.WebhookTrigger(opts.WebhookTrigger)
		if trigger == "" {
			trigger = config.WebhookTriggerOnEvents
		}

		webhooks = append(webhooks, config.WebhookConfig{
			Name:    "cli",
			URL:     opts.WebhookURL,
			Token:   opts.WebhookToken,
			Trigger: trigger,
			Timeout: config.DefaultWebhookTimeout,
		})
	}

	return webhooks
}

// shouldFireWebhook determines if a webhook should fire for this run.
func shouldFireWebhook(trigger config.WebhookTrigger, hasEvents bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	case config.WebhookTriggerOnEvents:
		return hasEvents
	default:
		return hasEvents
	}
}
