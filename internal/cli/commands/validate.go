package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adlib-audio/translog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a translog configuration file without parsing any logs.

Checks:
  - YAML syntax
  - Timestamp pattern validity (regex with a capture group)
  - Output format and color mode values
  - Webhook URL and trigger values`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fmt.Printf("Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Printf("\nConfiguration valid!\n")
	fmt.Printf("  Timestamp pattern: %s\n", cfg.TimestampFormat.Pattern)
	fmt.Printf("  Timestamp layout:  %s\n", cfg.TimestampFormat.Layout)
	fmt.Printf("  Output format:     %s\n", cfg.Output.Format)
	fmt.Printf("  Color mode:        %s\n", cfg.Output.Color)

	if len(cfg.Webhooks) > 0 {
		fmt.Printf("\nWebhooks:\n")
		for i, wh := range cfg.Webhooks {
			name := wh.Name
			if name == "" {
				name = wh.URL
			}
			fmt.Printf("  %d. %s (%s, timeout %s)\n", i+1, name, wh.Trigger, wh.Timeout)
		}
	}

	return nil
}
