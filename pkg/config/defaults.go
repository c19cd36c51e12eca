package config

import (
	"time"

	"github.com/adlib-audio/translog/pkg/parser"
)

// Default values for configuration.
const (
	DefaultOutputFormat   = "summary"
	DefaultColorMode      = "auto"
	DefaultWebhookTimeout = 10 * time.Second
)

// Default returns a configuration matching adlib's debug-log format.
func Default() *Config {
	return &Config{
		TimestampFormat: TimestampConfig{
			Pattern: parser.DefaultTimestampPattern,
			Layout:  parser.DefaultTimestampLayout,
		},
		Output: OutputConfig{
			Format: DefaultOutputFormat,
			Color:  DefaultColorMode,
		},
	}
}
