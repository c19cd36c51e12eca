// Package config provides optional configuration loading for translog.
// Everything has a built-in default; a config file is only needed to follow
// producer format drift or to wire up webhooks.
package config

import (
	"regexp"
	"time"
)

// Config is the root configuration structure loaded from YAML, with
// environment variable overrides applied on top.
type Config struct {
	TimestampFormat TimestampConfig `yaml:"timestamp_format,omitempty"`
	Output          OutputConfig    `yaml:"output,omitempty"`
	Webhooks        []WebhookConfig `yaml:"webhooks,omitempty"`
}

// TimestampConfig defines how to extract timestamps from log lines.
type TimestampConfig struct {
	// Pattern is a regex matching the line prefix, with the timestamp token
	// as the first capture group.
	Pattern string `yaml:"pattern" env:"TRANSLOG_TIMESTAMP_PATTERN"`

	// Layout is the Go time layout string for parsing the captured token.
	Layout string `yaml:"layout" env:"TRANSLOG_TIMESTAMP_LAYOUT"`

	// compiledPattern is populated during validation.
	compiledPattern *regexp.Regexp
}

// CompiledPattern returns the pre-compiled prefix regex.
func (t *TimestampConfig) CompiledPattern() *regexp.Regexp {
	return t.compiledPattern
}

// OutputConfig sets rendering defaults, overridable by CLI flags.
type OutputConfig struct {
	// Format is the default output format (summary, full, json).
	Format string `yaml:"format,omitempty" env:"TRANSLOG_OUTPUT"`

	// Color controls ANSI styling (auto, always, never).
	Color string `yaml:"color,omitempty" env:"TRANSLOG_COLOR"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnEvents fires only when at least one event was parsed
	// (default).
	WebhookTriggerOnEvents WebhookTrigger = "on_events"
	// WebhookTriggerAlways fires after every run.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint for exporting parse reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token, supports ${VAR} expansion.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires. Defaults to "on_events".
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the HTTP request timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`
}
