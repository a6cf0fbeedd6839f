package config

import (
	"fmt"
	"log/slog"
	"strings"
)

const defaultMetricsPrefix = "ballot"

// LogFormat selects the slog handler.
type LogFormat string

const (
	// LogFormatJSON emits one JSON object per record.
	LogFormatJSON LogFormat = "json"
	// LogFormatText emits logfmt-style key=value records.
	LogFormatText LogFormat = "text"
)

// UnmarshalText implements encoding.TextUnmarshaler for LogFormat.
func (f *LogFormat) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch LogFormat(v) {
	case LogFormatJSON, LogFormatText:
		*f = LogFormat(v)
		return nil
	default:
		return fmt.Errorf("invalid LogFormat: %q (valid options: json, text)", v)
	}
}

// ObservabilityConfig groups configuration that controls logging and metrics.
type ObservabilityConfig struct {
	Logging ObservabilityLoggingConfig
	Metrics ObservabilityMetricsConfig
}

// Sanitize applies guardrails to observability sub-configs.
func (c *ObservabilityConfig) Sanitize() {
	c.Logging.Sanitize()
	c.Metrics.Sanitize()
}

// ObservabilityLoggingConfig controls the structured logger.
type ObservabilityLoggingConfig struct {
	Level  slog.Level `env:"LOG_LEVEL"  envDefault:"warn"`
	Format LogFormat  `env:"LOG_FORMAT" envDefault:"text"`
}

// Sanitize defaults an unset format.
func (c *ObservabilityLoggingConfig) Sanitize() {
	if c.Format == "" {
		c.Format = LogFormatText
	}
}

// ObservabilityMetricsConfig controls emission of metrics to external sinks such as StatsD.
type ObservabilityMetricsConfig struct {
	Enabled       bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
	Prefix        string `env:"OBSERVABILITY_METRICS_PREFIX"         envDefault:"ballot"`
}

// Sanitize normalises derived fields and enforces safe defaults.
func (c *ObservabilityMetricsConfig) Sanitize() {
	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.Enabled = false
	}
	if c.Prefix = strings.TrimSpace(c.Prefix); c.Prefix == "" {
		c.Prefix = defaultMetricsPrefix
	}
}

// IsEnabled returns true when metrics emission is active after sanitisation.
func (c *ObservabilityMetricsConfig) IsEnabled() bool {
	return c.Enabled && c.StatsdAddress != ""
}
