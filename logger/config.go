package logger

import (
	"slices"
	"strings"

	"github.com/kbukum/lazyflow/errors"
)

// Config contains logging configuration.
type Config struct {
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	Level       string `yaml:"level" mapstructure:"level"`
	Format      string `yaml:"format" mapstructure:"format"`
	Output      string `yaml:"output" mapstructure:"output"`
	NoColor     bool   `yaml:"no_color" mapstructure:"no_color"`
	Timestamp   bool   `yaml:"timestamp" mapstructure:"timestamp"`
	Caller      bool   `yaml:"caller" mapstructure:"caller"`
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validFormats = []string{"json", "console", "pretty", "text"}
	validOutputs = []string{"stdout", "stderr"}
)

// ApplyDefaults applies default values to logging configuration.
func (c *Config) ApplyDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "console"
	}
	// Stdout carries pipeline output, so logs go to stderr unless asked otherwise.
	if c.Output == "" {
		c.Output = "stderr"
	}
	c.Timestamp = true
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	if !slices.Contains(validLevels, c.Level) {
		return errors.InvalidInput("logging.level", "must be one of "+join(validLevels)+" (got: "+c.Level+")")
	}
	if !slices.Contains(validFormats, c.Format) {
		return errors.InvalidInput("logging.format", "must be one of "+join(validFormats)+" (got: "+c.Format+")")
	}
	if c.Output != "" && !slices.Contains(validOutputs, c.Output) {
		return errors.InvalidInput("logging.output", "must be one of "+join(validOutputs)+" (got: "+c.Output+")")
	}
	return nil
}

func join(values []string) string { return "[" + strings.Join(values, " ") + "]" }
