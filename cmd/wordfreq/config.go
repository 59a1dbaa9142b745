package main

import (
	"github.com/kbukum/lazyflow/config"
	"github.com/kbukum/lazyflow/observability"
	"github.com/kbukum/lazyflow/resilience"
	"github.com/kbukum/lazyflow/validation"
	"github.com/kbukum/lazyflow/version"
)

const appName = "wordfreq"

// defaultDelimiters separate words in the input files.
const defaultDelimiters = " \t\r\n,.;:!?\"'()[]{}<>"

// Config is the wordfreq configuration file layout.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Count                CountConfig          `yaml:"count" mapstructure:"count"`
	Observability        observability.Config `yaml:"observability" mapstructure:"observability"`
}

// CountConfig controls how words are read and counted.
type CountConfig struct {
	Extensions []string `yaml:"extensions" mapstructure:"extensions" validate:"dive,ext"`
	Delimiters string   `yaml:"delimiters" mapstructure:"delimiters" validate:"required"`
	Recursive  bool     `yaml:"recursive" mapstructure:"recursive"`
	FoldCase   bool     `yaml:"fold_case" mapstructure:"fold_case"`
	MinLength  int      `yaml:"min_length" mapstructure:"min_length" validate:"gte=0"`
	Top        int      `yaml:"top" mapstructure:"top" validate:"gte=0"`
	Sort       string   `yaml:"sort" mapstructure:"sort" validate:"oneof=first count word"`
	Index      string   `yaml:"index" mapstructure:"index" validate:"oneof=hashed ordered linear"`
	Container  string   `yaml:"container" mapstructure:"container" validate:"oneof=slice list"`

	// Open retries file opens that fail transiently.
	Open resilience.RetryConfig `yaml:"open" mapstructure:"open"`
}

// loaderDefaults are the values used when neither the file nor the
// environment sets a key. Booleans default to true here because a zero
// value cannot be told apart from an explicit false after unmarshaling.
func loaderDefaults() []config.LoaderOption {
	return []config.LoaderOption{
		config.WithDefault("name", appName),
		config.WithDefault("environment", "production"),
		config.WithDefault("logging.level", "warn"),
		config.WithDefault("count.recursive", true),
		config.WithDefault("count.fold_case", true),
	}
}

// loadConfig reads the configuration from path, or from the standard
// locations when path is empty.
func loadConfig(path string) (*Config, error) {
	opts := loaderDefaults()
	if path != "" {
		opts = append(opts, config.WithConfigFile(path))
	}
	var cfg Config
	if err := config.LoadConfig(appName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = appName
	}
	if c.Version == "" {
		c.Version = version.Get().Short()
	}
	c.ServiceConfig.ApplyDefaults()

	if c.Count.Delimiters == "" {
		c.Count.Delimiters = defaultDelimiters
	}
	if c.Count.Sort == "" {
		c.Count.Sort = "count"
	}
	if c.Count.Index == "" {
		c.Count.Index = "hashed"
	}
	if c.Count.Container == "" {
		c.Count.Container = "slice"
	}
	c.Count.Open.ApplyDefaults()
	if c.Observability.SampleRate == 0 {
		c.Observability.SampleRate = 1
	}
}

func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	return validation.Validate(c)
}
