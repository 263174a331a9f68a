package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all predterm configuration.
type Config struct {
	Termination TerminationConfig `yaml:"termination"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// TerminationConfig names the background declarations the nested-relation
// synthesis depends on.
type TerminationConfig struct {
	InstanceDomain         string `yaml:"instance_domain"`
	NestedFunction         string `yaml:"nested_function"`
	InstanceFunctionPrefix string `yaml:"instance_function_prefix"`

	// Keep the original unfold statement when a background declaration is
	// missing. When false the unfold is replaced by an empty block.
	KeepUnfoldWhenDegraded bool `yaml:"keep_unfold_when_degraded"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // console, json
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Termination: TerminationConfig{
			InstanceDomain:         "PredicateInstance",
			NestedFunction:         "nestedPredicates",
			InstanceFunctionPrefix: "PI_",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. Fields missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML configuration on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pass cannot run with.
func (c *Config) Validate() error {
	t := c.Termination
	if t.InstanceDomain == "" {
		return fmt.Errorf("termination.instance_domain must not be empty")
	}
	if t.NestedFunction == "" {
		return fmt.Errorf("termination.nested_function must not be empty")
	}
	if t.InstanceFunctionPrefix == "" {
		return fmt.Errorf("termination.instance_function_prefix must not be empty")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unknown level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q", c.Logging.Format)
	}
	return nil
}
