package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GRIDLENS_CONFIG is set
//  3. env (prefix GRIDLENS_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("GRIDLENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: GRIDLENS_ADDR, GRIDLENS_SOURCE_PATH, ...
	// Map env keys like GRIDLENS_SOURCE_PATH -> source_path (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("GRIDLENS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "gridlens_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot start with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.SourcePath == "":
		return fmt.Errorf("%w: source_path must not be empty", ErrInvalidConfig)
	case c.NameField == "":
		return fmt.Errorf("%w: name_field must not be empty", ErrInvalidConfig)
	case c.StateField == "":
		return fmt.Errorf("%w: state_field must not be empty", ErrInvalidConfig)
	case len(c.Metrics) == 0:
		return fmt.Errorf("%w: at least one metric is required", ErrInvalidConfig)
	case len(c.States) == 0:
		return fmt.Errorf("%w: at least one state code is required", ErrInvalidConfig)
	case c.MaxTopLimit < 1:
		return fmt.Errorf("%w: max_top_limit must be positive", ErrInvalidConfig)
	}

	found := false
	for _, m := range c.Metrics {
		if m == c.DefaultMetric {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: default_metric %q is not in metrics", ErrInvalidConfig, c.DefaultMetric)
	}

	for _, s := range c.States {
		if len(s) != 2 {
			return fmt.Errorf("%w: state code %q is not two letters", ErrInvalidConfig, s)
		}
	}
	return nil
}
