/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package engine

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/strfmt/format"
	"github.com/sethvargo/go-envconfig"
)

// Config configures an Engine. It is usually read from the environment
// with LoadConfig.
type Config struct {
	// MaxInstructions is the capacity of every compiled program.
	MaxInstructions int `env:"STRFMT_MAX_INSTRUCTIONS,default=32"`
	// CacheSize is the number of compiled programs kept. 0 disables caching.
	CacheSize int `env:"STRFMT_CACHE_SIZE,default=256"`
	// Strict compiles templates even when no argument is supplied, so a
	// template with directives fails instead of being returned as is.
	Strict bool `env:"STRFMT_STRICT,default=false"`
}

// DefaultConfig returns the configuration used when no variable is set.
func DefaultConfig() Config {
	return Config{
		MaxInstructions: format.MaxInstructions,
		CacheSize:       256,
	}
}

// Validate checks that the configuration has usable values.
func (c Config) Validate() error {
	if c.MaxInstructions < 1 {
		return errors.New("max instructions must be positive")
	}
	if c.CacheSize < 0 {
		return errors.New("cache size cannot be negative")
	}
	return nil
}

// LoadConfig reads the configuration from the process environment.
func LoadConfig(ctx context.Context) (Config, error) {
	return LoadConfigFrom(ctx, envconfig.OsLookuper())
}

// LoadConfigFrom reads the configuration through l and validates it.
func LoadConfigFrom(ctx context.Context, l envconfig.Lookuper) (Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return Config{}, fmt.Errorf("processing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
