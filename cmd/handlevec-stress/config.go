package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

// Config holds the stress run settings.
type Config struct {
	Duration time.Duration
	Elements int
	Seed     uint64
	GenLimit int32
	Verify   bool
	Out      string
	Verbose  bool
}

// fileConfig mirrors Config for the JSONC file. Nil fields were not set.
type fileConfig struct {
	Duration *string `json:"duration"`
	Elements *int    `json:"elements"`
	Seed     *uint64 `json:"seed"`
	GenLimit *int32  `json:"gen_limit"` //nolint:tagliatelle // snake_case for config file
	Verify   *bool   `json:"verify"`
	Out      *string `json:"out"`
	Verbose  *bool   `json:"verbose"`
}

func DefaultConfig() Config {
	return Config{
		Duration: 10 * time.Second,
		Elements: 10000,
		Seed:     uint64(time.Now().UnixNano()),
	}
}

// LoadConfigFile reads a JSONC file and applies the keys it sets on top of cfg.
func LoadConfigFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is intentionally user-controlled
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	return parseConfig(data, cfg)
}

func parseConfig(data []byte, cfg Config) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid JSONC")
	}

	var file fileConfig
	if err := json.Unmarshal(standardized, &file); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}

	if file.Duration != nil {
		d, err := time.ParseDuration(*file.Duration)
		if err != nil {
			return Config{}, errors.Wrap(err, "invalid duration")
		}
		cfg.Duration = d
	}
	if file.Elements != nil {
		cfg.Elements = *file.Elements
	}
	if file.Seed != nil {
		cfg.Seed = *file.Seed
	}
	if file.GenLimit != nil {
		cfg.GenLimit = *file.GenLimit
	}
	if file.Verify != nil {
		cfg.Verify = *file.Verify
	}
	if file.Out != nil {
		cfg.Out = *file.Out
	}
	if file.Verbose != nil {
		cfg.Verbose = *file.Verbose
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Duration <= 0:
		return errors.Errorf("duration must be positive, got %s", c.Duration)
	case c.Elements < 1:
		return errors.Errorf("elements must be at least 1, got %d", c.Elements)
	case c.GenLimit < 0:
		return errors.Errorf("gen-limit must not be negative, got %d", c.GenLimit)
	}
	return nil
}
