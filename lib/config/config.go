// Copyright 2026 The Chorus Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for the chorus CLI.
//
// Configuration is loaded from a single file specified by:
//   - the --config flag, or
//   - the CHORUS_CONFIG environment variable
//
// There are no fallbacks or automatic discovery. With neither set,
// the zero configuration applies. The conversion core itself takes
// no configuration beyond per-call options; this file only supplies
// CLI defaults.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chorusdoc/chorus/lib/engine/lww"
)

// Config holds CLI defaults.
type Config struct {
	// DefaultActor is used when a command is run without --actor.
	// Empty keeps the engine's behavior (a generated identity per
	// encode).
	DefaultActor string `yaml:"default_actor"`

	// Compression names the payload compression algorithm for
	// json-to-binary: "none", "lz4", or "zstd". Empty means the
	// engine default.
	Compression string `yaml:"compression"`
}

// Load reads configuration from flagPath, or from CHORUS_CONFIG
// when flagPath is empty, or returns the zero configuration when
// neither is set. Unknown fields and an unknown compression name
// are errors — a typo in a config file should fail loudly, not
// silently apply defaults.
func Load(flagPath string) (*Config, error) {
	path := flagPath
	if path == "" {
		path = os.Getenv("CHORUS_CONFIG")
	}
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Compression != "" {
		if _, err := lww.ParseCompression(cfg.Compression); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	return &cfg, nil
}
