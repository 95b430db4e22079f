// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Flip FlipConfig `toml:"flip"`
	Log  LogConfig  `toml:"log"`
}

// FlipConfig maps flip-related settings. Nil fields are unset.
type FlipConfig struct {
	Coins      *int    `toml:"coins"`
	CoinType   *string `toml:"coin-type"`
	Heads      *string `toml:"heads"`
	Tails      *string `toml:"tails"`
	RevealMs   *int    `toml:"reveal-ms"`
	MaxHistory *int    `toml:"max-history"`
	Muted      *bool   `toml:"muted"`
	Dark       *bool   `toml:"dark"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Level *string `toml:"level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
