package hobbes

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ReplConfig holds REPL presentation settings, loaded from an optional
// ~/.hobbes.toml and overridable through HOBBES_* environment variables.
type ReplConfig struct {
	Prompt string `toml:"prompt"`
	Color  bool   `toml:"color"`
}

// DefaultReplConfig returns the built-in settings.
func DefaultReplConfig() ReplConfig {
	return ReplConfig{
		Prompt: "hobbes> ",
		Color:  true,
	}
}

// LoadReplConfig reads ~/.hobbes.toml when present, then applies
// environment overrides. A missing file is not an error; a malformed one is.
func LoadReplConfig() (ReplConfig, error) {
	cfg := DefaultReplConfig()

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".hobbes.toml")
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return cfg, err
			}
		}
	}

	if prompt := os.Getenv("HOBBES_PROMPT"); prompt != "" {
		cfg.Prompt = prompt
	}
	if color := os.Getenv("HOBBES_COLOR"); color != "" {
		cfg.Color = color != "0" && color != "false"
	}

	return cfg, nil
}
