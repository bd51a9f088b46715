// Package config loads server configuration from an optional TOML file over
// built-in defaults. The planner API key stays in the environment; the file
// only names the variable to read.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultPath = "liftcoach.toml"

type Config struct {
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
	Coach  CoachConfig  `toml:"coach"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

type CoachConfig struct {
	Model       string `toml:"model"`
	APIKeyEnv   string `toml:"api_key_env"`
	WindowLimit int    `toml:"window_limit"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
		Coach: CoachConfig{
			Model:       "gpt-3.5-turbo",
			APIKeyEnv:   "OPENAI_API_KEY",
			WindowLimit: 24,
		},
	}
}

// Load reads path, or liftcoach.toml when path is empty. A missing default
// file just yields the defaults; a named file must exist.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	p := path
	if p == "" {
		p = defaultPath
		if _, err := os.Stat(p); err != nil {
			return cfg, nil
		}
	}
	if _, err := toml.DecodeFile(p, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", p, err)
	}
	return cfg, nil
}

// APIKey resolves the planner key from the configured environment variable.
func (c CoachConfig) APIKey() string {
	if c.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.APIKeyEnv)
}
