package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"runtui/sdk/runfeed"
)

// Config holds the client settings. Precedence when resolving: command-line
// flag, then environment, then config file, then defaults.
type Config struct {
	Backend       string `yaml:"backend"`
	Transport     string `yaml:"transport"` // "sse" or "ws"
	WindowSize    int    `yaml:"window_size"`
	ShowAllEvents bool   `yaml:"show_all_events"`
	LogLevel      string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Backend:    "http://localhost:8000",
		Transport:  "sse",
		WindowSize: runfeed.DefaultWindowSize,
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".runtui.yaml")
}

// Load reads a yaml config file over the defaults. A missing file is not an
// error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg.normalized()
}

// ApplyEnv overlays environment variables onto the config.
func (c Config) ApplyEnv() Config {
	if v := os.Getenv("RUNTUI_BACKEND"); v != "" {
		c.Backend = v
	}
	if v := os.Getenv("RUNTUI_TRANSPORT"); v != "" {
		c.Transport = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return c
}

func (c Config) normalized() (Config, error) {
	switch c.Transport {
	case "", "sse", "ws":
	default:
		return c, fmt.Errorf("unknown transport %q (want sse or ws)", c.Transport)
	}
	if c.Transport == "" {
		c.Transport = "sse"
	}
	if c.WindowSize <= 0 {
		c.WindowSize = runfeed.DefaultWindowSize
	}
	return c, nil
}
