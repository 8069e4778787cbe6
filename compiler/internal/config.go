package internal

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Symbols []string      `yaml:"symbols"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
	Output  OutputConfig  `yaml:"output"`
}

type HistoryConfig struct {
	// Driver is "memory" or "sqlite".
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type OutputConfig struct {
	Tokens  bool `yaml:"tokens"`
	AST     bool `yaml:"ast"`
	Symbols bool `yaml:"symbols"`
}

func DefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{Driver: "memory"},
		Log:     LogConfig{Level: "info", Format: "text"},
		Output:  OutputConfig{Symbols: true},
	}
}

// LoadConfig reads a yaml config over the defaults. An empty path gives the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(content, config)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	err = config.Validate()
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

func (c *Config) Validate() error {
	switch c.History.Driver {
	case "memory":
	case "sqlite":
		if c.History.DSN == "" {
			return fmt.Errorf("history dsn is required by the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown history driver %q", c.History.Driver)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

func (c LogConfig) SlogLevel() (slog.Level, error) {
	switch c.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unknown log level %q", c.Level)
}
