package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Timeout for each external command (lspci, lsblk, ...)
	CommandTimeout Duration `yaml:"command_timeout"`
	Output         Output   `yaml:"output"`
	History        History  `yaml:"history"`
	// Probes that are not run; their sections stay empty
	Skip []string `yaml:"skip,omitempty"`
}

type Output struct {
	Pretty bool `yaml:"pretty"`
	Indent int  `yaml:"indent"`
}

type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Duration accepts Go duration strings ("5s", "1m30s") in YAML
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// defaultConfig provides baseline settings
var defaultConfig = Config{
	CommandTimeout: Duration(5 * time.Second),
	Output: Output{
		Pretty: false,
		Indent: 4,
	},
	History: History{
		Enabled: false,
		Path:    "/var/lib/hostprobe/history.db",
	},
}

// Default returns a copy of the built-in configuration
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// Load reads the config file at path. With an empty path the default
// locations are tried in order; when none exists the defaults are used.
func Load(path string) (*Config, error) {
	if path == "" {
		// Try default locations
		candidates := []string{
			"/etc/hostprobe/config.yaml",
			filepath.Join(os.Getenv("HOME"), ".config/hostprobe/config.yaml"),
			"config.yaml",
		}
		for _, c := range candidates {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", path, err)
			}
		}
	}

	// Apply defaults for missing values
	if cfg.CommandTimeout <= 0 {
		cfg.CommandTimeout = defaultConfig.CommandTimeout
	}
	if cfg.Output.Indent < 0 {
		cfg.Output.Indent = defaultConfig.Output.Indent
	}
	if cfg.History.Path == "" {
		cfg.History.Path = defaultConfig.History.Path
	}

	return &cfg, nil
}

// Timeout returns the per-command timeout as a time.Duration
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.CommandTimeout)
}
