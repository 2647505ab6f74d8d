// Package config loads the portfolio server settings from defaults, an
// optional YAML file and PORTFOLIO_* environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/mas-ajil/portfolio/internal/theme"
	"github.com/mas-ajil/portfolio/internal/tracker"
)

// EnvPrefix marks environment overrides: PORTFOLIO_LOG_LEVEL -> log_level,
// PORTFOLIO_TRACKER__INITIAL -> tracker.initial.
const EnvPrefix = "PORTFOLIO_"

type Config struct {
	Addr        string  `yaml:"addr" koanf:"addr"`
	Mode        string  `yaml:"mode" koanf:"mode"`
	LogLevel    string  `yaml:"log_level" koanf:"log_level"`
	LogFormat   string  `yaml:"log_format" koanf:"log_format"`
	Theme       string  `yaml:"theme" koanf:"theme"`
	ContentFile string  `yaml:"content_file,omitempty" koanf:"content_file"`
	WasmDir     string  `yaml:"wasm_dir" koanf:"wasm_dir"`
	WasmBuild   bool    `yaml:"wasm_build" koanf:"wasm_build"`
	Tracker     Tracker `yaml:"tracker" koanf:"tracker"`
}

// Tracker mirrors tracker.Config for the browser client.
type Tracker struct {
	Landmarks  []string  `yaml:"landmarks" koanf:"landmarks"`
	Initial    string    `yaml:"initial" koanf:"initial"`
	RootMargin string    `yaml:"root_margin" koanf:"root_margin"`
	Thresholds []float64 `yaml:"thresholds" koanf:"thresholds"`
}

// Options converts the thresholds and margin for tracker.New.
func (t Tracker) Options() tracker.Options {
	return tracker.Options{RootMargin: t.RootMargin, Thresholds: t.Thresholds}
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	opts := tracker.DefaultOptions()
	return &Config{
		Addr:      ":8080",
		Mode:      "release",
		LogLevel:  "info",
		LogFormat: "text",
		Theme:     string(theme.Default),
		WasmDir:   "web",
		WasmBuild: true,
		Tracker: Tracker{
			Landmarks:  slices.Clone(tracker.Landmarks),
			Initial:    tracker.DefaultActive,
			RootMargin: opts.RootMargin,
			Thresholds: opts.Thresholds,
		},
	}
}

// Load reads configuration from the given YAML file, then overlays
// environment variables. A missing file is not an error. PORT is honored
// for hosts that only set that variable.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"ADDR") == "" {
		cfg.Addr = ":" + port
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validModes = map[string]bool{"debug": true, "release": true, "test": true}

var validFormats = map[string]bool{"text": true, "json": true}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if !validModes[c.Mode] {
		return fmt.Errorf("invalid mode %q: must be one of debug, release, test", c.Mode)
	}
	if !validFormats[c.LogFormat] {
		return fmt.Errorf("invalid log_format %q: must be text or json", c.LogFormat)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := theme.Parse(c.Theme); err != nil {
		return fmt.Errorf("invalid theme: %w", err)
	}

	t := c.Tracker
	if len(t.Landmarks) == 0 {
		return fmt.Errorf("tracker.landmarks is empty")
	}
	if !slices.Contains(t.Landmarks, t.Initial) {
		return fmt.Errorf("tracker.initial %q is not one of the landmarks", t.Initial)
	}
	if len(t.Thresholds) == 0 {
		return fmt.Errorf("tracker.thresholds is empty")
	}
	for _, th := range t.Thresholds {
		if th < 0 || th > 1 {
			return fmt.Errorf("tracker threshold %v outside [0,1]", th)
		}
	}
	return nil
}
