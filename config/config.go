package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gridcap/renew247/core/battery"
	"github.com/gridcap/renew247/core/realloc"
	"github.com/gridcap/renew247/core/sizing"
)

type Config struct {
	Battery      battery.Config `json:"battery"`
	Sizing       sizing.Config  `json:"sizing"`
	Reallocation realloc.Config `json:"reallocation"`
	Influx       InfluxConfig   `json:"influx"`
}

// InfluxConfig enables optional result telemetry to an InfluxDB instance.
type InfluxConfig struct {
	Enabled bool   `json:"enabled"`
	URL     string `json:"url"`
	Token   string `json:"token"`
	Org     string `json:"org"`
	Bucket  string `json:"bucket"`
}

// Validate checks mandatory fields.
func (c InfluxConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.URL == "" {
		return fmt.Errorf("influx url is required when enabled")
	}
	if c.Bucket == "" {
		return fmt.Errorf("influx bucket is required when enabled")
	}
	return nil
}

// Load reads the configuration file, applies R247_-prefixed environment
// overrides, fills defaults and validates every section before anything runs.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("R247_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "r247_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Battery.SetDefaults()
	cfg.Sizing.SetDefaults()
	cfg.Reallocation.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on any malformed section, including battery
// coefficients whose rate-limit denominators degenerate at the configured
// micro-step duration.
func (c Config) Validate() error {
	if err := c.Sizing.Validate(); err != nil {
		return fmt.Errorf("sizing: %w", err)
	}
	if _, err := battery.NewFactory(c.Battery, c.Sizing.StepHours()); err != nil {
		return fmt.Errorf("battery: %w", err)
	}
	// The reallocation section is only required for shift runs; a zero
	// ceiling means the section was left unconfigured and is validated
	// again when a reallocation actually starts.
	if c.Reallocation.MaxCapacityMW != 0 {
		if err := c.Reallocation.Validate(); err != nil {
			return fmt.Errorf("reallocation: %w", err)
		}
	}
	if err := c.Influx.Validate(); err != nil {
		return fmt.Errorf("influx: %w", err)
	}
	return nil
}
