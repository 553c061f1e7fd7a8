package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the application.
type Config struct {
	Catalog    string `koanf:"catalog"`     // path to the catalog JSON document
	WebMode    bool   `koanf:"web"`         // serve the HTTP API instead of printing a report
	Port       int    `koanf:"port"`        // port for the HTTP API
	Watch      bool   `koanf:"watch"`       // reload the catalog when the file changes
	Open       bool   `koanf:"open"`        // open the browser when serving
	RootPolicy string `koanf:"root-policy"` // "error" or "warn" for the missing-root rule
	Verbose    int    `koanf:"verbose"`     // -v occurrences
	JSONLogs   bool   `koanf:"json-logs"`   // emit JSON log records
}

// Load merges configuration from defaults, an optional practice-graph.toml,
// environment variables, and flags. Priority: flags > env > file > defaults.
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]interface{}{
		"catalog":     "practices.json",
		"web":         false,
		"port":        8080,
		"watch":       false,
		"open":        false,
		"root-policy": "error",
		"verbose":     0,
		"json-logs":   false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Optional config file; absence is not an error.
	_ = k.Load(file.Provider("practice-graph.toml"), toml.Parser())

	// Environment variables, e.g. PRACTICE_GRAPH_PORT=9090.
	if err := k.Load(env.Provider("PRACTICE_GRAPH_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "PRACTICE_GRAPH_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.RootPolicy != "error" && cfg.RootPolicy != "warn" {
		return nil, fmt.Errorf("root-policy must be \"error\" or \"warn\", got %q", cfg.RootPolicy)
	}

	return &cfg, nil
}

// mapProvider serves a plain map as a koanf provider for defaults.
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
