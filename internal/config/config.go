package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/splatdocs/internal/filter"
	"github.com/ziadkadry99/splatdocs/internal/i18n"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "SPLATDOCS_"

// listKeys are split on commas when they come from the environment.
var listKeys = map[string]bool{
	"expanded_parts":  true,
	"include":         true,
	"exclude":         true,
	"allowed_origins": true,
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SPLATDOCS_*). A .env file next to the
// config file is loaded first; it never overrides variables already set.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: SPLATDOCS_PORT -> port,
	// SPLATDOCS_SESSION__STORE -> session.store.
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if listKeys[key] {
		return key, splitAndTrim(value)
	}
	return key, value
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validSessionBackends is the set of recognized session.store values.
var validSessionBackends = map[SessionBackend]bool{
	SessionMemory: true,
	SessionSQLite: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}

	if !i18n.Language(c.DefaultLanguage).Valid() {
		return fmt.Errorf("invalid default_language %q: must be one of es, en", c.DefaultLanguage)
	}

	if c.DefaultSubsection == "" {
		return fmt.Errorf("default_subsection is required")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	for name, patterns := range map[string][]string{
		"expanded_parts": c.ExpandedParts,
		"include":        c.Include,
		"exclude":        c.Exclude,
	} {
		if bad, ok := filter.Valid(patterns); !ok {
			return fmt.Errorf("invalid %s pattern %q", name, bad)
		}
	}

	if !validSessionBackends[c.Session.Store] {
		return fmt.Errorf("invalid session.store %q: must be one of memory, sqlite", c.Session.Store)
	}
	if c.Session.Store == SessionSQLite && c.Session.DBPath == "" {
		return fmt.Errorf("session.db_path is required for the sqlite store")
	}
	if c.Session.MaxAgeDays <= 0 {
		return fmt.Errorf("session.max_age_days must be positive")
	}

	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate_limit values must be non-negative")
	}
	if c.RateLimit.RPS > 0 && c.RateLimit.Burst == 0 {
		return fmt.Errorf("rate_limit.burst must be positive when rps is set")
	}

	if c.Live.ActionsPerSecond < 0 || c.Live.Burst < 0 || c.Live.MaxWidgets < 0 {
		return fmt.Errorf("live values must be non-negative")
	}

	if c.Search.Dimensions < 0 {
		return fmt.Errorf("search.dimensions must be non-negative")
	}

	return nil
}

// Language returns the configured default language.
func (c *Config) Language() i18n.Language {
	return i18n.Parse(c.DefaultLanguage)
}

// Selection returns the include/exclude set applied to export and indexing.
func (c *Config) Selection() filter.Set {
	return filter.Set{Include: c.Include, Exclude: c.Exclude}
}
