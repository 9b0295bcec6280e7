package config

import "path/filepath"

// DefaultConfigFile is the config file looked up in the working directory.
const DefaultConfigFile = ".splatdocs.yml"

// DefaultExpandedParts are the sidebar parts open for a new visitor.
var DefaultExpandedParts = []string{"part-1", "part-2", "part-3", "part-4", "part-5"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Port:              8080,
		DefaultLanguage:   "es",
		DefaultSubsection: "1.1",
		ExpandedParts:     append([]string(nil), DefaultExpandedParts...),
		OutputDir:         "build",
		Include:           []string{"**"},
		Session: SessionConfig{
			Store:      SessionMemory,
			DBPath:     filepath.Join(".splatdocs", "sessions.db"),
			MaxAgeDays: 30,
		},
		RateLimit: RateLimitConfig{
			RPS:   10,
			Burst: 20,
		},
		Live: LiveConfig{
			ActionsPerSecond: 30,
			Burst:            60,
			MaxWidgets:       32,
		},
		Search: SearchConfig{
			Embedder:   "hashing-v1",
			Dimensions: 512,
		},
	}
}

// SiteDir is where `splatdocs site` writes the static export.
func (c *Config) SiteDir() string {
	return filepath.Join(c.OutputDir, "site")
}

// VectorDir is where `splatdocs index` persists the vector store.
func (c *Config) VectorDir() string {
	return filepath.Join(c.OutputDir, "vectordb")
}
