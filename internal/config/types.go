package config

// SessionBackend selects where visitor navigation state is kept.
type SessionBackend string

const (
	SessionMemory SessionBackend = "memory"
	SessionSQLite SessionBackend = "sqlite"
)

// Config is the top-level splatdocs configuration, corresponding to .splatdocs.yml.
type Config struct {
	Port              int             `yaml:"port" koanf:"port"`
	DefaultLanguage   string          `yaml:"default_language" koanf:"default_language"`
	DefaultSubsection string          `yaml:"default_subsection" koanf:"default_subsection"`
	ExpandedParts     []string        `yaml:"expanded_parts" koanf:"expanded_parts"`
	OutputDir         string          `yaml:"output_dir" koanf:"output_dir"`
	Include           []string        `yaml:"include" koanf:"include"`
	Exclude           []string        `yaml:"exclude" koanf:"exclude"`
	StrictParity      bool            `yaml:"strict_parity" koanf:"strict_parity"`
	AllowAllOrigins   bool            `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	AllowedOrigins    []string        `yaml:"allowed_origins,omitempty" koanf:"allowed_origins"`
	Session           SessionConfig   `yaml:"session" koanf:"session"`
	RateLimit         RateLimitConfig `yaml:"rate_limit" koanf:"rate_limit"`
	Live              LiveConfig      `yaml:"live" koanf:"live"`
	Search            SearchConfig    `yaml:"search" koanf:"search"`
}

// SessionConfig holds visitor session settings.
type SessionConfig struct {
	Store      SessionBackend `yaml:"store" koanf:"store"`
	DBPath     string         `yaml:"db_path" koanf:"db_path"`
	Secret     string         `yaml:"secret,omitempty" koanf:"secret"`
	MaxAgeDays int            `yaml:"max_age_days" koanf:"max_age_days"`
}

// RateLimitConfig is the per-IP token bucket for state-changing routes.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" koanf:"rps"`
	Burst int     `yaml:"burst" koanf:"burst"`
}

// LiveConfig bounds each live widget connection.
type LiveConfig struct {
	ActionsPerSecond float64 `yaml:"actions_per_second" koanf:"actions_per_second"`
	Burst            int     `yaml:"burst" koanf:"burst"`
	MaxWidgets       int     `yaml:"max_widgets" koanf:"max_widgets"`
}

// SearchConfig selects the embedder behind semantic search.
type SearchConfig struct {
	Embedder   string `yaml:"embedder" koanf:"embedder"`
	Dimensions int    `yaml:"dimensions" koanf:"dimensions"`
}
