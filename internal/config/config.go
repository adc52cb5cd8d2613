// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/icemuppet/cinema/pkg/scene"
)

// Config is the root configuration structure.
type Config struct {
	Log       LogConfig       `toml:"log"`
	Libraries LibrariesConfig `toml:"libraries"`
	Cache     CacheConfig     `toml:"cache"`
	Database  DatabaseConfig  `toml:"database"`
	TMDB      TMDBConfig      `toml:"tmdb"`
	Resolve   ResolveConfig   `toml:"resolve"`
	Arrivals  ArrivalsConfig  `toml:"arrivals"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// LibrariesConfig holds one root directory per category. Empty roots are
// skipped during scans.
type LibrariesConfig struct {
	Movies      string `toml:"movies"`
	Shows       string `toml:"shows"`
	Standup     string `toml:"standup"`
	Documentary string `toml:"documentary"`
}

// Roots maps configured categories to their root directories.
func (l LibrariesConfig) Roots() map[scene.Category]string {
	roots := map[scene.Category]string{}
	if l.Movies != "" {
		roots[scene.CategoryMovies] = l.Movies
	}
	if l.Shows != "" {
		roots[scene.CategoryShows] = l.Shows
	}
	if l.Standup != "" {
		roots[scene.CategoryStandup] = l.Standup
	}
	if l.Documentary != "" {
		roots[scene.CategoryDocumentary] = l.Documentary
	}
	return roots
}

type CacheConfig struct {
	Dir string `toml:"dir"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type TMDBConfig struct {
	APIKey      string `toml:"api_key"`
	BearerToken string `toml:"bearer_token"`
}

// Duration decodes TOML duration strings like "15s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

type ResolveConfig struct {
	Concurrency int      `toml:"concurrency"`
	Timeout     Duration `toml:"timeout"`
}

type ArrivalsConfig struct {
	Movies          int `toml:"movies"`
	Shows           int `toml:"shows"`
	EpisodesPerShow int `toml:"episodes_per_show"`
}

// Load reads and parses the configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Substitute environment variables
	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.Dir == "" {
		c.Cache.Dir = "./data/cache"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/cinema.db"
	}
	if c.Resolve.Concurrency == 0 {
		c.Resolve.Concurrency = 4
	}
	if c.Resolve.Timeout == 0 {
		c.Resolve.Timeout = Duration(15 * time.Second)
	}
	if c.Arrivals.Movies == 0 {
		c.Arrivals.Movies = 16
	}
	if c.Arrivals.Shows == 0 {
		c.Arrivals.Shows = 8
	}
	if c.Arrivals.EpisodesPerShow == 0 {
		c.Arrivals.EpisodesPerShow = 3
	}
	// Credentials fall through to the conventional environment variables.
	if c.TMDB.APIKey == "" {
		c.TMDB.APIKey = os.Getenv("TMDB_API_KEY")
	}
	if c.TMDB.BearerToken == "" {
		c.TMDB.BearerToken = os.Getenv("TMDB_BEARER_TOKEN")
	}
}

// substituteEnvVars replaces ${VAR} references with environment variable
// values. ${VAR:-default} falls back to the default when the variable is
// unset or empty; ${VAR:?message} records the message as a missing-variable
// error instead. Plain ${VAR} references to unset variables are reported
// missing and left unchanged.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		expr := match[2 : len(match)-1] // Strip ${ and }

		if i := strings.Index(expr, ":-"); i >= 0 {
			if value := os.Getenv(expr[:i]); value != "" {
				return value
			}
			return expr[i+2:]
		}
		if i := strings.Index(expr, ":?"); i >= 0 {
			if value := os.Getenv(expr[:i]); value != "" {
				return value
			}
			missing = append(missing, expr[:i]+": "+expr[i+2:])
			return match
		}

		if value, ok := os.LookupEnv(expr); ok {
			return value
		}
		missing = append(missing, expr)
		return match
	})
	return result, missing
}
