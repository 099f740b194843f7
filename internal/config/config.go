package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Source kinds.
const (
	SourceSeed  = "seed"
	SourceStore = "store"
)

// State backends.
const (
	StateBolt  = "bolt"
	StateFile  = "file"
	StateRedis = "redis"
)

// Config holds the helpboard API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Source    SourceConfig    `yaml:"source"`
	State     StateConfig     `yaml:"state"`
	Discovery DiscoveryConfig `yaml:"discovery"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
// Without addrs no database is used.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	ClientName       string   `yaml:"client_name"` // default: helpboard
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool { return len(d.Addrs) > 0 }

// SourceConfig selects where searchable listings come from.
type SourceConfig struct {
	Kind     string `yaml:"kind"`      // seed (default) or store
	SeedPath string `yaml:"seed_path"` // JSONC dataset
	Watch    bool   `yaml:"watch"`     // reload the seed file on change
	Import   bool   `yaml:"import"`    // copy the seed into the store at startup
}

// StateConfig selects the session state backend.
type StateConfig struct {
	Backend string `yaml:"backend"` // bolt (default), file, redis
	Path    string `yaml:"path"`    // bolt file or session directory
}

// DiscoveryConfig tunes the search engine and paging.
type DiscoveryConfig struct {
	ParallelThreshold int     `yaml:"parallel_threshold"`
	Workers           int     `yaml:"workers"` // 0 = GOMAXPROCS
	DefaultLimit      int     `yaml:"default_limit"`
	MaxLimit          int     `yaml:"max_limit"`
	MapPadding        float64 `yaml:"map_padding"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse expands env variables, decodes, defaults and validates.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceSeed
	}
	if c.Source.SeedPath == "" {
		c.Source.SeedPath = "data/seed.jsonc"
	}
	if c.State.Backend == "" {
		c.State.Backend = StateBolt
	}
	if c.State.Path == "" {
		if c.State.Backend == StateFile {
			c.State.Path = "var/sessions"
		} else {
			c.State.Path = "var/helpboard.db"
		}
	}
	if c.Discovery.ParallelThreshold <= 0 {
		c.Discovery.ParallelThreshold = 4096
	}
	if c.Discovery.DefaultLimit <= 0 {
		c.Discovery.DefaultLimit = 20
	}
	if c.Discovery.MaxLimit <= 0 {
		c.Discovery.MaxLimit = 100
	}
	if c.Discovery.MapPadding <= 0 {
		c.Discovery.MapPadding = 0.1
	}
}

// Validate checks the configuration for correctness and reports every problem.
func (c *Config) Validate() error {
	var errs error
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port))
	}
	switch c.Source.Kind {
	case SourceSeed:
	case SourceStore:
		if !c.Database.Enabled() {
			errs = multierr.Append(errs, errors.New("source.kind \"store\" requires database.addrs"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf("source.kind must be \"seed\" or \"store\", got %q", c.Source.Kind))
	}
	if c.Source.Import && !c.Database.Enabled() {
		errs = multierr.Append(errs, errors.New("source.import requires database.addrs"))
	}
	switch c.State.Backend {
	case StateBolt, StateFile:
	case StateRedis:
		if !c.Database.Enabled() {
			errs = multierr.Append(errs, errors.New("state.backend \"redis\" requires database.addrs"))
		}
	default:
		errs = multierr.Append(errs, fmt.Errorf(
			"state.backend must be \"bolt\", \"file\" or \"redis\", got %q", c.State.Backend,
		))
	}
	if c.Discovery.DefaultLimit > c.Discovery.MaxLimit {
		errs = multierr.Append(errs, fmt.Errorf(
			"discovery.default_limit (%d) exceeds discovery.max_limit (%d)",
			c.Discovery.DefaultLimit, c.Discovery.MaxLimit,
		))
	}
	if c.Discovery.Workers < 0 {
		errs = multierr.Append(errs, fmt.Errorf("discovery.workers must be >= 0, got %d", c.Discovery.Workers))
	}
	return errs
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
