package config

import (
	"strings"
	"testing"

	"go.uber.org/multierr"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Defaults(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RequiresDatabase(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"store source", func(c *Config) { c.Source.Kind = SourceStore }, `source.kind "store" requires database.addrs`},
		{"import", func(c *Config) { c.Source.Import = true }, "source.import requires database.addrs"},
		{"redis state", func(c *Config) { c.State.Backend = StateRedis }, `state.backend "redis" requires database.addrs`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tt.want {
				t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), tt.want)
			}

			cfg.Database.Addrs = []string{"localhost:6379"}
			if err := cfg.Validate(); err != nil {
				t.Fatalf("unexpected error with database: %v", err)
			}
		})
	}
}

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 70000
	cfg.Source.Kind = "ftp"
	cfg.State.Backend = "s3"
	cfg.Discovery.DefaultLimit = 500
	cfg.Discovery.Workers = -1

	err := cfg.Validate()
	if got := len(multierr.Errors(err)); got != 5 {
		t.Fatalf("expected 5 errors, got %d: %v", got, err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec 10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Source.Kind != SourceSeed {
		t.Errorf("expected source kind seed, got %q", cfg.Source.Kind)
	}
	if cfg.Source.SeedPath != "data/seed.jsonc" {
		t.Errorf("unexpected seed path %q", cfg.Source.SeedPath)
	}
	if cfg.State.Backend != StateBolt || cfg.State.Path != "var/helpboard.db" {
		t.Errorf("unexpected state defaults %+v", cfg.State)
	}
	if cfg.Discovery.ParallelThreshold != 4096 {
		t.Errorf("expected parallel threshold 4096, got %d", cfg.Discovery.ParallelThreshold)
	}
	if cfg.Discovery.DefaultLimit != 20 || cfg.Discovery.MaxLimit != 100 {
		t.Errorf("unexpected limits %+v", cfg.Discovery)
	}
	if cfg.Discovery.MapPadding != 0.1 {
		t.Errorf("expected map padding 0.1, got %v", cfg.Discovery.MapPadding)
	}
}

func TestApplyDefaults_FileStatePath(t *testing.T) {
	cfg := Config{State: StateConfig{Backend: StateFile}}
	cfg.ApplyDefaults()

	if cfg.State.Path != "var/sessions" {
		t.Errorf("expected var/sessions, got %q", cfg.State.Path)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{ReadTimeoutSec: 30},
		Discovery: DiscoveryConfig{DefaultLimit: 5, MaxLimit: 10},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected 30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Discovery.DefaultLimit != 5 || cfg.Discovery.MaxLimit != 10 {
		t.Errorf("limits overridden: %+v", cfg.Discovery)
	}
}

func TestParse_ExpandsEnv(t *testing.T) {
	t.Setenv("HB_PORT", "9090")
	data := []byte(strings.Join([]string{
		"http:",
		"  port: ${HB_PORT}",
		"source:",
		"  seed_path: ${HB_SEED:-/tmp/seed.jsonc}",
	}, "\n"))

	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTP.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.HTTP.Port)
	}
	if cfg.Source.SeedPath != "/tmp/seed.jsonc" {
		t.Errorf("expected default seed path, got %q", cfg.Source.SeedPath)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("http: [")); err == nil {
		t.Fatal("expected parse error")
	}
	if _, err := Parse([]byte("http:\n  port: 0\n")); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoad_BundledConfigs(t *testing.T) {
	t.Setenv("HELPBOARD_API_KEY", "secret")
	for _, env := range []string{"local", "prod"} {
		t.Run(env, func(t *testing.T) {
			if _, err := Load(env); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
