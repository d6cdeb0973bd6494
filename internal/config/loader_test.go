package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()

	if cfg.Server.Port != "3000" {
		t.Errorf("expected port 3000, got %s", cfg.Server.Port)
	}
	if cfg.API.ToggleTimeout != 15*time.Second {
		t.Errorf("expected toggle timeout 15s, got %v", cfg.API.ToggleTimeout)
	}
	if cfg.API.RegistrationSource != "web" {
		t.Errorf("expected registration source web, got %q", cfg.API.RegistrationSource)
	}
	if err := validate(&cfg); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadYAMLOverride(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "test.yaml")

	content := `
server:
  port: "9090"
api:
  base_url: "http://api.internal:8081"
  toggle_timeout: 5s
logging:
  level: "debug"
`
	if err := os.WriteFile(yamlPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://api.internal:8081" {
		t.Errorf("expected overridden base url, got %s", cfg.API.BaseURL)
	}
	if cfg.API.ToggleTimeout != 5*time.Second {
		t.Errorf("expected toggle timeout 5s, got %v", cfg.API.ToggleTimeout)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.Logging.Level)
	}
	// Unchanged fields keep defaults
	if cfg.Session.CookieName != "pc_session" {
		t.Errorf("expected default cookie name, got %s", cfg.Session.CookieName)
	}
}

func TestLoadYAMLMissing(t *testing.T) {
	cfg := Defaults()
	err := loadYAML(&cfg, "/nonexistent/path.yaml")
	if err != nil {
		t.Errorf("missing YAML should not error, got %v", err)
	}
}

func TestLoadYAMLInvalid(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(yamlPath, []byte("server: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := Defaults()
	if err := loadYAML(&cfg, yamlPath); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestEnvOverride(t *testing.T) {
	cfg := Defaults()

	t.Setenv("PARTNERCONSOLE_PORT", "7070")
	t.Setenv("PARTNERCONSOLE_API_BASE_URL", "http://localhost:5000")
	t.Setenv("PARTNERCONSOLE_LOG_LEVEL", "warn")
	t.Setenv("PARTNERCONSOLE_BREAKER_TIMEOUT", "1m")
	t.Setenv("PARTNERCONSOLE_LANGUAGES", "en-US,de-DE")
	t.Setenv("PARTNERCONSOLE_LOG_ASYNC", "true")

	if err := loadEnv(&cfg); err != nil {
		t.Fatal(err)
	}

	if cfg.Server.Port != "7070" {
		t.Errorf("expected port 7070, got %s", cfg.Server.Port)
	}
	if cfg.API.BaseURL != "http://localhost:5000" {
		t.Errorf("expected base url override, got %s", cfg.API.BaseURL)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Logging.Level)
	}
	if cfg.Breaker.Timeout != time.Minute {
		t.Errorf("expected breaker timeout 1m, got %v", cfg.Breaker.Timeout)
	}
	if len(cfg.API.Languages) != 2 || cfg.API.Languages[1] != "de-DE" {
		t.Errorf("expected languages [en-US de-DE], got %v", cfg.API.Languages)
	}
	if !cfg.Logging.Async {
		t.Error("expected async logging enabled")
	}
	// Untouched values keep defaults
	if cfg.API.ToggleTimeout != 15*time.Second {
		t.Errorf("expected default toggle timeout, got %v", cfg.API.ToggleTimeout)
	}
}

func TestEnvInvalidDuration(t *testing.T) {
	cfg := Defaults()
	t.Setenv("PARTNERCONSOLE_API_TIMEOUT", "soon")

	err := loadEnv(&cfg)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server.port"},
		{"relative base url", func(c *Config) { c.API.BaseURL = "/api" }, "absolute URL"},
		{"short secret", func(c *Config) { c.Session.Secret = "short" }, "session.secret"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl"},
		{"zero toggle timeout", func(c *Config) { c.API.ToggleTimeout = 0 }, "toggle_timeout"},
		{"zero breaker", func(c *Config) { c.Breaker.MaxFailures = 0 }, "breaker.max_failures"},
		{"otel without endpoint", func(c *Config) { c.Otel.Enabled = true }, "otel.endpoint"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := validate(&cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "partnerconsole.yaml")
	if err := os.WriteFile(yamlPath, []byte("server:\n  port: \"4000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PARTNERCONSOLE_PORT", "5000")

	cfg, err := LoadFrom(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	// ENV wins over YAML
	if cfg.Server.Port != "5000" {
		t.Errorf("expected env port 5000, got %s", cfg.Server.Port)
	}
}
