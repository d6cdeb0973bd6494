// Package config provides hierarchical configuration loading for the partner console.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the partner console.
type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Session Session `yaml:"session"`
	Cache   Cache   `yaml:"cache"`
	Breaker Breaker `yaml:"breaker"`
	Logging Logging `yaml:"logging"`
	Otel    Otel    `yaml:"otel"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port         string        `yaml:"port"          env:"PARTNERCONSOLE_PORT"`
	ReadTimeout  time.Duration `yaml:"read_timeout"  env:"PARTNERCONSOLE_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"PARTNERCONSOLE_WRITE_TIMEOUT"`
	SecureCookie bool          `yaml:"secure_cookie" env:"PARTNERCONSOLE_SECURE_COOKIE"`
	LoginPerMin  int           `yaml:"login_per_min" env:"PARTNERCONSOLE_LOGIN_PER_MIN"` // sign-in attempts per client
	LoginBurst   int           `yaml:"login_burst"   env:"PARTNERCONSOLE_LOGIN_BURST"`
}

// API holds the remote tenant/auth API configuration.
type API struct {
	BaseURL            string        `yaml:"base_url"            env:"PARTNERCONSOLE_API_BASE_URL"`
	Timeout            time.Duration `yaml:"timeout"             env:"PARTNERCONSOLE_API_TIMEOUT"`        // transport timeout for list/detail/create
	ToggleTimeout      time.Duration `yaml:"toggle_timeout"      env:"PARTNERCONSOLE_API_TOGGLE_TIMEOUT"` // bound for activate/deactivate
	RegistrationSource string        `yaml:"registration_source" env:"PARTNERCONSOLE_API_REGISTRATION_SOURCE"`
	DefaultLanguage    string        `yaml:"default_language"    env:"PARTNERCONSOLE_DEFAULT_LANGUAGE"`
	Languages          []string      `yaml:"languages"           env:"PARTNERCONSOLE_LANGUAGES"`
}

// Session holds browser session configuration.
type Session struct {
	Secret     string        `yaml:"secret"      env:"PARTNERCONSOLE_SESSION_SECRET"`
	TTL        time.Duration `yaml:"ttl"         env:"PARTNERCONSOLE_SESSION_TTL"`
	CookieName string        `yaml:"cookie_name" env:"PARTNERCONSOLE_SESSION_COOKIE"`
}

// Cache holds the in-process session cache configuration.
type Cache struct {
	L1MaxSizeMB int64 `yaml:"l1_max_size_mb" env:"PARTNERCONSOLE_CACHE_L1_SIZE_MB"`
}

// Breaker holds circuit breaker configuration for the remote API.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures" env:"PARTNERCONSOLE_BREAKER_MAX_FAILURES"`
	Timeout     time.Duration `yaml:"timeout"      env:"PARTNERCONSOLE_BREAKER_TIMEOUT"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"   env:"PARTNERCONSOLE_LOG_LEVEL"`
	Service string `yaml:"service" env:"PARTNERCONSOLE_LOG_SERVICE"`
	Async   bool   `yaml:"async"   env:"PARTNERCONSOLE_LOG_ASYNC"`
}

// Otel holds OpenTelemetry export configuration.
type Otel struct {
	Enabled     bool   `yaml:"enabled"      env:"PARTNERCONSOLE_OTEL_ENABLED"`
	Endpoint    string `yaml:"endpoint"     env:"PARTNERCONSOLE_OTEL_ENDPOINT"` // host:port of an OTLP gRPC collector
	Insecure    bool   `yaml:"insecure"     env:"PARTNERCONSOLE_OTEL_INSECURE"`
	ServiceName string `yaml:"service_name" env:"PARTNERCONSOLE_OTEL_SERVICE_NAME"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:         "3000",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			LoginPerMin:  10,
			LoginBurst:   5,
		},
		API: API{
			BaseURL:            "https://devapiv2.zsolu.com",
			Timeout:            30 * time.Second,
			ToggleTimeout:      15 * time.Second,
			RegistrationSource: "web",
			DefaultLanguage:    "en-US",
			Languages:          []string{"en-US", "fr-FR"},
		},
		Session: Session{
			Secret:     "partnerconsole-dev-secret-change-me-please",
			TTL:        12 * time.Hour,
			CookieName: "pc_session",
		},
		Cache: Cache{
			L1MaxSizeMB: 32,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Logging: Logging{
			Level:   "info",
			Service: "partnerconsole",
		},
		Otel: Otel{
			ServiceName: "partnerconsole",
		},
	}
}
