package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces every variable read by FromEnv.
const EnvPrefix = "SIGNUP_"

// Server captures HTTP server level configuration.
type Server struct {
	Addr  string `env:"ADDR" envDefault:":5000"`
	Debug bool   `env:"DEBUG" envDefault:"false"`

	// TemplateDir is read on every render when Debug is on. Empty keeps the
	// embedded templates even in debug mode.
	TemplateDir string `env:"TEMPLATE_DIR"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	RequestTimeout    time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`

	MaxFormBytes int64 `env:"MAX_FORM_BYTES" envDefault:"1048576"`

	MetricsEnabled bool   `env:"METRICS_ENABLED" envDefault:"true"`
	OTelEndpoint   string `env:"OTEL_ENDPOINT"`
	ServiceName    string `env:"SERVICE_NAME" envDefault:"signup"`
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects values the env parser accepts but the server cannot use.
func (s Server) Validate() error {
	if _, err := s.SlogLevel(); err != nil {
		return err
	}
	switch strings.ToLower(s.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: want text or json", s.LogFormat)
	}
	if s.MaxFormBytes <= 0 {
		return fmt.Errorf("invalid max form bytes %d: must be positive", s.MaxFormBytes)
	}
	if s.ShutdownTimeout <= 0 {
		return fmt.Errorf("invalid shutdown timeout %s: must be positive", s.ShutdownTimeout)
	}
	return nil
}

// SlogLevel maps LogLevel to a slog level. Debug mode always logs at debug.
func (s Server) SlogLevel() (slog.Level, error) {
	if s.Debug {
		return slog.LevelDebug, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s.LogLevel, err)
	}
	return level, nil
}

// ReloadTemplates reports whether views should be re-read from disk per render.
func (s Server) ReloadTemplates() bool {
	return s.Debug && s.TemplateDir != ""
}
