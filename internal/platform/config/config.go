package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the contacts service.
type Config struct {
	ServiceName    string `mapstructure:"SERVICE_NAME"`
	ServiceVersion string `mapstructure:"SERVICE_VERSION"`
	LogLevel       string `mapstructure:"LOG_LEVEL"`

	HTTPPort int `mapstructure:"HTTP_PORT"`
	GRPCPort int `mapstructure:"GRPC_PORT"`

	// NATSUrl enables contact event publishing when non-empty.
	NATSUrl string `mapstructure:"NATS_URL"`

	SeedSampleData bool `mapstructure:"SEED_SAMPLE_DATA"`

	RequestTimeoutSeconds  int `mapstructure:"REQUEST_TIMEOUT_SECONDS"`
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
}

// HTTPAddr is the listen address of the REST API.
func (c *Config) HTTPAddr() string { return fmt.Sprintf(":%d", c.HTTPPort) }

// GRPCAddr is the listen address of the gRPC health server.
func (c *Config) GRPCAddr() string { return fmt.Sprintf(":%d", c.GRPCPort) }

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort))
	}
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		errs = append(errs, fmt.Errorf("GRPC_PORT out of range: %d", c.GRPCPort))
	}
	if c.HTTPPort == c.GRPCPort {
		errs = append(errs, fmt.Errorf("HTTP_PORT and GRPC_PORT must differ (both %d)", c.HTTPPort))
	}
	if c.RequestTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("REQUEST_TIMEOUT_SECONDS must be positive"))
	}
	if c.ShutdownTimeoutSeconds <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT_SECONDS must be positive"))
	}
	return errors.Join(errs...)
}

// Load reads config.defaults.yaml (if found), then APP_-prefixed environment
// variables, on top of built-in defaults.
func Load(serviceName string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")        // repo root
	v.AddConfigPath("../configs")       // cmd/<service>/
	v.AddConfigPath("../../configs")    // internal/<service>/
	v.AddConfigPath("../../../configs") // tests within internal/<service>/<pkg>/
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP") // APP_HTTP_PORT, APP_NATS_URL etc.

	v.SetDefault("SERVICE_NAME", serviceName)
	v.SetDefault("SERVICE_VERSION", "0.0.1")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 8000)
	v.SetDefault("GRPC_PORT", 50055)
	v.SetDefault("NATS_URL", "")
	v.SetDefault("SEED_SAMPLE_DATA", true)
	v.SetDefault("REQUEST_TIMEOUT_SECONDS", 60)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 15)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		slog.Debug("Configuration file not found; using defaults and environment variables.")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
