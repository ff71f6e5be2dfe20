package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// DefaultHTTPPort is used when PORT is unset or not a valid port number
const DefaultHTTPPort = 8080

// Config holds all configuration for the predictor service
type Config struct {
	// RawPort is kept as a string so a bad value falls back to the default
	// instead of failing startup.
	RawPort  string `env:"PORT"`
	GRPCPort int    `env:"GRPC_PORT" envDefault:"9090"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// MaxBodyBytes caps the size of a /predict request body
	MaxBodyBytes   int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	MetricsEnabled bool  `env:"METRICS_ENABLED" envDefault:"true"`

	// Timeouts
	Timeouts TimeoutConfig
}

// TimeoutConfig holds the HTTP server and shutdown timeouts
type TimeoutConfig struct {
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// 0 disables the gRPC health server
	if c.GRPCPort < 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid gRPC port: %d", c.GRPCPort)
	}
	if c.GRPCPort != 0 && c.GRPCPort == c.HTTPPort() {
		return fmt.Errorf("gRPC port %d collides with HTTP port", c.GRPCPort)
	}

	if c.MaxBodyBytes < 1 {
		return fmt.Errorf("max body bytes must be positive: %d", c.MaxBodyBytes)
	}

	if c.Timeouts.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// HTTPPort returns the port from PORT, or DefaultHTTPPort when it is unset,
// unparsable or outside 1..65535.
func (c *Config) HTTPPort() int {
	if port, ok := parsePort(c.RawPort); ok {
		return port
	}
	return DefaultHTTPPort
}

// HasValidPort reports whether PORT holds a usable port number
func (c *Config) HasValidPort() bool {
	_, ok := parsePort(c.RawPort)
	return ok
}

func parsePort(raw string) (int, bool) {
	port, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || port < 1 || port > 65535 {
		return 0, false
	}
	return port, true
}

// GetHTTPAddr returns the HTTP server address on all interfaces
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.HTTPPort())
}

// GetGRPCAddr returns the gRPC server address
func (c *Config) GetGRPCAddr() string {
	return fmt.Sprintf(":%d", c.GRPCPort)
}
