package server

import (
	"fmt"
	"time"
)

const (
	// ShutdownTimeout is the maximum time to wait for graceful shutdown
	ShutdownTimeout = 10 * time.Second

	DefaultAddress            = "127.0.0.1:1317"
	DefaultMaxOpenConnections = 1000
)

// Config of the API server.
type Config struct {
	Address            string        `mapstructure:"address" toml:"address"`
	MaxOpenConnections int           `mapstructure:"max_open_connections" toml:"max_open_connections"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins" toml:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `mapstructure:"shutdown_timeout" toml:"shutdown_timeout"`
}

func DefaultConfig() Config {
	return Config{
		Address:            DefaultAddress,
		MaxOpenConnections: DefaultMaxOpenConnections,
		CORSAllowedOrigins: []string{"*"},
		ShutdownTimeout:    ShutdownTimeout,
	}
}

func (c Config) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("api address cannot be empty")
	}
	if c.MaxOpenConnections < 0 {
		return fmt.Errorf("max open connections cannot be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}
	return nil
}
