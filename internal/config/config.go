package config

import (
	"net"
	"os"
)

// Config holds process configuration loaded from the environment.
type Config struct {
	Host    string
	Port    string
	GinMode string
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Config {
	return &Config{
		Host:    getEnv("HOST", "0.0.0.0"),
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "release"),
	}
}

// Addr returns the host:port pair the HTTP server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
