package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the algebra server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	Limits  LimitsConfig  `yaml:"limits"`
}

// ServerConfig configures the HTTP tool endpoint.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
	ReadTimeout  string `yaml:"read_timeout"`
	WriteTimeout string `yaml:"write_timeout"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// RenderConfig configures MathML output. Symbols entries are merged over
// the built-in Greek table.
type RenderConfig struct {
	Symbols map[string]string `yaml:"symbols"`
}

// LimitsConfig bounds the work a single tool call may request.
type LimitsConfig struct {
	MaxExponent int `yaml:"max_exponent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			MaxBodyBytes: 1 << 20,
			ReadTimeout:  "15s",
			WriteTimeout: "15s",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Limits: LimitsConfig{
			MaxExponent: 1024,
		},
	}
}

// Load reads configuration from a YAML file over the defaults. An empty
// path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if port := os.Getenv("ALGEBRA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}
	if level := os.Getenv("ALGEBRA_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if exp := os.Getenv("ALGEBRA_MAX_EXPONENT"); exp != "" {
		if n, err := strconv.Atoi(exp); err == nil {
			c.Limits.MaxExponent = n
		}
	}
}

// Validate checks ranges and duration syntax.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be positive")
	}
	if c.Limits.MaxExponent <= 0 {
		return fmt.Errorf("limits.max_exponent must be positive")
	}
	for name, d := range map[string]string{
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(d); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level: %q", c.Logging.Level)
	}
	return nil
}

// GetReadTimeout returns the read timeout as a duration.
func (c *Config) GetReadTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ReadTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetWriteTimeout returns the write timeout as a duration.
func (c *Config) GetWriteTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.WriteTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// SymbolTable merges the configured symbols over base into a new map.
func (c *Config) SymbolTable(base map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(c.Render.Symbols))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range c.Render.Symbols {
		out[k] = v
	}
	return out
}
