package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 1024, cfg.Limits.MaxExponent)
	assert.Equal(t, 15*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.GetWriteTimeout())
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "algebra.yaml")
	data := `
server:
  port: 9090
  read_timeout: 3s
logging:
  level: debug
render:
  symbols:
    hbar: "ħ"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 3*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ħ", cfg.Render.Symbols["hbar"])
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("server: [port"), 0o644))
	_, err := Load(broken)
	assert.Error(t, err)

	badLevel := filepath.Join(dir, "level.yaml")
	require.NoError(t, os.WriteFile(badLevel, []byte("logging:\n  level: loud\n"), 0o644))
	_, err = Load(badLevel)
	assert.ErrorContains(t, err, "logging.level")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ALGEBRA_PORT", "7000")
	t.Setenv("ALGEBRA_LOG_LEVEL", "warn")
	t.Setenv("ALGEBRA_MAX_EXPONENT", "64")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 64, cfg.Limits.MaxExponent)
}

func TestLoad_EnvIgnoresBadPort(t *testing.T) {
	t.Setenv("ALGEBRA_PORT", "eighty")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "max_body_bytes"},
		{"read timeout", func(c *Config) { c.Server.ReadTimeout = "soon" }, "server.read_timeout"},
		{"write timeout", func(c *Config) { c.Server.WriteTimeout = "" }, "server.write_timeout"},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"exponent limit", func(c *Config) { c.Limits.MaxExponent = 0 }, "limits.max_exponent"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestGetTimeouts_Fallback(t *testing.T) {
	cfg := &Config{Server: ServerConfig{ReadTimeout: "x", WriteTimeout: "y"}}
	assert.Equal(t, 15*time.Second, cfg.GetReadTimeout())
	assert.Equal(t, 15*time.Second, cfg.GetWriteTimeout())
}

func TestSymbolTable(t *testing.T) {
	base := map[string]string{"alpha": "α", "beta": "β"}
	cfg := DefaultConfig()
	cfg.Render.Symbols = map[string]string{"beta": "ϐ", "hbar": "ħ"}

	got := cfg.SymbolTable(base)
	assert.Equal(t, map[string]string{"alpha": "α", "beta": "ϐ", "hbar": "ħ"}, got)
	assert.Equal(t, "β", base["beta"], "base table must not change")

	assert.Equal(t, base, DefaultConfig().SymbolTable(base))
}
