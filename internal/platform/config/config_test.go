package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYCALC_CONFIG", "")
	t.Setenv("PAYCALC_WORKERS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "audit", cfg.TraceLevel)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "calendar_days", cfg.ProrationPolicy)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PAYCALC_CONFIG", "")
	t.Setenv("PAYCALC_TRACE_LEVEL", "debug")
	t.Setenv("PAYCALC_STRICT_YTD_YEAR", "true")
	t.Setenv("PAYCALC_WORKERS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.TraceLevel)
	assert.True(t, cfg.StrictYtdYear)
	assert.Equal(t, 4, cfg.Workers)
}

func TestFileOverlaysEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paycalc.yaml")
	body := "trace_level: debug\nworkers: 8\nmetrics_textfile: ${PAYCALC_TEST_DIR}/paycalc.prom\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("PAYCALC_TEST_DIR", dir)
	t.Setenv("PAYCALC_CONFIG", path)
	t.Setenv("PAYCALC_TRACE_LEVEL", "none")
	t.Setenv("PAYCALC_STRICT_YTD_YEAR", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.TraceLevel)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.StrictYtdYear)
	assert.Equal(t, filepath.Join(dir, "paycalc.prom"), cfg.MetricsTextfile)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("PAYCALC_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{LogLevel: "info", TraceLevel: "audit", ProrationPolicy: "workdays", Workers: 2}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"trace level", func(c *Config) { c.TraceLevel = "verbose" }},
		{"log level", func(c *Config) { c.LogLevel = "trace" }},
		{"proration", func(c *Config) { c.ProrationPolicy = "hourly" }},
		{"workers", func(c *Config) { c.Workers = 0 }},
		{"production lenient ytd", func(c *Config) { c.Environment = "production" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
