package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	// Change to temp dir so no stray config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceDir, cfg.Catalog.Source)
	assert.Equal(t, "data", cfg.Catalog.Dir)
	assert.Equal(t, "villages", cfg.Catalog.Table)
	assert.Equal(t, 8, cfg.Catalog.Concurrency)
	assert.Empty(t, cfg.Catalog.DatabaseURL)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSecs)
	assert.Equal(t, 15, cfg.Server.WriteTimeoutSecs)
	assert.Equal(t, 30, cfg.Server.ShutdownTimeoutSecs)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.InDelta(t, 0, cfg.RateLimit.RPS, 0.001)
	assert.Equal(t, 50, cfg.RateLimit.Burst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
catalog:
  source: sqlite
  database_url: /var/lib/geodir/catalog.db
log:
  level: debug
  format: console
server:
  port: 9090
cors:
  allowed_origins:
    - https://villagedirectory.in
rate_limit:
  rps: 25.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, SourceSQLite, cfg.Catalog.Source)
	assert.Equal(t, "/var/lib/geodir/catalog.db", cfg.Catalog.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://villagedirectory.in"}, cfg.CORS.AllowedOrigins)
	assert.InDelta(t, 25.5, cfg.RateLimit.RPS, 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, "villages", cfg.Catalog.Table)
	assert.Equal(t, 50, cfg.RateLimit.Burst)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
catalog:
  dir: ./states
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("GEODIR_CATALOG_DIR", "/srv/states")
	t.Setenv("GEODIR_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "/srv/states", cfg.Catalog.Dir)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("GEODIR_SERVER_PORT", "3000")
	t.Setenv("GEODIR_CATALOG_SOURCE", "postgres")
	t.Setenv("GEODIR_CATALOG_DATABASE_URL", "postgres://localhost/geo")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, SourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, "postgres://localhost/geo", cfg.Catalog.DatabaseURL)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [port"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Catalog.Source = SourceDir
	cfg.Catalog.Dir = "data"
	cfg.Server.Port = 8080
	cfg.Server.ShutdownTimeoutSecs = 30
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "empty dir", mutate: func(c *Config) { c.Catalog.Dir = "" }, wantErr: "catalog.dir"},
		{name: "sqlite without url", mutate: func(c *Config) { c.Catalog.Source = SourceSQLite }, wantErr: "database_url"},
		{name: "postgres without url", mutate: func(c *Config) { c.Catalog.Source = SourcePostgres }, wantErr: "database_url"},
		{name: "postgres with url", mutate: func(c *Config) {
			c.Catalog.Source = SourcePostgres
			c.Catalog.DatabaseURL = "postgres://localhost/geo"
		}},
		{name: "unknown source", mutate: func(c *Config) { c.Catalog.Source = "mongo" }, wantErr: "unknown catalog.source"},
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }, wantErr: "server.port"},
		{name: "port too large", mutate: func(c *Config) { c.Server.Port = 70000 }, wantErr: "server.port"},
		{name: "zero shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeoutSecs = 0 }, wantErr: "shutdown_timeout_secs"},
		{name: "negative shutdown timeout", mutate: func(c *Config) { c.Server.ShutdownTimeoutSecs = -5 }, wantErr: "shutdown_timeout_secs"},
		{name: "negative rps", mutate: func(c *Config) { c.RateLimit.RPS = -1 }, wantErr: "rate_limit.rps"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

func TestInitLoggerUnknownFormat(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.format")
}

func TestInitLoggerLevel(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "warn", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zap.WarnLevel))
}
