package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
password = "secret"

[storage]
driver = "memory"
seed_file = "seed.toml"

[booking]
timezone = "Asia/Tbilisi"
cancel_cutoff_minutes = 45
`)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_HOST", "db-from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db-from-env", cfg.Database.Host)
	assert.Equal(t, StorageDriverMemory, cfg.Storage.Driver)
	assert.Equal(t, "seed.toml", cfg.Storage.SeedFile)
	assert.Equal(t, 45, cfg.Booking.Policy().CancelCutoffMinutes)
	assert.Equal(t, 120, cfg.Booking.Policy().ModifyCutoffMinutes)
	assert.Equal(t, 30, cfg.Booking.Policy().HorizonDays)

	loc, err := cfg.Booking.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tbilisi", loc.String())

	assert.Equal(t, "host=db-from-env port=5432 user=postgres password=secret dbname=reservations sslmode=disable", cfg.Database.DSN())
}

func TestLoadEnvPort(t *testing.T) {
	path := writeConfig(t, "")
	t.Setenv("HTTP_PORT", "7000")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.HTTPPort)

	t.Setenv("HTTP_PORT", "seven")
	_, err = Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "storage driver", mutate: func(c *Config) { c.Storage.Driver = "mongo" }},
		{name: "lock driver", mutate: func(c *Config) { c.Locks.Driver = "zookeeper" }},
		{name: "redis without addr", mutate: func(c *Config) { c.Locks.Driver = LockDriverRedis; c.Redis.Addr = "" }},
		{name: "timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "scheduler spec", mutate: func(c *Config) { c.Scheduler.Enabled = true; c.Scheduler.Spec = "" }},
		{name: "rate limit", mutate: func(c *Config) { c.RateLimit.Enabled = true; c.RateLimit.RPS = 0 }},
		{name: "retries", mutate: func(c *Config) { c.Locks.MaxRetries = 0 }},
		{name: "port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
