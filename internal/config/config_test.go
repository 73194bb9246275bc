package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
port = 5433
user = "booking"
dbname = "spaces"

[auth]
jwt_secret = "file-secret"
issuer = "identity"

[booking]
slot_granularity_minutes = 30
timezone = "Europe/Moscow"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ReadTimeout, "defaults survive partial files")
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "identity", cfg.Auth.Issuer)
	assert.Equal(t, 30, cfg.Booking.SlotGranularityMinutes)
	assert.Equal(t, 3, cfg.Booking.SerializableRetries)
	assert.True(t, cfg.Scheduler.Enabled)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Moscow", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "env-secret")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "no secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "granularity too small", mutate: func(c *Config) { c.Booking.SlotGranularityMinutes = 1 }},
		{name: "granularity too large", mutate: func(c *Config) { c.Booking.SlotGranularityMinutes = 300 }},
		{name: "negative retries", mutate: func(c *Config) { c.Booking.SerializableRetries = -1 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "scheduler interval", mutate: func(c *Config) { c.Scheduler.IntervalSeconds = 0 }},
		{name: "no db host", mutate: func(c *Config) { c.Database.Host = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "pw"

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=pw dbname=space_booking sslmode=disable",
		cfg.Database.DSN())
}
