package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TrainerBooking/pkg/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
dbname = "trainer_booking"
user = "app"

[schedule]
timezone = "UTC"
default_break_start = "13:00"
default_break_end = "14:00"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, GatewayPostgres, cfg.Gateway.Mode)
	assert.False(t, cfg.Redis.Enabled())
	assert.Contains(t, cfg.Database.DSN(), "dbname=trainer_booking")

	brk, err := cfg.Schedule.DefaultBreak()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("13:00"), brk.Start)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[database]
dbname = "trainer_booking"
`)
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("GATEWAY_MODE", "remote")
	t.Setenv("TRAINER_API_URL", "http://api.local")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, GatewayRemote, cfg.Gateway.Mode)
	assert.Equal(t, "http://api.local", cfg.TrainerAPI.URL)
	assert.True(t, cfg.Redis.Enabled())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "unknown mode", mutate: func(c *Config) { c.Gateway.Mode = "mongo" }},
		{name: "remote without url", mutate: func(c *Config) { c.Gateway.Mode = GatewayRemote }},
		{name: "postgres without dbname", mutate: func(c *Config) { c.Database.DBName = "" }},
		{name: "bad timezone", mutate: func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }},
		{name: "inverted break", mutate: func(c *Config) { c.Schedule.DefaultBreakStart = "14:00"; c.Schedule.DefaultBreakEnd = "13:00" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Database.DBName = "db"
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))

	assert.Error(t, err)
}
