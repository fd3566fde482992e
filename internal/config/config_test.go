package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
[server]
http_port = 8091

[database]
host = "localhost"
user = "studio"
password = "from-file"
dbname = "studio"

[logs]
level = "debug"

[booking]
window_radius_minutes = 360

[payment]
enabled = true
shop_id = "123"
secret_key = "file-secret"
return_url = "https://studio.example/orders"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileValuesAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, 8091, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Logs.Level)
	assert.Equal(t, "from-file", cfg.Database.Password)
	assert.Equal(t, 6*time.Hour, cfg.Booking.WindowRadius())

	// значения, которых нет в файле, берутся по умолчанию
	assert.Equal(t, 60, cfg.Booking.DefaultDurationMinutes)
	assert.Equal(t, "RUB", cfg.Booking.Currency)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 10, cfg.Payment.Timeout)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv("STUDIO_DB_PASSWORD", "from-env")
	t.Setenv("STUDIO_PAYMENT_SECRET_KEY", "env-secret")

	cfg, err := Load(writeConfig(t, testConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "env-secret", cfg.Payment.SecretKey)
	assert.Equal(t, "123", cfg.Payment.ShopID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrLoadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"no database host", func(c *Config) { c.Database.Host = "" }},
		{"zero default duration", func(c *Config) { c.Booking.DefaultDurationMinutes = 0 }},
		{"radius smaller than default duration", func(c *Config) { c.Booking.WindowRadiusMinutes = 30 }},
		{"payment without credentials", func(c *Config) {
			c.Payment.Enabled = true
			c.Payment.SecretKey = ""
		}},
		{"events without url", func(c *Config) { c.Events.Enabled = true }},
		{"reconciler without interval", func(c *Config) {
			c.Reconciler.Enabled = true
			c.Reconciler.Interval = 0
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.Database.Host = "localhost"
			cfg.Database.DBName = "studio"
			tt.modify(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestValidate_Defaults(t *testing.T) {
	cfg := defaults()
	cfg.Database.Host = "localhost"
	cfg.Database.DBName = "studio"

	assert.NoError(t, cfg.Validate())
}
