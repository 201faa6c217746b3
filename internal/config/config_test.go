package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEnvironment(t *testing.T) {
	for _, name := range []string{"prod", "preprod", "sandbox", "local"} {
		env, err := ResolveEnvironment(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, env.Name)
		assert.NotEmpty(t, env.VaultAddress)
		assert.NotEmpty(t, env.POSHost)
		assert.NotEmpty(t, env.HRISHost)
		assert.NotEmpty(t, env.ReportOutputPath)
	}

	_, err := ResolveEnvironment("staging")
	assert.Error(t, err)
}

func TestLoadAppliesEnvironmentDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "sandbox")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sandbox", cfg.Environment.Name)
	assert.Equal(t, cfg.Environment.POSHost, cfg.POS.Host)
	assert.Equal(t, cfg.Environment.HRISHost, cfg.HRIS.Host)
	assert.Equal(t, 12, cfg.Recon.MaxConcurrentVenues)
	assert.Equal(t, "America/Chicago", cfg.Recon.DefaultTimezone)
}

func TestLoadRejectsBadConcurrency(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("RECON_MAX_CONCURRENT_VENUES", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseURL(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "localhost", Port: 5432, User: "postgres",
		Password: "pw", Name: "timecard_recon", SSLMode: "disable",
	}}
	assert.Equal(t,
		"postgres://postgres:pw@localhost:5432/timecard_recon?sslmode=disable",
		cfg.DatabaseURL())
}
