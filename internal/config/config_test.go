package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "gastos.db", cfg.DBPath)
	assert.Equal(t, "web/templates", cfg.TemplateDir)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionDuration)
	assert.False(t, cfg.SecureCookie)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("SECURE_COOKIE", "true")
	t.Setenv("SESSION_DURATION", "24h")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.True(t, cfg.SecureCookie)
	assert.Equal(t, 24*time.Hour, cfg.SessionDuration)
}

func TestValidate_OK(t *testing.T) {
	cfg := Load()
	require.NoError(t, cfg.Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := Load()
	cfg.Port = "not-a-port"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid port")

	cfg.Port = "70000"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be between")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := Load()
	cfg.DBPath = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database path")
}

func TestValidate_AdminPair(t *testing.T) {
	cfg := Load()
	cfg.AdminUser = "admin"
	cfg.AdminPassword = ""
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ADMIN_USER and ADMIN_PASSWORD")

	cfg.AdminPassword = "secret"
	require.NoError(t, cfg.Validate())
}
