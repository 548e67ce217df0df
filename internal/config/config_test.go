package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.JWTAccessHours)
	assert.Equal(t, 168, cfg.JWTRefreshHours)
	assert.Equal(t, 1000, cfg.BulkMaxItems)
	assert.Equal(t, 100000, cfg.BulkMaxGenerated)
	assert.Equal(t, 2, cfg.AppID)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.False(t, cfg.MailHabilitado())
}

func TestValidate_ProductionRequiresSecret(t *testing.T) {
	cfg := &Config{Env: "production", DBDriver: "postgres"}
	assert.Error(t, cfg.validate())
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := &Config{Env: "development", JWTSecret: "x", DBDriver: "oracle"}
	assert.Error(t, cfg.validate())
}
