package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDevelopmentFallsBackToInsecureSecret(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_URL", "")
	t.Setenv("TWILIO_ACCOUNT_SID", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.UsingInsecureJWT)
	assert.Equal(t, InsecureJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "barberflow.db", cfg.DBURL)
	assert.False(t, cfg.TwilioEnabled())
}

func TestLoadProductionRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_URL", "postgres://localhost/barberflow")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.UsingInsecureJWT)
	assert.True(t, cfg.IsProduction())
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_URL", "x")
	_, err := Load()
	assert.Error(t, err)
}

func TestNumericEnvFallsBackOnGarbage(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "lots")
	assert.Equal(t, 25, getEnvInt("DB_MAX_OPEN_CONNS", 25))
	t.Setenv("LOGIN_RATE_PER_SECOND", "2.5")
	assert.InDelta(t, 2.5, getEnvFloat("LOGIN_RATE_PER_SECOND", 1), 1e-9)
}
