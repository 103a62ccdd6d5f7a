package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, "5432", cfg.DB.Port)
	assert.Equal(t, "catalog_service", cfg.DB.DBName)
	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "./uploads/products", cfg.Upload.Dir)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_OPEN_CONNS", "25")
	t.Setenv("DB_CONN_MAX_LIFETIME", "30m")
	t.Setenv("JWT_EXPIRATION_HOURS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 25, cfg.DB.MaxOpenConns)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	// Unparseable values fall back to the default.
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
}

func TestGetDSN(t *testing.T) {
	c := DBConfig{
		Host: "localhost", Port: "5432", User: "postgres",
		Password: "secret", DBName: "catalog_service", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=catalog_service sslmode=disable",
		c.GetDSN())
}

func TestGetAfterLoad(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Same(t, cfg, Get())
}
