package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JOBLY_AUTH_JWTSECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3001", cfg.Server.Addr)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "data/jobly.db", cfg.Database.DSN)
	assert.Equal(t, 1440, cfg.Auth.TokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "logos", cfg.Storage.KeyPrefix)
	assert.Equal(t, 120, cfg.RateLimit.PerMinute)
	assert.Empty(t, cfg.Redis.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JOBLY_AUTH_JWTSECRET", "secret")
	t.Setenv("JOBLY_DATABASE_DRIVER", "postgres")
	t.Setenv("JOBLY_DATABASE_DSN", "postgres://jobly@localhost/jobly")
	t.Setenv("JOBLY_REDIS_ADDR", "localhost:6379")
	t.Setenv("JOBLY_RATELIMIT_PERMINUTE", "30")
	t.Setenv("JOBLY_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://jobly@localhost/jobly", cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.RateLimit.PerMinute)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var c Config
		c.Auth.JWTSecret = "secret"
		c.Auth.TokenTTLMinutes = 60
		c.Auth.BcryptCost = 10
		c.Database.Driver = "sqlite"
		c.Database.DSN = ":memory:"
		c.Log.Level = "info"
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing secret", mutate: func(c *Config) { c.Auth.JWTSecret = " " }},
		{name: "zero ttl", mutate: func(c *Config) { c.Auth.TokenTTLMinutes = 0 }},
		{name: "bcrypt cost too low", mutate: func(c *Config) { c.Auth.BcryptCost = 1 }},
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "empty dsn", mutate: func(c *Config) { c.Database.DSN = "" }},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }},
		{name: "zero rate limit", mutate: func(c *Config) { c.Redis.Addr = "localhost:6379" }},
	}

	require.NoError(t, valid().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
