package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig(env string) *Config {
	return &Config{
		Env:        env,
		Port:       "8214",
		JWTSecret:  "secure-secret-at-least-32-chars-long",
		CronSecret: "a-distinct-cron-key",
		DBPassword: "secure-password",
		DBSSLMode:  "require",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		env         string
		expectError bool
	}{
		{"valid development", func(*Config) {}, "development", false},
		{"valid production", func(*Config) {}, "production", false},
		{"missing port", func(c *Config) { c.Port = "" }, "development", true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, "development", true},
		{"default jwt secret in production", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, "production", true},
		{"short jwt secret in production", func(c *Config) { c.JWTSecret = "short" }, "production", true},
		{"short jwt secret in development", func(c *Config) { c.JWTSecret = "short" }, "development", false},
		{"default cron key in production", func(c *Config) { c.CronSecret = "dev-cron-key" }, "production", true},
		{"default cron key in development", func(c *Config) { c.CronSecret = "dev-cron-key" }, "development", false},
		{"empty cron key in production", func(c *Config) { c.CronSecret = "" }, "production", true},
		{"default db password in prod", func(c *Config) { c.DBPassword = "password" }, "prod", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig(tt.env)
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
