package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		Env:         "production",
		Port:        "8080",
		JWTSecret:   "secure-secret-at-least-32-chars-long",
		DBPassword:  "secure-password",
		DBSSLMode:   "require",
		S3Bucket:    "photostream",
		S3AccessKey: "real-access-key",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"valid production config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing JWT secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"missing bucket", func(c *Config) { c.S3Bucket = "" }, true},
		{"default JWT secret in production", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short JWT secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default DB password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"default S3 access key in production", func(c *Config) { c.S3AccessKey = "minioadmin" }, true},
		{"defaults are fine in development", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "your-secret-key-change-in-production"
			c.DBPassword = "password"
			c.S3AccessKey = "minioadmin"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
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
