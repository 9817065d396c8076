package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:         "test",
		Port:        8080,
		DatabaseURL: "postgres://localhost/mockmate_test",
		JWT:         JWTConfig{Secret: "0123456789abcdef0123456789abcdef", TTL: 15 * time.Minute},
		Booking:     BookingConfig{DailyInterviewCap: 3},
		Meeting:     MeetingConfig{BaseURL: "http://meetings.internal", APISecret: "s3cret", Timeout: 5 * time.Second},
		JoinToken:   JoinTokenConfig{Secret: "fedcba9876543210fedcba9876543210", TTL: 5 * time.Minute},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad env", func(c *Config) { c.Env = "qa" }},
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"short jwt secret", func(c *Config) { c.JWT.Secret = "short" }},
		{"short join token secret", func(c *Config) { c.JoinToken.Secret = "short" }},
		{"zero daily cap", func(c *Config) { c.Booking.DailyInterviewCap = 0 }},
		{"zero meeting timeout", func(c *Config) { c.Meeting.Timeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)
}
