package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	Env         string `envconfig:"APP_ENV" default:"development"`
	Port        int    `envconfig:"APP_PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	Redis       RedisConfig
	JWT         JWTConfig
	Booking     BookingConfig
	Payment     PaymentConfig
	Meeting     MeetingConfig
	JoinToken   JoinTokenConfig
}

// redis configuration
type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string        `envconfig:"REDIS_PASSWORD" default:""`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_CACHE_TTL" default:"5m"`
}

// JWT configuration for user access tokens
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JWT_ACCESS_TOKEN_TTL" default:"15m"`
}

// booking rules
type BookingConfig struct {
	DailyInterviewCap int `envconfig:"DAILY_INTERVIEW_CAP" default:"3"`
}

// payment gateway credentials
type PaymentConfig struct {
	KeyID     string `envconfig:"PAY_KEY_ID" required:"true"`
	KeySecret string `envconfig:"PAY_KEY_SECRET" required:"true"`
	BaseURL   string `envconfig:"PAY_BASE_URL" default:"https://api.gateway.test"`
}

// meeting provider configuration
type MeetingConfig struct {
	BaseURL   string        `envconfig:"MEETING_BASE_URL" required:"true"`
	APISecret string        `envconfig:"MEETING_API_SECRET" required:"true"`
	Timeout   time.Duration `envconfig:"MEETING_TIMEOUT" default:"5s"`
}

// join token signing configuration
type JoinTokenConfig struct {
	Secret string        `envconfig:"JOIN_TOKEN_SECRET" required:"true"`
	TTL    time.Duration `envconfig:"JOIN_TOKEN_TTL" default:"5m"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
		"test":        true,
	}
	if !validEnvs[c.Env] {
		return fmt.Errorf("invalid environment: %s (must be one of: development, staging, production, test)", c.Env)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be between 1 and 65535)", c.Port)
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	if len(c.JoinToken.Secret) < 32 {
		return fmt.Errorf("JOIN_TOKEN_SECRET must be at least 32 characters")
	}
	if c.Booking.DailyInterviewCap < 1 {
		return fmt.Errorf("DAILY_INTERVIEW_CAP must be at least 1")
	}
	if c.Meeting.Timeout <= 0 {
		return fmt.Errorf("MEETING_TIMEOUT must be positive")
	}
	if c.JoinToken.TTL <= 0 {
		return fmt.Errorf("JOIN_TOKEN_TTL must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
