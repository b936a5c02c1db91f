package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config interface {
	EnvConfig
	OAuthConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
	GetAPIBaseURL() string
	GetPublicURL() string
	GetTheme() string
	GetAPITimeout() time.Duration
}

type mainConfig struct {
	EnvVars
	OAuth
	Session
}

// Option overrides a value after the environment has been parsed
type Option func(*mainConfig)

// WithPort overrides PORT
func WithPort(port string) Option {
	return func(c *mainConfig) {
		if port != "" {
			c.Port = port
		}
	}
}

// WithEnv overrides ENV
func WithEnv(env string) Option {
	return func(c *mainConfig) {
		if env != "" {
			c.Env = env
		}
	}
}

// New loads the configuration from the environment
func New(opts ...Option) (Config, error) {
	var c mainConfig
	if err := ParseEnv(&c); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
