package config

import (
	"strings"
	"time"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

type EnvVars struct {
	Port       string        `env:"PORT" envDefault:"3000"`
	AppName    string        `env:"APP_NAME" envDefault:"Prompt Share"`
	Env        string        `env:"ENV" envDefault:"DEV"`
	LogLevel   string        `env:"LOG_LEVEL" envDefault:"info"`
	APIBaseURL string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	PublicURL  string        `env:"PUBLIC_URL" envDefault:"http://localhost:3000"`
	Theme      string        `env:"THEME" envDefault:"dark"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetPort() string {
	port := e.Port
	if port == "" {
		port = "3000"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

// GetAPIBaseURL returns the backend REST API base URL without a trailing slash
func (e EnvVars) GetAPIBaseURL() string {
	return strings.TrimRight(e.APIBaseURL, "/")
}

// GetPublicURL returns the origin browsers use to reach this server (e.g., "https://prompts.example.com")
// It is the base of every OAuth redirect URI
func (e EnvVars) GetPublicURL() string {
	return strings.TrimRight(e.PublicURL, "/")
}

func (e EnvVars) GetTheme() string {
	if strings.EqualFold(e.Theme, ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

func (e EnvVars) GetAPITimeout() time.Duration {
	return e.APITimeout
}
