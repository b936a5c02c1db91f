package config

import "time"

const (
	StorageDriverMemory = "memory"
	StorageDriverSQLite = "sqlite"
)

type SessionConfig interface {
	GetStorageDriver() string
	GetStoragePath() string
	GetBrowserCookieMaxAge() time.Duration
	GetSessionIdleTimeout() time.Duration
}

type Session struct {
	StorageDriver string        `env:"STORAGE_DRIVER" envDefault:"memory"`
	StoragePath   string        `env:"STORAGE_PATH" envDefault:"./data/sessions.db"`
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
}

var _ SessionConfig = Session{}

func (s Session) GetStorageDriver() string {
	return s.StorageDriver
}

func (s Session) GetStoragePath() string {
	return s.StoragePath
}

func (Session) GetBrowserCookieMaxAge() time.Duration {
	return 365 * 24 * time.Hour
}

// GetSessionIdleTimeout is how long a browser's session stays cached in memory after its last request
func (s Session) GetSessionIdleTimeout() time.Duration {
	return s.IdleTimeout
}
