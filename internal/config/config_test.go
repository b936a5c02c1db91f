package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/promptshare/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":3000", c.GetPort())
	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:8080", c.GetAPIBaseURL())
	require.Equal(t, config.ThemeDark, c.GetTheme())
	require.Equal(t, 30*time.Second, c.GetAPITimeout())
	require.Equal(t, 10*time.Minute, c.GetAuthStateTimeout())
	require.Equal(t, 2*time.Second, c.GetCallbackRedirectDelay())
	require.Equal(t, config.StorageDriverMemory, c.GetStorageDriver())
	require.Equal(t, 30*time.Minute, c.GetSessionIdleTimeout())
}

func TestNew_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("PUBLIC_URL", "https://prompts.example.com/")
	t.Setenv("GOOGLE_CLIENT_ID", "google-id")
	t.Setenv("KAKAO_CLIENT_ID", "kakao-id")
	t.Setenv("NAVER_CLIENT_ID", "naver-id")
	t.Setenv("THEME", "LIGHT")
	t.Setenv("API_TIMEOUT", "5s")
	t.Setenv("SESSION_IDLE_TIMEOUT", "1h")

	c, err := config.New()
	require.NoError(t, err)

	require.Equal(t, ":9000", c.GetPort())
	require.Equal(t, "https://api.example.com", c.GetAPIBaseURL())
	require.Equal(t, "https://prompts.example.com", c.GetPublicURL())
	require.Equal(t, "google-id", c.GetGoogleClientID())
	require.Equal(t, "kakao-id", c.GetKakaoClientID())
	require.Equal(t, "naver-id", c.GetNaverClientID())
	require.Equal(t, config.ThemeLight, c.GetTheme())
	require.Equal(t, 5*time.Second, c.GetAPITimeout())
	require.Equal(t, time.Hour, c.GetSessionIdleTimeout())
}

func TestNew_Options(t *testing.T) {
	t.Setenv("PORT", "9000")

	c, err := config.New(config.WithPort(":7000"), config.WithEnv("PROD"), config.WithEnv(""))
	require.NoError(t, err)
	require.Equal(t, ":7000", c.GetPort())
	require.Equal(t, "PROD", c.GetEnv())
}

func TestNew_InvalidDuration(t *testing.T) {
	t.Setenv("API_TIMEOUT", "not-a-duration")

	_, err := config.New()
	require.Error(t, err)
	require.Contains(t, err.Error(), "parse env:")
}
