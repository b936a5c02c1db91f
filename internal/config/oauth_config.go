package config

import "time"

type OAuthConfig interface {
	GetGoogleClientID() string
	GetKakaoClientID() string
	GetNaverClientID() string
	GetAuthStateTimeout() time.Duration
	GetCallbackRedirectDelay() time.Duration
}

type OAuth struct {
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`
	KakaoClientID  string        `env:"KAKAO_CLIENT_ID"`
	NaverClientID  string        `env:"NAVER_CLIENT_ID"`
	StateTimeout   time.Duration `env:"AUTH_STATE_TIMEOUT" envDefault:"10m"`
}

var _ OAuthConfig = OAuth{}

func (o OAuth) GetGoogleClientID() string {
	return o.GoogleClientID
}

func (o OAuth) GetKakaoClientID() string {
	return o.KakaoClientID
}

func (o OAuth) GetNaverClientID() string {
	return o.NaverClientID
}

// GetAuthStateTimeout is how long a pending login state stays valid
func (o OAuth) GetAuthStateTimeout() time.Duration {
	return o.StateTimeout
}

// GetCallbackRedirectDelay is how long the success page is shown before going home
func (OAuth) GetCallbackRedirectDelay() time.Duration {
	return 2 * time.Second
}
