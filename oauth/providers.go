package oauth

import (
	"strings"

	"github.com/jrsteele09/promptshare/internal/errors"
)

// Provider is one of the supported identity providers
type Provider string

const (
	Google Provider = "google"
	Kakao  Provider = "kakao"
	Naver  Provider = "naver"
)

// Providers lists the supported providers in the order the login page shows them
var Providers = []Provider{Google, Kakao, Naver}

// ParseProvider maps a route segment to a provider
func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case Google, Kakao, Naver:
		return p, nil
	}
	return "", errors.Wrapf(errors.ErrUnknownProvider, "provider %q", s)
}

func (p Provider) String() string {
	return string(p)
}

// Label is the human readable provider name
func (p Provider) Label() string {
	switch p {
	case Google:
		return "Google"
	case Kakao:
		return "Kakao"
	case Naver:
		return "Naver"
	}
	return string(p)
}
