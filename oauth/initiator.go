package oauth

import (
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/jrsteele09/promptshare/internal/config"
	"github.com/jrsteele09/promptshare/internal/errors"
	"golang.org/x/oauth2"
)

// Authorization endpoints. Token exchange happens in the backend so TokenURL is left empty.
var (
	GoogleEndpoint = oauth2.Endpoint{AuthURL: "https://accounts.google.com/o/oauth2/v2/auth"}
	KakaoEndpoint  = oauth2.Endpoint{AuthURL: "https://kauth.kakao.com/oauth/authorize"}
	NaverEndpoint  = oauth2.Endpoint{AuthURL: "https://nid.naver.com/oauth2.0/authorize"}
)

// CallbackPath is the route each provider redirects back to
func CallbackPath(p Provider) string {
	return "/auth/callback/" + string(p)
}

// Initiator builds provider authorization URLs
type Initiator struct {
	configs map[Provider]*oauth2.Config
	options map[Provider][]oauth2.AuthCodeOption
}

// NewInitiator configures the three providers from the client IDs and the public origin
func NewInitiator(cfg config.OAuthConfig, publicURL string) *Initiator {
	redirect := func(p Provider) string {
		return publicURL + CallbackPath(p)
	}

	return &Initiator{
		configs: map[Provider]*oauth2.Config{
			Google: {
				ClientID:    cfg.GetGoogleClientID(),
				Endpoint:    GoogleEndpoint,
				RedirectURL: redirect(Google),
				Scopes:      []string{oidc.ScopeOpenID, "email", "profile"},
			},
			Kakao: {
				ClientID:    cfg.GetKakaoClientID(),
				Endpoint:    KakaoEndpoint,
				RedirectURL: redirect(Kakao),
			},
			Naver: {
				ClientID:    cfg.GetNaverClientID(),
				Endpoint:    NaverEndpoint,
				RedirectURL: redirect(Naver),
			},
		},
		options: map[Provider][]oauth2.AuthCodeOption{
			Google: {oauth2.AccessTypeOffline, oauth2.ApprovalForce},
		},
	}
}

// AuthCodeURL returns the authorization request URL carrying the given anti-forgery state
func (i *Initiator) AuthCodeURL(p Provider, state string) (string, error) {
	c, ok := i.configs[p]
	if !ok {
		return "", errors.Wrapf(errors.ErrUnknownProvider, "provider %q", p)
	}
	if state == "" {
		return "", errors.Wrapf(errors.ErrInvalidState, "state cannot be empty")
	}
	return c.AuthCodeURL(state, i.options[p]...), nil
}

// RedirectURL is the callback URL registered with the provider
func (i *Initiator) RedirectURL(p Provider) string {
	if c, ok := i.configs[p]; ok {
		return c.RedirectURL
	}
	return ""
}
