package sessions

import (
	"github.com/jrsteele09/promptshare/users"
)

// StorageKey is the fixed key the persisted session is written under
const StorageKey = "auth-storage"

// Session is the authentication state of one browser.
// User is only ever set after an access token was stored; token validity is
// not tracked here and only surfaces when a profile fetch fails.
type Session struct {
	User         *users.User
	AccessToken  string
	RefreshToken string
	IsLoading    bool // Transient, never persisted
}

// HasToken reports whether an access token is present
func (s Session) HasToken() bool {
	return s.AccessToken != ""
}

// Persisted is the subset of Session written to storage. Cleared fields are stored as null.
type Persisted struct {
	AccessToken  *string     `json:"accessToken"`
	RefreshToken *string     `json:"refreshToken"`
	User         *users.User `json:"user"`
}

func toPersisted(s Session) Persisted {
	return Persisted{
		AccessToken:  nullable(s.AccessToken),
		RefreshToken: nullable(s.RefreshToken),
		User:         s.User.Clone(),
	}
}

func fromPersisted(p Persisted) Session {
	s := Session{User: p.User}
	if p.AccessToken != nil {
		s.AccessToken = *p.AccessToken
	}
	if p.RefreshToken != nil {
		s.RefreshToken = *p.RefreshToken
	}
	return s
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
