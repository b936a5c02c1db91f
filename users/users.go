package users

import (
	"strings"
	"unicode/utf8"
)

const defaultDisplayName = "사용자"

// User is the signed in member as returned by the backend profile endpoint
type User struct {
	ID       int64  `json:"id"`       // Backend member identifier
	Nickname string `json:"nickname"` // Display name chosen by the member
	Email    string `json:"email"`    // Email reported by the identity provider
}

// DisplayName returns the nickname, falling back to a generic label
func (u *User) DisplayName() string {
	if u == nil || strings.TrimSpace(u.Nickname) == "" {
		return defaultDisplayName
	}
	return u.Nickname
}

// Initial returns the upper-cased first rune of the nickname, "U" when there is none
func (u *User) Initial() string {
	if u == nil {
		return "U"
	}
	nickname := strings.TrimSpace(u.Nickname)
	if nickname == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(nickname)
	return strings.ToUpper(string(r))
}

// Clone returns a copy so callers can't mutate shared session state
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
