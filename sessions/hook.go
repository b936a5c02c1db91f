package sessions

import (
	"context"

	"github.com/jrsteele09/promptshare/users"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// ProfileFetcher loads the member a token belongs to
type ProfileFetcher interface {
	GetProfile(ctx context.Context, token string) (*users.User, error)
}

// AuthState is the part of the store the hook drives
type AuthState interface {
	Snapshot() Session
	SetUser(user *users.User)
	SetLoading(loading bool)
	Logout()
}

// View is what pages need to know about the session
type View struct {
	User            *users.User
	IsAuthenticated bool
	IsLoading       bool
}

// Hook derives the page view from a store and rehydrates the user from a stored token.
type Hook struct {
	state    AuthState
	profiles ProfileFetcher
	flight   singleflight.Group
}

func NewHook(state AuthState, profiles ProfileFetcher) *Hook {
	return &Hook{state: state, profiles: profiles}
}

// Activate rehydrates the user when a token is stored but no user is loaded, then
// returns the view. With a user present it does nothing. Concurrent activations
// share a single profile fetch.
func (h *Hook) Activate(ctx context.Context) View {
	if needsProfile(h.state.Snapshot()) {
		_, _, _ = h.flight.Do(StorageKey, func() (any, error) {
			h.rehydrate(ctx)
			return nil, nil
		})
	}
	return h.View()
}

// View reports the current session without any side effect.
// IsAuthenticated follows the user, not the token.
func (h *Hook) View() View {
	s := h.state.Snapshot()
	return View{
		User:            s.User,
		IsAuthenticated: s.User != nil,
		IsLoading:       s.IsLoading,
	}
}

func (h *Hook) Logout() {
	h.state.Logout()
}

func (h *Hook) rehydrate(ctx context.Context) {
	// A flight that just finished may already have settled the session
	session := h.state.Snapshot()
	if !needsProfile(session) {
		return
	}

	h.state.SetLoading(true)
	defer h.state.SetLoading(false)

	// A departing client must not log the browser out
	user, err := h.profiles.GetProfile(context.WithoutCancel(ctx), session.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("Stored token rejected, clearing session")
		h.state.Logout()
		return
	}
	h.state.SetUser(user)
}

func needsProfile(s Session) bool {
	return s.HasToken() && s.User == nil
}
