package auth

import (
	"context"

	"github.com/jrsteele09/promptshare/api"
	"github.com/jrsteele09/promptshare/internal/errors"
	"github.com/jrsteele09/promptshare/oauth"
	"github.com/jrsteele09/promptshare/server/authflowrepo"
	"github.com/jrsteele09/promptshare/sessions"
	"github.com/jrsteele09/promptshare/token"
	"github.com/jrsteele09/promptshare/users"
	"github.com/rs/zerolog/log"
)

// TokenExchanger trades an authorization code for backend tokens
type TokenExchanger interface {
	Login(ctx context.Context, provider, authorizationCode string) (*api.Tokens, error)
}

// PendingStates hands out each issued login state once
type PendingStates interface {
	Consume(state string) (*authflowrepo.AuthFlowState, error)
}

// SessionWriter commits a completed login
type SessionWriter interface {
	SetAuth(user *users.User, accessToken, refreshToken string)
}

// Callback is what the provider sent back to /auth/callback/{provider}
type Callback struct {
	Provider      string
	Code          string
	State         string
	ProviderError string // error query parameter, set when the user declined
	Namespace     string // Browser handling the callback
}

// Flow is the outcome of one callback invocation
type Flow struct {
	status   Status
	provider oauth.Provider
	user     *users.User
	err      error
}

func (f *Flow) Status() Status {
	return f.status
}

func (f *Flow) Provider() oauth.Provider {
	return f.provider
}

// User is the committed user on success
func (f *Flow) User() *users.User {
	return f.user
}

func (f *Flow) Err() error {
	return f.err
}

// transition moves a loading flow to a terminal status; terminal flows never change
func (f *Flow) transition(to Status, err error) error {
	if f.status.Terminal() {
		return FlowFinishedErr
	}
	f.status = to
	f.err = err
	return nil
}

func (f *Flow) fail(err error) *Flow {
	_ = f.transition(StatusError, err)
	log.Warn().Err(err).Str("provider", f.provider.String()).Msg("OAuth callback failed")
	return f
}

// CallbackFlow completes a provider login: code exchange, profile fetch, session commit.
type CallbackFlow struct {
	tokens   TokenExchanger
	profiles sessions.ProfileFetcher
	states   PendingStates
}

func NewCallbackFlow(tokens TokenExchanger, profiles sessions.ProfileFetcher, states PendingStates) *CallbackFlow {
	return &CallbackFlow{
		tokens:   tokens,
		profiles: profiles,
		states:   states,
	}
}

// Run processes one callback and commits the session on success only.
// Input errors end the flow before any network call. Nothing is retried.
func (c *CallbackFlow) Run(ctx context.Context, cb Callback, session SessionWriter) *Flow {
	flow := &Flow{status: StatusLoading}

	provider, err := oauth.ParseProvider(cb.Provider)
	if err != nil {
		return flow.fail(err)
	}
	flow.provider = provider

	if cb.Code == "" {
		if cb.ProviderError != "" {
			return flow.fail(errors.Wrapf(errors.ErrMissingCode, "provider returned %q", cb.ProviderError))
		}
		return flow.fail(errors.ErrMissingCode)
	}

	// Consumed before the exchange so a duplicate callback cannot exchange twice
	pending, err := c.states.Consume(cb.State)
	if err != nil {
		return flow.fail(errors.Wrapf(err, "consume state"))
	}
	if pending.Namespace != cb.Namespace || pending.Provider != provider.String() {
		return flow.fail(errors.Join(errors.ErrInvalidState, StateMismatchErr))
	}

	tokens, err := c.tokens.Login(ctx, provider.String(), cb.Code)
	if err != nil {
		return flow.fail(errors.Join(errors.ErrExchangeFailed, err))
	}

	user, err := c.profiles.GetProfile(ctx, tokens.AccessToken)
	if err != nil {
		// Tokens were issued but no session is committed
		return flow.fail(errors.Join(errors.ErrProfileFailed, err))
	}

	session.SetAuth(user, tokens.AccessToken, tokens.RefreshToken)
	flow.user = user.Clone()
	_ = flow.transition(StatusSuccess, nil)

	event := log.Info().Str("provider", provider.String()).Int64("user_id", user.ID)
	if hint, err := token.Inspect(tokens.AccessToken); err == nil && hint.HasExpiry() {
		event = event.Time("token_expires_at", hint.ExpiresAt)
	}
	event.Msg("OAuth login completed")

	return flow
}
