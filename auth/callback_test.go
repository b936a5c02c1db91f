package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/promptshare/api"
	"github.com/jrsteele09/promptshare/auth"
	"github.com/jrsteele09/promptshare/internal/errors"
	"github.com/jrsteele09/promptshare/server/authflowrepo"
	"github.com/jrsteele09/promptshare/users"
	"github.com/stretchr/testify/require"
)

const (
	testNamespace = "browser-1"
	testState     = "random-state-value"
	testCode      = "auth-code-123"
)

// fakeBackend records exchange and profile calls
type fakeBackend struct {
	mu          sync.Mutex
	logins      []string
	profiles    []string
	exchangeErr error
	profileErr  error
}

func (b *fakeBackend) Login(_ context.Context, provider, code string) (*api.Tokens, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logins = append(b.logins, provider+":"+code)
	if b.exchangeErr != nil {
		return nil, b.exchangeErr
	}
	return &api.Tokens{AccessToken: provider + "-access", RefreshToken: provider + "-refresh"}, nil
}

func (b *fakeBackend) GetProfile(_ context.Context, token string) (*users.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profiles = append(b.profiles, token)
	if b.profileErr != nil {
		return nil, b.profileErr
	}
	return &users.User{ID: 7, Nickname: "mina", Email: "mina@example.com"}, nil
}

func (b *fakeBackend) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.logins) + len(b.profiles)
}

type spySession struct {
	mu      sync.Mutex
	setAuth int
	user    *users.User
	access  string
	refresh string
}

func (s *spySession) SetAuth(user *users.User, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setAuth++
	s.user, s.access, s.refresh = user, accessToken, refreshToken
}

type fixture struct {
	backend *fakeBackend
	states  *authflowrepo.InMemoryRepo
	flow    *auth.CallbackFlow
	session *spySession
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := &fakeBackend{}
	states := authflowrepo.NewInMemoryRepo(time.Minute)
	return &fixture{
		backend: backend,
		states:  states,
		flow:    auth.NewCallbackFlow(backend, backend, states),
		session: &spySession{},
	}
}

func (f *fixture) pending(t *testing.T, provider string) {
	t.Helper()
	require.NoError(t, f.states.Upsert(testState, &authflowrepo.AuthFlowState{
		Namespace: testNamespace,
		Provider:  provider,
	}))
}

func callback(provider string) auth.Callback {
	return auth.Callback{
		Provider:  provider,
		Code:      testCode,
		State:     testState,
		Namespace: testNamespace,
	}
}

func TestCallbackFlow_SuccessForEveryProvider(t *testing.T) {
	for _, provider := range []string{"google", "kakao", "naver"} {
		t.Run(provider, func(t *testing.T) {
			f := newFixture(t)
			f.pending(t, provider)

			flow := f.flow.Run(context.Background(), callback(provider), f.session)

			require.Equal(t, auth.StatusSuccess, flow.Status())
			require.NoError(t, flow.Err())
			require.Equal(t, provider, flow.Provider().String())
			require.Equal(t, []string{provider + ":" + testCode}, f.backend.logins)
			require.Equal(t, []string{provider + "-access"}, f.backend.profiles)

			require.Equal(t, 1, f.session.setAuth)
			require.Equal(t, int64(7), f.session.user.ID)
			require.Equal(t, provider+"-access", f.session.access)
			require.Equal(t, provider+"-refresh", f.session.refresh)
			require.Equal(t, "mina", flow.User().Nickname)
		})
	}
}

func TestCallbackFlow_InputErrorsMakeNoNetworkCall(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*auth.Callback)
		wantErr error
	}{
		{"missing code", func(cb *auth.Callback) { cb.Code = "" }, errors.ErrMissingCode},
		{"provider declined", func(cb *auth.Callback) { cb.Code = ""; cb.ProviderError = "access_denied" }, errors.ErrMissingCode},
		{"unknown provider", func(cb *auth.Callback) { cb.Provider = "github" }, errors.ErrUnknownProvider},
		{"empty provider", func(cb *auth.Callback) { cb.Provider = "" }, errors.ErrUnknownProvider},
		{"missing state", func(cb *auth.Callback) { cb.State = "" }, errors.ErrInvalidState},
		{"unknown state", func(cb *auth.Callback) { cb.State = "forged" }, errors.ErrInvalidState},
		{"other browser", func(cb *auth.Callback) { cb.Namespace = "browser-2" }, errors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.pending(t, "google")
			cb := callback("google")
			tt.mutate(&cb)

			flow := f.flow.Run(context.Background(), cb, f.session)

			require.Equal(t, auth.StatusError, flow.Status())
			require.True(t, errors.Is(flow.Err(), tt.wantErr), flow.Err())
			require.Zero(t, f.backend.calls())
			require.Zero(t, f.session.setAuth)
		})
	}
}

func TestCallbackFlow_StateForOtherProvider(t *testing.T) {
	f := newFixture(t)
	f.pending(t, "kakao")

	flow := f.flow.Run(context.Background(), callback("naver"), f.session)

	require.Equal(t, auth.StatusError, flow.Status())
	require.True(t, errors.Is(flow.Err(), auth.StateMismatchErr))
	require.Zero(t, f.backend.calls())
}

func TestCallbackFlow_ExchangeFailure(t *testing.T) {
	f := newFixture(t)
	f.pending(t, "kakao")
	f.backend.exchangeErr = &api.HTTPError{StatusCode: 400, Message: "invalid code"}

	flow := f.flow.Run(context.Background(), callback("kakao"), f.session)

	require.Equal(t, auth.StatusError, flow.Status())
	require.True(t, errors.Is(flow.Err(), errors.ErrExchangeFailed))
	require.True(t, api.IsStatus(flow.Err(), 400))
	require.Empty(t, f.backend.profiles)
	require.Zero(t, f.session.setAuth)
}

func TestCallbackFlow_ProfileFailureCommitsNothing(t *testing.T) {
	f := newFixture(t)
	f.pending(t, "google")
	f.backend.profileErr = &api.HTTPError{StatusCode: 500, Message: "boom"}

	flow := f.flow.Run(context.Background(), callback("google"), f.session)

	require.Equal(t, auth.StatusError, flow.Status())
	require.True(t, errors.Is(flow.Err(), errors.ErrProfileFailed))
	require.Len(t, f.backend.logins, 1)
	require.Zero(t, f.session.setAuth)
	require.Nil(t, flow.User())
}

func TestCallbackFlow_DuplicateCallbackExchangesOnce(t *testing.T) {
	f := newFixture(t)
	f.pending(t, "naver")

	first := f.flow.Run(context.Background(), callback("naver"), f.session)
	second := f.flow.Run(context.Background(), callback("naver"), f.session)

	require.Equal(t, auth.StatusSuccess, first.Status())
	require.Equal(t, auth.StatusError, second.Status())
	require.True(t, errors.Is(second.Err(), errors.ErrInvalidState))
	require.Len(t, f.backend.logins, 1)
	require.Equal(t, 1, f.session.setAuth)
}

func TestCallbackFlow_ConcurrentDuplicates(t *testing.T) {
	f := newFixture(t)
	f.pending(t, "google")

	var wg sync.WaitGroup
	statuses := make([]auth.Status, 8)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			statuses[i] = f.flow.Run(context.Background(), callback("google"), f.session).Status()
		}(i)
	}
	wg.Wait()

	require.Len(t, f.backend.logins, 1)
	require.Equal(t, 1, f.session.setAuth)
	require.Contains(t, statuses, auth.StatusSuccess)
}

func TestStatus(t *testing.T) {
	require.False(t, auth.StatusLoading.Terminal())
	require.True(t, auth.StatusSuccess.Terminal())
	require.True(t, auth.StatusError.Terminal())
	require.Equal(t, "error", auth.StatusError.String())
}
