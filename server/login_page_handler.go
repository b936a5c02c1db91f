package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/promptshare/oauth"
	"github.com/jrsteele09/promptshare/server/authflowrepo"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	basePage
	Providers []oauth.Provider
	Error     string
}

// LoginPageHandler displays the provider buttons (GET /login)
func (s *Server) LoginPageHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := LoginPageData{
			basePage:  s.basePage(r, "로그인"),
			Providers: oauth.Providers,
			Error:     r.URL.Query().Get("error"),
		}
		render(w, tmpl, http.StatusOK, data)
	}
}

// LoginRedirectHandler records a pending login and sends the browser to the provider
// (GET /auth/login/{provider})
func (s *Server) LoginRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		provider, err := oauth.ParseProvider(r.PathValue("provider"))
		if err != nil {
			redirectWithError(w, r, RouteLogin, "지원하지 않는 로그인 방식입니다.")
			return
		}

		state := generateRandomString(stateLength)
		if err := s.authState.Upsert(state, &authflowrepo.AuthFlowState{
			Namespace: browserID(r),
			Provider:  provider.String(),
		}); err != nil {
			log.Err(err).Str("provider", provider.String()).Msg("Failed to record login state")
			redirectWithError(w, r, RouteLogin, "로그인을 시작할 수 없습니다.")
			return
		}

		authURL, err := s.initiator.AuthCodeURL(provider, state)
		if err != nil {
			log.Err(err).Str("provider", provider.String()).Msg("Failed to build authorization URL")
			redirectWithError(w, r, RouteLogin, "로그인을 시작할 수 없습니다.")
			return
		}
		redirectSuccess(w, r, authURL)
	}
}

// LogoutHandler clears the browser's session (POST /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.sessions.Hook(browserID(r)).Logout()
		redirectSuccess(w, r, RouteHome)
	}
}
