package server

import (
	"html/template"
	"net/http"

	"github.com/jrsteele09/promptshare/auth"
)

type callbackPage struct {
	basePage
	Status        auth.Status
	Provider      string
	RedirectDelay int // Seconds before the success page returns home
}

func (p callbackPage) Loading() bool { return p.Status == auth.StatusLoading }
func (p callbackPage) Success() bool { return p.Status == auth.StatusSuccess }
func (p callbackPage) Failed() bool  { return p.Status == auth.StatusError }

// OAuthCallbackHandler completes a provider login and renders its outcome
// (GET /auth/callback/{provider})
func (s *Server) OAuthCallbackHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		namespace := browserID(r)
		flow := s.callbacks.Run(r.Context(), auth.Callback{
			Provider:      r.PathValue("provider"),
			Code:          r.FormValue("code"),
			State:         r.FormValue("state"),
			ProviderError: r.FormValue("error"),
			Namespace:     namespace,
		}, s.sessions.Store(namespace))

		data := callbackPage{
			basePage:      s.basePage(r, "로그인"),
			Status:        flow.Status(),
			Provider:      flow.Provider().Label(),
			RedirectDelay: int(s.config.GetCallbackRedirectDelay().Seconds()),
		}
		data.Session = s.sessions.Hook(namespace).View()

		status := http.StatusOK
		if flow.Status() == auth.StatusError {
			status = http.StatusBadRequest
		}
		render(w, tmpl, status, data)
	}
}
