package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/jrsteele09/promptshare/sessions"
	"github.com/jrsteele09/promptshare/token"
)

// basePage is what the layout needs on every page
type basePage struct {
	AppName string
	Theme   string
	Title   string
	Session sessions.View
}

func (s *Server) basePage(r *http.Request, title string) basePage {
	return basePage{
		AppName: s.config.GetAppName(),
		Theme:   s.config.GetTheme(),
		Title:   title,
		Session: sessionView(r),
	}
}

type indexPage struct {
	basePage
	TokenExpiresIn time.Duration // Zero when unknown or expired
}

// IndexHandler renders the home page
func (s *Server) IndexHandler(tmpl *template.Template) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := indexPage{basePage: s.basePage(r, "")}
		if data.Session.IsAuthenticated {
			if hint, err := token.Inspect(s.accessToken(r)); err == nil {
				data.TokenExpiresIn = hint.ExpiresIn().Round(time.Minute)
			}
		}
		render(w, tmpl, http.StatusOK, data)
	}
}
