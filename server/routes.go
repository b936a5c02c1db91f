package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/promptshare/server/ui"
	"github.com/rs/zerolog/log"
)

func (s *Server) initRoutes() error {
	pages, err := s.parsePages()
	if err != nil {
		return err
	}

	s.RegisterRouteHandler("GET "+RouteHome+"{$}", ChainMiddleware(s.IndexHandler(pages.index), s.HTMLMiddleWare()...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(pages.login), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("GET "+RouteAuthLogin, ChainMiddleware(s.LoginRedirectHandler(), s.BrowserMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteAuthCallback, ChainMiddleware(s.OAuthCallbackHandler(pages.callback), s.BrowserMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.BrowserMiddleware()...))

	// Prompts (require a signed in session)
	s.RegisterRouteHandler("GET "+RoutePrompts, ChainMiddleware(s.PromptsListHandler(pages.prompts), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RoutePromptCreate, ChainMiddleware(s.PromptCreatePageHandler(pages.create), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("POST "+RoutePromptCreate, ChainMiddleware(s.PromptCreateSubmitHandler(pages.create), s.HTMLMiddleWare(s.RequireSession())...))
	s.RegisterRouteHandler("GET "+RoutePromptDetail, ChainMiddleware(s.PromptDetailHandler(pages.detail), s.HTMLMiddleWare(s.RequireSession())...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	return nil
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	log.Warn().Msgf("[%-19s] %s %s", ui.Method(method), path, ui.Error(error))
}
