package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jrsteele09/promptshare/auth"
	"github.com/jrsteele09/promptshare/internal/config"
	"github.com/jrsteele09/promptshare/oauth"
	"github.com/jrsteele09/promptshare/prompts"
	"github.com/jrsteele09/promptshare/server/authflowrepo"
	"github.com/jrsteele09/promptshare/server/ui"
	"github.com/jrsteele09/promptshare/sessions"
	"github.com/jrsteele09/promptshare/sessions/storage"
	"github.com/rs/zerolog/log"
)

// Backend is the part of the backend REST API the pages use
type Backend interface {
	auth.TokenExchanger
	sessions.ProfileFetcher
	GetCategories(ctx context.Context, token string) ([]prompts.Category, error)
	GetPrompts(ctx context.Context, token string, q prompts.Query) (*prompts.Page, error)
	GetPrompt(ctx context.Context, token string, id int64) (*prompts.Prompt, error)
	CreatePrompt(ctx context.Context, token string, req prompts.CreateRequest) (*prompts.Prompt, error)
}

type Server struct {
	env       string // Environment (e.g., "DEV", "PROD")
	mux       *http.ServeMux
	routes    []string
	config    config.Config
	backend   Backend
	sessions  *sessions.Registry
	authState authflowrepo.Repo
	initiator *oauth.Initiator
	callbacks *auth.CallbackFlow
}

func New(config config.Config, backend Backend, sessionStorage storage.Repo, authStateRepo authflowrepo.Repo) (*Server, error) {
	if backend == nil || sessionStorage == nil || authStateRepo == nil {
		return nil, fmt.Errorf("[Server New] backend, session storage and auth state repo are required")
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		backend:   backend,
		sessions:  sessions.NewRegistry(sessionStorage, backend),
		authState: authStateRepo,
		initiator: oauth.NewInitiator(config, config.GetPublicURL()),
		callbacks: auth.NewCallbackFlow(backend, backend, authStateRepo),
	}

	if err := s.initRoutes(); err != nil {
		return nil, fmt.Errorf("[Server New] failed to initialise routes: %w", err)
	}
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// PruneSessions drops browsers idle for longer than idle from the in-memory session cache
func (s *Server) PruneSessions(idle time.Duration) int {
	return s.sessions.Prune(idle)
}

// Routes lists the registered patterns in registration order
func (s *Server) Routes() []string {
	return append([]string(nil), s.routes...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%-19s] %s", ui.Method(method), path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
