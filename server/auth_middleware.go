package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/promptshare/sessions"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyBrowserID stores the browser namespace of the request
	ContextKeyBrowserID ContextKey = "browser_id"
	// ContextKeySession stores the session view after rehydration
	ContextKeySession ContextKey = "session"
)

// BrowserIDMiddleware identifies the browser by a long lived cookie, issuing one on first visit.
// The id is the namespace the browser's session is stored under.
func (s *Server) BrowserIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		browserID := ""
		if cookie, err := r.Cookie(browserCookieName); err == nil {
			if id, err := uuid.Parse(cookie.Value); err == nil {
				browserID = id.String()
			}
		}
		if browserID == "" {
			browserID = uuid.NewString()
			s.SetBrowserCookie(w, r, browserID)
		}

		ctx := context.WithValue(r.Context(), ContextKeyBrowserID, browserID)
		next(w, r.WithContext(ctx))
	}
}

// SessionMiddleware activates the browser's session hook, rehydrating the user from a
// stored token, and makes the resulting view available to the handler
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.sessions.Hook(browserID(r)).Activate(r.Context())
		ctx := context.WithValue(r.Context(), ContextKeySession, view)
		next(w, r.WithContext(ctx))
	}
}

// RequireSession sends unauthenticated browsers to the login page.
// It must run after SessionMiddleware.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !sessionView(r).IsAuthenticated {
				redirectSuccess(w, r, RouteLogin)
				return
			}
			next(w, r)
		}
	}
}

func browserID(r *http.Request) string {
	id, _ := r.Context().Value(ContextKeyBrowserID).(string)
	return id
}

func sessionView(r *http.Request) sessions.View {
	view, _ := r.Context().Value(ContextKeySession).(sessions.View)
	return view
}

// accessToken is the token API calls are made with, read through the browser's store
func (s *Server) accessToken(r *http.Request) string {
	return s.sessions.Store(browserID(r)).AccessToken()
}
