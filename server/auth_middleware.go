package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

// ContextKeySession stores the operator's *sessions.Session
const ContextKeySession ContextKey = "session"

// SessionMiddleware loads the operator session from the cookie, or starts a new
// one, and saves it after the handler has run.
func (s *Server) SessionMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, isNew := s.loadSession(r)
		if isNew {
			s.SetSessionCookie(w, r, session.ID, int(s.config.GetMaxSessionAge().Seconds()))
		}

		ctx := context.WithValue(r.Context(), ContextKeySession, session)
		next(w, r.WithContext(ctx))

		if err := s.sessions.Upsert(context.WithoutCancel(r.Context()), session); err != nil {
			log.Err(err).Str("session", session.ID).Msg("Failed to save session")
		}
	}
}

func (s *Server) loadSession(r *http.Request) (*sessions.Session, bool) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		session, err := s.sessions.Get(r.Context(), cookie.Value)
		if err == nil {
			return session, false
		}
		if !errors.Is(err, errors.ErrSessionNotFound) {
			log.Err(err).Msg("Failed to load session")
		}
	}
	return sessions.New(uuid.NewString(), s.now(), s.config.GetMaxSessionAge()), true
}

// rotateSession moves the session state to a fresh ID and drops the old entry,
// so an ID handed out before login (or kept after logout) is never authenticated.
// The new ID is saved by SessionMiddleware once the handler returns.
func (s *Server) rotateSession(w http.ResponseWriter, r *http.Request, session *sessions.Session) {
	oldID := session.ID
	now := s.now()
	session.ID = uuid.NewString()
	session.CreatedAt = now
	session.ExpiresAt = now.Add(s.config.GetMaxSessionAge())

	if err := s.sessions.Delete(r.Context(), oldID); err != nil {
		log.Err(err).Str("session", oldID).Msg("Failed to delete replaced session")
	}
	s.SetSessionCookie(w, r, session.ID, int(s.config.GetMaxSessionAge().Seconds()))
}

// sessionFrom returns the session placed on the request by SessionMiddleware.
func sessionFrom(r *http.Request) *sessions.Session {
	session, _ := r.Context().Value(ContextKeySession).(*sessions.Session)
	return session
}

// RequireSessionAuth refreshes a nearly expired token, then checks the session
// still holds a usable token. Anything else goes back to the login page.
// Must run after SessionMiddleware.
func (s *Server) RequireSessionAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session := sessionFrom(r)
			if session == nil {
				redirectSuccess(w, r, RouteLogin)
				return
			}

			s.flow.RefreshIfNeeded(r.Context(), session)
			wasAuthenticated := session.Authenticated
			if err := s.flow.CheckSession(session); err != nil {
				log.Debug().Err(err).Str("path", r.URL.Path).Msg("session rejected")
				if wasAuthenticated {
					s.rotateSession(w, r, session)
				}
				redirectSuccess(w, r, RouteLogin)
				return
			}

			next(w, r)
		}
	}
}
