package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/rs/zerolog/log"
)

// VerifySession reports whether s is usable for an authenticated page.
func (f *Flow) VerifySession(s *sessions.Session) bool {
	return f.CheckSession(s) == nil
}

// CheckSession returns nil when s is usable for an authenticated page. A session
// with missing, malformed or expired tokens is logged out with a notice and the
// reason is returned: ErrSessionExpired, ErrMalformedToken or ErrTokenExpired.
func (f *Flow) CheckSession(s *sessions.Session) error {
	if !s.Authenticated {
		return errors.Wrapf(errors.ErrSessionExpired, "session %s not authenticated", s.ID)
	}
	if s.AccessToken == "" {
		f.forceLogout(s, sessions.NoticeWarning, MsgSessionMissing)
		return errors.Wrapf(errors.ErrSessionExpired, "session %s has no access token", s.ID)
	}

	claims, err := f.decoder.Decode(s.AccessToken)
	if err != nil {
		f.forceLogout(s, sessions.NoticeError, fmt.Sprintf("Error verifying your session: %s", err))
		return err
	}
	if token.IsExpired(claims, f.now()) {
		f.forceLogout(s, sessions.NoticeWarning, MsgSessionExpired)
		return errors.Wrapf(errors.ErrTokenExpired, "expired at %s", claims.ExpiresAt.Format(time.RFC3339))
	}

	s.Claims = claims
	return nil
}

// RefreshIfNeeded swaps in new tokens when the access token is close to expiry.
// Any failure keeps the current tokens.
func (f *Flow) RefreshIfNeeded(ctx context.Context, s *sessions.Session) {
	if !s.Authenticated || s.AccessToken == "" || s.RefreshToken == "" {
		return
	}
	claims, err := f.decoder.Decode(s.AccessToken)
	if err != nil || !token.ExpiresWithin(claims, f.now(), f.refreshThreshold) {
		return
	}

	tok, err := f.api.RefreshToken(ctx, s.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("token refresh failed")
		return
	}
	if tok == nil || tok.AccessToken == "" {
		log.Warn().Str("session", s.ID).Msg("token refresh returned no access token")
		return
	}
	newClaims, err := f.decoder.Decode(tok.AccessToken)
	if err != nil {
		log.Warn().Err(err).Str("session", s.ID).Msg("token refresh returned an unreadable token")
		return
	}

	s.AccessToken = tok.AccessToken
	if tok.RefreshToken != "" {
		s.RefreshToken = tok.RefreshToken
	}
	s.Claims = newClaims
	s.Notify(sessions.NoticeInfo, MsgSessionRefreshed)
}

// Logout clears the session. The logged out banner is only shown to operators
// who were signed in.
func (f *Flow) Logout(s *sessions.Session) {
	wasAuthenticated := s.Authenticated
	if wasAuthenticated && s.Claims != nil {
		log.Info().Str("subject", s.Claims.Subject).Msg("operator logged out")
	}
	s.Clear()
	s.ShowLogoutMessage = wasAuthenticated
}

func (f *Flow) forceLogout(s *sessions.Session, level sessions.NoticeLevel, msg string) {
	f.Logout(s)
	s.Notify(level, msg)
}
