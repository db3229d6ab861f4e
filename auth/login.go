package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

type passwordLoginForm struct {
	Identifier string `validate:"required"`
	Password   string `validate:"required"`
}

var passwordLoginMessages = forms.Messages{
	"Identifier": MsgLoginFieldsRequired,
	"Password":   MsgLoginFieldsRequired,
}

// PasswordLogin authenticates with an email or phone and password.
func (f *Flow) PasswordLogin(ctx context.Context, s *sessions.Session, identifier, password string) error {
	form := passwordLoginForm{Identifier: strings.TrimSpace(identifier), Password: password}
	if err := forms.Validate(form, passwordLoginMessages); err != nil {
		return err
	}

	tok, err := f.api.LoginAdmin(ctx, NormalizeIdentifier(form.Identifier), form.Password)
	if err != nil {
		return failure("Login failed", "Login failed", err)
	}
	if err := f.establish(s, tok); err != nil {
		return err
	}
	s.Notify(sessions.NoticeSuccess, MsgLoginSuccess)
	return nil
}

// establish decodes the issued token and, if the role may use the console,
// stores the tokens on the session. A rejected role leaves the session untouched.
func (f *Flow) establish(s *sessions.Session, tok *oauth2.Token) error {
	if tok == nil || tok.AccessToken == "" {
		return &FlowError{Message: "Login failed: no access token received", Err: errors.ErrMalformedToken}
	}
	claims, err := f.decoder.Decode(tok.AccessToken)
	if err != nil {
		return &FlowError{Message: "Login failed: invalid access token received", Err: err}
	}
	if !claims.Role.CanAccessConsole() {
		log.Warn().Str("subject", claims.Subject).Str("role", string(claims.Role)).Msg("console login refused")
		return &FlowError{Message: MsgInsufficientPrivileges, Err: errors.ErrInsufficientPrivileges}
	}

	s.Authenticated = true
	s.AccessToken = tok.AccessToken
	s.RefreshToken = tok.RefreshToken
	s.Claims = claims
	s.ShowLogoutMessage = false
	s.OTPLogin = sessions.OTPLogin{Step: sessions.OTPIdle}
	s.Reset = sessions.ResetFlow{Step: sessions.ResetRequest}

	log.Info().Str("subject", claims.Subject).Str("role", string(claims.Role)).Msg("operator logged in")
	return nil
}
