package apiclient

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

const (
	pathLoginAdmin           = "/auth/login-admin"
	pathRequestOTP           = "/auth/request-otp"
	pathVerifyOTP            = "/auth/verify-otp"
	pathRequestPasswordReset = "/auth/request-password-reset"
	pathResetPassword        = "/auth/reset-password"
	pathRefreshToken         = "/auth/refresh-token"
)

// IdentifierField picks the backend field for an email or phone identifier.
func IdentifierField(identifier string) string {
	if strings.Contains(identifier, "@") {
		return "email"
	}
	return "phone"
}

// LoginAdmin posts the password login form.
func (c *Client) LoginAdmin(ctx context.Context, identifier, password string) (*oauth2.Token, error) {
	var tok oauth2.Token
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathLoginAdmin,
		Form:   map[string]string{"email_or_phone": identifier, "password": password},
		Result: &tok,
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *Client) RequestOTP(ctx context.Context, identifier string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathRequestOTP,
		JSON:   map[string]string{IdentifierField(identifier): identifier},
	})
}

func (c *Client) VerifyOTP(ctx context.Context, identifier, otp string) (*oauth2.Token, error) {
	var tok oauth2.Token
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathVerifyOTP,
		JSON:   map[string]string{"otp": otp, IdentifierField(identifier): identifier},
		Result: &tok,
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}

func (c *Client) RequestPasswordReset(ctx context.Context, identifier string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathRequestPasswordReset,
		JSON:   map[string]string{"email_or_phone": identifier},
	})
}

func (c *Client) ResetPassword(ctx context.Context, identifier, otp, newPassword string) error {
	return c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathResetPassword,
		JSON: map[string]string{
			"email_or_phone": identifier,
			"otp":            otp,
			"new_password":   newPassword,
		},
	})
}

// RefreshToken exchanges a refresh token. The response may omit a new refresh token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	var tok oauth2.Token
	err := c.Do(ctx, Request{
		Method: http.MethodPost,
		Path:   pathRefreshToken,
		JSON:   map[string]string{"refresh_token": refreshToken},
		Result: &tok,
	})
	if err != nil {
		return nil, err
	}
	return &tok, nil
}
