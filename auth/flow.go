package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/token"
	"golang.org/x/oauth2"
)

// API is the subset of the backend used by the auth flows.
type API interface {
	LoginAdmin(ctx context.Context, identifier, password string) (*oauth2.Token, error)
	RequestOTP(ctx context.Context, identifier string) error
	VerifyOTP(ctx context.Context, identifier, otp string) (*oauth2.Token, error)
	RequestPasswordReset(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, identifier, otp, newPassword string) error
	RefreshToken(ctx context.Context, refreshToken string) (*oauth2.Token, error)
}

// Decoder turns a raw access token into claims.
type Decoder interface {
	Decode(rawToken string) (*token.Claims, error)
}

// Flow drives login, OTP login, password reset and the session lifecycle.
// It holds no per-operator state; everything lives on the session passed in.
type Flow struct {
	api              API
	decoder          Decoder
	now              func() time.Time
	refreshThreshold time.Duration
}

type Option func(*Flow)

func WithNowTime(now func() time.Time) Option {
	return func(f *Flow) {
		f.now = now
	}
}

// WithRefreshThreshold sets how close to expiry a token is refreshed.
func WithRefreshThreshold(d time.Duration) Option {
	return func(f *Flow) {
		f.refreshThreshold = d
	}
}

func NewFlow(api API, decoder Decoder, opts ...Option) *Flow {
	f := &Flow{
		api:              api,
		decoder:          decoder,
		now:              time.Now,
		refreshThreshold: 5 * time.Minute,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FlowError carries the operator facing message for a failed step.
type FlowError struct {
	Message string
	Err     error
}

func (e *FlowError) Error() string {
	return e.Message
}

func (e *FlowError) Unwrap() error {
	return e.Err
}

// failure builds the message for a failed backend call: "<action>: <detail>".
func failure(action, fallback string, err error) error {
	var (
		apiErr *apiclient.APIError
		netErr *apiclient.NetworkError
		reason string
	)
	switch {
	case errors.As(err, &apiErr):
		reason = apiErr.Detail
		if reason == "" {
			reason = fallback
		}
	case errors.As(err, &netErr):
		reason = fmt.Sprintf("Error connecting to API: %s", netErr.Err)
	default:
		reason = err.Error()
	}
	return &FlowError{Message: fmt.Sprintf("%s: %s", action, reason), Err: err}
}

func outOfOrder(step string) error {
	return &FlowError{Message: "Please start again.", Err: errors.Wrapf(errors.ErrFlowState, "%s", step)}
}
