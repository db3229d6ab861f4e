package apifake

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

// Call records one request made against FakeAPI.
type Call struct {
	Method      string
	Identifier  string
	Password    string
	OTP         string
	NewPassword string
	Token       string
}

// FakeAPI is a scriptable stand-in for the backend auth endpoints.
type FakeAPI struct {
	mu    sync.Mutex
	calls []Call

	LoginToken     *oauth2.Token
	VerifyToken    *oauth2.Token
	RefreshedToken *oauth2.Token

	LoginErr        error
	RequestOTPErr   error
	VerifyOTPErr    error
	RequestResetErr error
	ResetErr        error
	RefreshErr      error
}

func New() *FakeAPI {
	return &FakeAPI{}
}

func (f *FakeAPI) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeAPI) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *FakeAPI) LoginAdmin(_ context.Context, identifier, password string) (*oauth2.Token, error) {
	f.record(Call{Method: "LoginAdmin", Identifier: identifier, Password: password})
	return f.LoginToken, f.LoginErr
}

func (f *FakeAPI) RequestOTP(_ context.Context, identifier string) error {
	f.record(Call{Method: "RequestOTP", Identifier: identifier})
	return f.RequestOTPErr
}

func (f *FakeAPI) VerifyOTP(_ context.Context, identifier, otp string) (*oauth2.Token, error) {
	f.record(Call{Method: "VerifyOTP", Identifier: identifier, OTP: otp})
	return f.VerifyToken, f.VerifyOTPErr
}

func (f *FakeAPI) RequestPasswordReset(_ context.Context, identifier string) error {
	f.record(Call{Method: "RequestPasswordReset", Identifier: identifier})
	return f.RequestResetErr
}

func (f *FakeAPI) ResetPassword(_ context.Context, identifier, otp, newPassword string) error {
	f.record(Call{Method: "ResetPassword", Identifier: identifier, OTP: otp, NewPassword: newPassword})
	return f.ResetErr
}

func (f *FakeAPI) RefreshToken(_ context.Context, refreshToken string) (*oauth2.Token, error) {
	f.record(Call{Method: "RefreshToken", Token: refreshToken})
	return f.RefreshedToken, f.RefreshErr
}
