package auth_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/jrsteele09/go-catalog-admin/apiclient"
	"github.com/jrsteele09/go-catalog-admin/auth"
	"github.com/jrsteele09/go-catalog-admin/auth/apifake"
	apperrors "github.com/jrsteele09/go-catalog-admin/internal/errors"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/jrsteele09/go-catalog-admin/token"
	"github.com/jrsteele09/go-catalog-admin/token/tokenfake"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

type testFixture struct {
	api     *apifake.FakeAPI
	flow    *auth.Flow
	session *sessions.Session
}

func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()
	api := apifake.New()
	return &testFixture{
		api:     api,
		flow:    auth.NewFlow(api, token.NewInspector(), auth.WithNowTime(func() time.Time { return testNow })),
		session: sessions.New("sess-1", testNow, 12*time.Hour),
	}
}

func operatorToken(role string, exp time.Time) *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  tokenfake.OperatorToken("op-1", role, exp),
		RefreshToken: "refresh-1",
	}
}

func rejected(detail string) error {
	return &apiclient.APIError{StatusCode: 401, Detail: detail}
}

func TestFlow_PasswordLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("admin logs in", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginToken = operatorToken("admin", testNow.Add(time.Hour))

		require.NoError(t, f.flow.PasswordLogin(ctx, f.session, " ops@example.com ", "pw"))
		require.True(t, f.session.Authenticated)
		require.Equal(t, "refresh-1", f.session.RefreshToken)
		require.Equal(t, token.RoleAdmin, f.session.Claims.Role)
		require.Equal(t, "Asha Rao", f.session.Claims.DisplayName())
		require.Equal(t, "ops@example.com", f.api.Calls()[0].Identifier)
		require.Equal(t, auth.MsgLoginSuccess, f.session.TakeNotices()[0].Text)
	})

	t.Run("back office logs in", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginToken = operatorToken("back_office", testNow.Add(time.Hour))
		require.NoError(t, f.flow.PasswordLogin(ctx, f.session, "ops@example.com", "pw"))
		require.True(t, f.session.Authenticated)
	})

	t.Run("customer token is refused", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginToken = operatorToken("customer", testNow.Add(time.Hour))

		err := f.flow.PasswordLogin(ctx, f.session, "ops@example.com", "pw")
		require.ErrorIs(t, err, apperrors.ErrInsufficientPrivileges)
		require.EqualError(t, err, auth.MsgInsufficientPrivileges)
		require.False(t, f.session.Authenticated)
		require.Empty(t, f.session.AccessToken)
	})

	t.Run("missing fields never reach the backend", func(t *testing.T) {
		f := setupTestFixture(t)
		for _, tc := range [][2]string{{"", "pw"}, {"ops@example.com", ""}, {"   ", "pw"}} {
			err := f.flow.PasswordLogin(ctx, f.session, tc[0], tc[1])
			require.ErrorIs(t, err, apperrors.ErrValidation)
			require.EqualError(t, err, auth.MsgLoginFieldsRequired)
		}
		require.Empty(t, f.api.Calls())
	})

	t.Run("backend detail is shown", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginErr = rejected("Incorrect email/phone or password")
		err := f.flow.PasswordLogin(ctx, f.session, "ops@example.com", "bad")
		require.EqualError(t, err, "Login failed: Incorrect email/phone or password")
		require.ErrorIs(t, err, apperrors.ErrBackendRejected)
	})

	t.Run("missing detail falls back", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginErr = rejected("")
		require.EqualError(t, f.flow.PasswordLogin(ctx, f.session, "ops@example.com", "bad"), "Login failed: Login failed")
	})

	t.Run("network failure", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginErr = &apiclient.NetworkError{Err: &url.Error{Op: "Post", URL: "http://api/auth/login-admin", Err: errors.New("connection refused")}}
		err := f.flow.PasswordLogin(ctx, f.session, "ops@example.com", "pw")
		require.ErrorIs(t, err, apperrors.ErrNetwork)
		require.Contains(t, err.Error(), "Login failed: Error connecting to API: ")
	})

	t.Run("phone identifiers are normalised", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.LoginToken = operatorToken("admin", testNow.Add(time.Hour))
		require.NoError(t, f.flow.PasswordLogin(ctx, f.session, "(987) 654-3210", "pw"))
		require.Equal(t, "9876543210", f.api.Calls()[0].Identifier)
	})
}

func TestFlow_OTPLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("request then verify", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.VerifyToken = operatorToken("back_office", testNow.Add(time.Hour))

		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))
		require.Equal(t, sessions.OTPRequested, f.session.OTPLogin.Step)
		require.Equal(t, "ops@example.com", f.session.OTPLogin.Identifier)

		require.NoError(t, f.flow.VerifyOTP(ctx, f.session, "123456"))
		require.True(t, f.session.Authenticated)
		require.Equal(t, sessions.OTPIdle, f.session.OTPLogin.Step)

		calls := f.api.Calls()
		require.Equal(t, "VerifyOTP", calls[1].Method)
		require.Equal(t, "ops@example.com", calls[1].Identifier)
		require.Equal(t, "123456", calls[1].OTP)
	})

	t.Run("resend keeps identifier", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "9876543210"))
		require.NoError(t, f.flow.ResendOTP(ctx, f.session))

		require.Equal(t, sessions.OTPRequested, f.session.OTPLogin.Step)
		require.Equal(t, "9876543210", f.session.OTPLogin.Identifier)
		calls := f.api.Calls()
		require.Len(t, calls, 2)
		require.Equal(t, "9876543210", calls[1].Identifier)
	})

	t.Run("verify failure stays in otp_requested", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.VerifyOTPErr = rejected("")
		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))

		err := f.flow.VerifyOTP(ctx, f.session, "000000")
		require.EqualError(t, err, "OTP verification failed: Invalid OTP")
		require.Equal(t, sessions.OTPRequested, f.session.OTPLogin.Step)
		require.False(t, f.session.Authenticated)
	})

	t.Run("customer otp login refused", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.VerifyToken = operatorToken("customer", testNow.Add(time.Hour))
		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))

		err := f.flow.VerifyOTP(ctx, f.session, "123456")
		require.ErrorIs(t, err, apperrors.ErrInsufficientPrivileges)
		require.False(t, f.session.Authenticated)
	})

	t.Run("validation", func(t *testing.T) {
		f := setupTestFixture(t)
		require.EqualError(t, f.flow.RequestOTP(ctx, f.session, " "), auth.MsgIdentifierRequired)
		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))
		require.EqualError(t, f.flow.VerifyOTP(ctx, f.session, ""), auth.MsgOTPRequired)
	})

	t.Run("out of order", func(t *testing.T) {
		f := setupTestFixture(t)
		require.ErrorIs(t, f.flow.VerifyOTP(ctx, f.session, "1"), apperrors.ErrFlowState)
		require.ErrorIs(t, f.flow.ResendOTP(ctx, f.session), apperrors.ErrFlowState)

		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))
		require.ErrorIs(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"), apperrors.ErrFlowState)
		require.Len(t, f.api.Calls(), 1)
	})

	t.Run("cancel returns to idle", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.flow.RequestOTP(ctx, f.session, "ops@example.com"))
		f.flow.CancelOTP(f.session)
		require.Equal(t, sessions.OTPLogin{Step: sessions.OTPIdle}, f.session.OTPLogin)
	})

	t.Run("request failure keeps idle", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.RequestOTPErr = rejected("User not found")
		err := f.flow.RequestOTP(ctx, f.session, "nobody@example.com")
		require.EqualError(t, err, "Failed to send OTP: User not found")
		require.Equal(t, sessions.OTPIdle, f.session.OTPLogin.Step)
	})
}

func TestFlow_PasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("full wizard", func(t *testing.T) {
		f := setupTestFixture(t)
		f.session.LoginTab = sessions.TabForgot

		require.NoError(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"))
		require.Equal(t, sessions.ResetOTPSent, f.session.Reset.Step)

		require.NoError(t, f.flow.VerifyResetOTP(f.session, "654321"))
		require.Equal(t, sessions.ResetOTPVerified, f.session.Reset.Step)
		require.Len(t, f.api.Calls(), 1, "otp is checked by the backend on completion")

		require.NoError(t, f.flow.CompleteReset(ctx, f.session, "N3wPassword", "N3wPassword"))
		require.Equal(t, sessions.ResetFlow{Step: sessions.ResetRequest}, f.session.Reset)
		require.Equal(t, sessions.TabPassword, f.session.LoginTab)

		last := f.api.Calls()[1]
		require.Equal(t, "ResetPassword", last.Method)
		require.Equal(t, "ops@example.com", last.Identifier)
		require.Equal(t, "654321", last.OTP)
		require.Equal(t, "N3wPassword", last.NewPassword)
	})

	t.Run("steps require prior state", func(t *testing.T) {
		f := setupTestFixture(t)
		require.ErrorIs(t, f.flow.VerifyResetOTP(f.session, "1"), apperrors.ErrFlowState)
		require.ErrorIs(t, f.flow.CompleteReset(ctx, f.session, "a", "a"), apperrors.ErrFlowState)

		require.NoError(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"))
		require.ErrorIs(t, f.flow.CompleteReset(ctx, f.session, "a", "a"), apperrors.ErrFlowState)
		require.ErrorIs(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"), apperrors.ErrFlowState)
	})

	t.Run("password checks", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"))
		require.NoError(t, f.flow.VerifyResetOTP(f.session, "654321"))

		require.EqualError(t, f.flow.CompleteReset(ctx, f.session, "", ""), auth.MsgNewPasswordRequired)
		require.EqualError(t, f.flow.CompleteReset(ctx, f.session, "abc", "abd"), auth.MsgPasswordsMismatch)
		require.Len(t, f.api.Calls(), 1)
		require.Equal(t, sessions.ResetOTPVerified, f.session.Reset.Step)
	})

	t.Run("backend failure keeps wizard", func(t *testing.T) {
		f := setupTestFixture(t)
		f.api.ResetErr = rejected("Invalid or expired OTP")
		require.NoError(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"))
		require.NoError(t, f.flow.VerifyResetOTP(f.session, "111111"))

		err := f.flow.CompleteReset(ctx, f.session, "pw", "pw")
		require.EqualError(t, err, "Password reset failed: Invalid or expired OTP")
		require.Equal(t, sessions.ResetOTPVerified, f.session.Reset.Step)
	})

	t.Run("cancel clears identifier and otp", func(t *testing.T) {
		f := setupTestFixture(t)
		require.NoError(t, f.flow.RequestReset(ctx, f.session, "ops@example.com"))
		require.NoError(t, f.flow.VerifyResetOTP(f.session, "654321"))

		f.flow.CancelReset(f.session)
		require.Equal(t, sessions.ResetFlow{Step: sessions.ResetRequest}, f.session.Reset)
	})

	t.Run("identifier required", func(t *testing.T) {
		f := setupTestFixture(t)
		require.EqualError(t, f.flow.RequestReset(ctx, f.session, ""), auth.MsgResetIdentifier)
		require.Empty(t, f.api.Calls())
	})
}
