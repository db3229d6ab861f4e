package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

type newPasswordForm struct {
	NewPassword string `validate:"required"`
	Confirm     string `validate:"eqfield=NewPassword"`
}

var resetMessages = forms.Messages{
	"Identifier":      MsgResetIdentifier,
	"OTP":             MsgOTPRequired,
	"NewPassword":     MsgNewPasswordRequired,
	"Confirm.eqfield": MsgPasswordsMismatch,
}

// RequestReset starts the forgot-password wizard: request -> otp_sent.
func (f *Flow) RequestReset(ctx context.Context, s *sessions.Session, identifier string) error {
	if s.Reset.Step != sessions.ResetRequest {
		return outOfOrder("reset already requested")
	}
	form := identifierForm{Identifier: strings.TrimSpace(identifier)}
	if err := forms.Validate(form, resetMessages); err != nil {
		return err
	}

	normalized := NormalizeIdentifier(form.Identifier)
	if err := f.api.RequestPasswordReset(ctx, normalized); err != nil {
		return failure("Password reset request failed", "Failed to send reset OTP", err)
	}
	s.Reset = sessions.ResetFlow{Step: sessions.ResetOTPSent, Identifier: normalized}
	s.Notify(sessions.NoticeSuccess, MsgResetOTPSent)
	return nil
}

// VerifyResetOTP captures the code: otp_sent -> otp_verified. The backend checks
// the code when the new password is submitted.
func (f *Flow) VerifyResetOTP(s *sessions.Session, otp string) error {
	if s.Reset.Step != sessions.ResetOTPSent || s.Reset.Identifier == "" {
		return outOfOrder("reset otp before request")
	}
	form := otpForm{OTP: strings.TrimSpace(otp)}
	if err := forms.Validate(form, resetMessages); err != nil {
		return err
	}
	s.Reset.OTP = form.OTP
	s.Reset.Step = sessions.ResetOTPVerified
	s.Notify(sessions.NoticeSuccess, MsgResetOTPVerified)
	return nil
}

// CompleteReset sets the new password: otp_verified -> completed. The wizard is
// cleared and the login tab switches back to password login.
func (f *Flow) CompleteReset(ctx context.Context, s *sessions.Session, newPassword, confirm string) error {
	if s.Reset.Step != sessions.ResetOTPVerified || s.Reset.Identifier == "" || s.Reset.OTP == "" {
		return outOfOrder("new password before otp")
	}
	form := newPasswordForm{NewPassword: newPassword, Confirm: confirm}
	if err := forms.Validate(form, resetMessages); err != nil {
		return err
	}

	if err := f.api.ResetPassword(ctx, s.Reset.Identifier, s.Reset.OTP, form.NewPassword); err != nil {
		return failure("Password reset failed", "Failed to reset password", err)
	}
	log.Info().Str("identifier", s.Reset.Identifier).Msg("password reset completed")

	s.Reset = sessions.ResetFlow{Step: sessions.ResetRequest}
	s.LoginTab = sessions.TabPassword
	s.Notify(sessions.NoticeSuccess, MsgResetComplete)
	return nil
}

// CancelReset returns to the request step, forgetting identifier and code.
func (f *Flow) CancelReset(s *sessions.Session) {
	s.Reset = sessions.ResetFlow{Step: sessions.ResetRequest}
}
