package auth

import (
	"context"
	"strings"

	"github.com/jrsteele09/go-catalog-admin/internal/forms"
	"github.com/jrsteele09/go-catalog-admin/sessions"
)

type identifierForm struct {
	Identifier string `validate:"required"`
}

type otpForm struct {
	OTP string `validate:"required"`
}

var otpMessages = forms.Messages{
	"Identifier": MsgIdentifierRequired,
	"OTP":        MsgOTPRequired,
}

// RequestOTP sends a one-time password to the identifier and moves the flow to otp_requested.
func (f *Flow) RequestOTP(ctx context.Context, s *sessions.Session, identifier string) error {
	if s.OTPLogin.Step != sessions.OTPIdle {
		return outOfOrder("otp already requested")
	}
	form := identifierForm{Identifier: strings.TrimSpace(identifier)}
	if err := forms.Validate(form, otpMessages); err != nil {
		return err
	}

	normalized := NormalizeIdentifier(form.Identifier)
	if err := f.api.RequestOTP(ctx, normalized); err != nil {
		return failure("Failed to send OTP", "Failed to send OTP", err)
	}
	s.OTPLogin = sessions.OTPLogin{Step: sessions.OTPRequested, Identifier: normalized}
	s.Notify(sessions.NoticeSuccess, MsgOTPSent)
	return nil
}

// ResendOTP asks for a new code for the identifier captured by RequestOTP.
func (f *Flow) ResendOTP(ctx context.Context, s *sessions.Session) error {
	if s.OTPLogin.Step != sessions.OTPRequested || s.OTPLogin.Identifier == "" {
		return outOfOrder("resend before request")
	}
	if err := f.api.RequestOTP(ctx, s.OTPLogin.Identifier); err != nil {
		return failure("Failed to resend OTP", "Failed to send OTP", err)
	}
	s.Notify(sessions.NoticeSuccess, MsgOTPResent)
	return nil
}

// VerifyOTP logs in with the code. On failure the flow stays in otp_requested.
func (f *Flow) VerifyOTP(ctx context.Context, s *sessions.Session, otp string) error {
	if s.OTPLogin.Step != sessions.OTPRequested || s.OTPLogin.Identifier == "" {
		return outOfOrder("verify before request")
	}
	form := otpForm{OTP: strings.TrimSpace(otp)}
	if err := forms.Validate(form, otpMessages); err != nil {
		return err
	}

	tok, err := f.api.VerifyOTP(ctx, s.OTPLogin.Identifier, form.OTP)
	if err != nil {
		return failure("OTP verification failed", "Invalid OTP", err)
	}
	if err := f.establish(s, tok); err != nil {
		return err
	}
	s.Notify(sessions.NoticeSuccess, MsgOTPVerified)
	return nil
}

// CancelOTP returns to the identifier step.
func (f *Flow) CancelOTP(s *sessions.Session) {
	s.OTPLogin = sessions.OTPLogin{Step: sessions.OTPIdle}
}
