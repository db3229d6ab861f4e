package auth

const (
	MsgLoginFieldsRequired    = "Please enter your email/phone and password"
	MsgIdentifierRequired     = "Please enter your email or phone number"
	MsgResetIdentifier        = "Please enter your email or phone"
	MsgOTPRequired            = "Please enter the OTP"
	MsgNewPasswordRequired    = "Please enter a new password"
	MsgPasswordsMismatch      = "Passwords do not match"
	MsgInsufficientPrivileges = "Access denied: Insufficient privileges to access admin panel"

	MsgLoginSuccess     = "Login successful!"
	MsgOTPSent          = "OTP sent successfully!"
	MsgOTPResent        = "OTP resent successfully!"
	MsgOTPVerified      = "OTP verification successful!"
	MsgResetOTPSent     = "Password reset OTP sent successfully!"
	MsgResetOTPVerified = "OTP verified successfully!"
	MsgResetComplete    = "Password reset successfully! Please login with your new password."

	MsgSessionMissing   = "Your session is missing authentication data. Please login again."
	MsgSessionExpired   = "Your session has expired. Please login again."
	MsgSessionRefreshed = "Session refreshed"
	MsgLoggedOut        = "You have been logged out."
)
