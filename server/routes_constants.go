package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Login & Logout
	RouteLogin         = "/login"
	RouteLoginPassword = "/login/password"
	RouteLogout        = "/logout"

	// OTP login
	RouteOTPRequest = "/login/otp/request"
	RouteOTPResend  = "/login/otp/resend"
	RouteOTPVerify  = "/login/otp/verify"
	RouteOTPCancel  = "/login/otp/cancel"

	// Forgot password wizard
	RouteResetRequest  = "/login/reset/request"
	RouteResetVerify   = "/login/reset/verify"
	RouteResetComplete = "/login/reset/complete"
	RouteResetCancel   = "/login/reset/cancel"

	// Admin pages
	RouteAdmin     = "/admin/"
	RouteAdminPage = "/admin/{page}"

	// Entity actions (create form)
	RouteEntityNew    = "/admin/{entity}/new"
	RouteEntityCreate = "/admin/{entity}/create"
	RouteEntityCancel = "/admin/{entity}/cancel"

	// Entity actions (one row)
	RouteRowEdit          = "/admin/{entity}/{id}/edit"
	RouteRowUpdate        = "/admin/{entity}/{id}/update"
	RouteRowCancel        = "/admin/{entity}/{id}/cancel"
	RouteRowDelete        = "/admin/{entity}/{id}/delete"
	RouteRowConfirmDelete = "/admin/{entity}/{id}/confirm-delete"
	RouteRowCancelDelete  = "/admin/{entity}/{id}/cancel-delete"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)

// adminPath is the page URL for a menu key or entity kind.
func adminPath(page string) string {
	return RouteAdmin + page
}
