package server

import (
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/auth"
	"github.com/jrsteele09/go-catalog-admin/navigation"
	"github.com/jrsteele09/go-catalog-admin/sessions"
	"github.com/rs/zerolog/log"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	AppName         string
	Tab             sessions.LoginTab
	OTPRequested    bool
	OTPIdentifier   string
	ResetStep       sessions.ResetStep
	ResetIdentifier string
	Notices         []sessions.Notice
	LogoutMessage   string
}

// LoginPageHandler displays the login page (GET /login?tab=password|otp|forgot)
func (s *Server) LoginPageHandler() http.HandlerFunc {
	loginTmpl := mustParseTemplate("login.html")

	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		if session.Authenticated && s.flow.VerifySession(session) {
			redirectSuccess(w, r, adminPath(string(navigation.PageDashboard)))
			return
		}

		switch tab := sessions.LoginTab(r.URL.Query().Get("tab")); tab {
		case sessions.TabPassword, sessions.TabOTP, sessions.TabForgot:
			session.LoginTab = tab
		}

		data := LoginPageData{
			AppName:         s.config.GetAppName(),
			Tab:             session.LoginTab,
			OTPRequested:    session.OTPLogin.Step == sessions.OTPRequested,
			OTPIdentifier:   session.OTPLogin.Identifier,
			ResetStep:       session.Reset.Step,
			ResetIdentifier: session.Reset.Identifier,
			Notices:         session.TakeNotices(),
		}
		if session.ShowLogoutMessage {
			data.LogoutMessage = auth.MsgLoggedOut
			session.ShowLogoutMessage = false
		}

		renderHTML(w, http.StatusOK, loginTmpl, data)
	}
}

// loginAction runs one step of a login flow and redirects: to success on
// success, back to the login tab with the error as a notice otherwise.
func (s *Server) loginAction(tab sessions.LoginTab, success string, step func(r *http.Request, session *sessions.Session) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		wasAuthenticated := session.Authenticated
		session.LoginTab = tab

		if err := r.ParseForm(); err != nil {
			session.Notify(sessions.NoticeError, "Invalid form data")
			redirectSuccess(w, r, RouteLogin)
			return
		}
		if err := step(r, session); err != nil {
			log.Warn().Err(err).Str("path", r.URL.Path).Msg("login step failed")
			session.Notify(sessions.NoticeError, err.Error())
			redirectSuccess(w, r, RouteLogin)
			return
		}
		if session.Authenticated && !wasAuthenticated {
			s.rotateSession(w, r, session)
		}
		redirectSuccess(w, r, success)
	}
}

// PasswordLoginHandler processes the email/phone + password form
func (s *Server) PasswordLoginHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabPassword, adminPath(string(navigation.PageDashboard)), func(r *http.Request, session *sessions.Session) error {
		return s.flow.PasswordLogin(r.Context(), session, r.FormValue("identifier"), r.FormValue("password"))
	})
}

func (s *Server) OTPRequestHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabOTP, RouteLogin, func(r *http.Request, session *sessions.Session) error {
		return s.flow.RequestOTP(r.Context(), session, r.FormValue("identifier"))
	})
}

func (s *Server) OTPResendHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabOTP, RouteLogin, func(r *http.Request, session *sessions.Session) error {
		return s.flow.ResendOTP(r.Context(), session)
	})
}

func (s *Server) OTPVerifyHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabOTP, adminPath(string(navigation.PageDashboard)), func(r *http.Request, session *sessions.Session) error {
		return s.flow.VerifyOTP(r.Context(), session, r.FormValue("otp"))
	})
}

func (s *Server) OTPCancelHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabOTP, RouteLogin, func(_ *http.Request, session *sessions.Session) error {
		s.flow.CancelOTP(session)
		return nil
	})
}

func (s *Server) ResetRequestHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabForgot, RouteLogin, func(r *http.Request, session *sessions.Session) error {
		return s.flow.RequestReset(r.Context(), session, r.FormValue("identifier"))
	})
}

func (s *Server) ResetVerifyHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabForgot, RouteLogin, func(r *http.Request, session *sessions.Session) error {
		return s.flow.VerifyResetOTP(session, r.FormValue("otp"))
	})
}

// ResetCompleteHandler sets the new password; the flow switches the page back to the password tab.
func (s *Server) ResetCompleteHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabForgot, RouteLogin, func(r *http.Request, session *sessions.Session) error {
		return s.flow.CompleteReset(r.Context(), session, r.FormValue("new_password"), r.FormValue("confirm_password"))
	})
}

func (s *Server) ResetCancelHandler() http.HandlerFunc {
	return s.loginAction(sessions.TabForgot, RouteLogin, func(_ *http.Request, session *sessions.Session) error {
		s.flow.CancelReset(session)
		return nil
	})
}

func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		wasAuthenticated := session.Authenticated
		s.flow.Logout(session)
		if wasAuthenticated {
			s.rotateSession(w, r, session)
		}
		redirectSuccess(w, r, RouteLogin)
	}
}
