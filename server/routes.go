package server

import (
	"log"
	"net/http"
	"strings"
)

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("GET /{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteLoginPassword, ChainMiddleware(s.PasswordLoginHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("GET "+RouteLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// OTP LOGIN
	s.RegisterRouteHandler("POST "+RouteOTPRequest, ChainMiddleware(s.OTPRequestHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteOTPResend, ChainMiddleware(s.OTPResendHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteOTPVerify, ChainMiddleware(s.OTPVerifyHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteOTPCancel, ChainMiddleware(s.OTPCancelHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// FORGOT PASSWORD
	s.RegisterRouteHandler("POST "+RouteResetRequest, ChainMiddleware(s.ResetRequestHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteResetVerify, ChainMiddleware(s.ResetVerifyHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteResetComplete, ChainMiddleware(s.ResetCompleteHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))
	s.RegisterRouteHandler("POST "+RouteResetCancel, ChainMiddleware(s.ResetCancelHandler(), s.HTMLMiddleWare(s.SessionMiddleware)...))

	// Admin pages (require an authenticated session)
	s.RegisterRouteHandler("GET "+RouteAdminPage, ChainMiddleware(s.AdminPageHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))

	// Entity actions
	s.RegisterRouteHandler("POST "+RouteEntityNew, ChainMiddleware(s.EntityNewHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteEntityCreate, ChainMiddleware(s.EntityCreateHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteEntityCancel, ChainMiddleware(s.EntityCancelHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowEdit, ChainMiddleware(s.RowEditHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowUpdate, ChainMiddleware(s.RowUpdateHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowCancel, ChainMiddleware(s.RowCancelHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowDelete, ChainMiddleware(s.RowDeleteHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowConfirmDelete, ChainMiddleware(s.RowConfirmDeleteHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))
	s.RegisterRouteHandler("POST "+RouteRowCancelDelete, ChainMiddleware(s.RowCancelDeleteHandler(), s.HTMLMiddleWare(s.SessionMiddleware, s.RequireSessionAuth())...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.HTMLMiddleWare(s.CacheMiddleware, s.CompressionMiddleware)...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		err := StreamFile(w, r, filePath)
		if err != nil {
			logError("GET", filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}

func logError(method, path, error string) {
	errorString := Red + error + ResetColor
	log.Printf("[%-19s] %s %s\n", colouredMethod(method), path, errorString)
}
