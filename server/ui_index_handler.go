package server

import (
	"net/http"

	"github.com/jrsteele09/go-catalog-admin/navigation"
)

// IndexHandler sends signed in operators to their last page and everyone else to the login page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session := sessionFrom(r)
		if !session.Authenticated {
			redirectSuccess(w, r, RouteLogin)
			return
		}
		redirectSuccess(w, r, adminPath(string(navigation.Parse(session.CurrentPage))))
	}
}
