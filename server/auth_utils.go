package server

import (
	"net/http"
	"net/url"
	"strings"
)

// sessionCookieName is the name of the cookie carrying the console session ID
const sessionCookieName = "catalog_admin_session"

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, sessionID string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// returnPath sends an entity action back to its list, keeping the filters the
// form carried in "return_query".
func returnPath(r *http.Request, kind string) string {
	path := adminPath(kind)
	raw := strings.TrimPrefix(r.FormValue("return_query"), "?")
	if raw == "" {
		return path
	}
	query, err := url.ParseQuery(raw)
	if err != nil {
		return path
	}
	return path + "?" + query.Encode()
}
