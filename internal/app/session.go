package app

import (
	"net/http"

	"github.com/google/uuid"
)

const SessionCookieName = "session_id"

// ExistingSessionID returns the session id carried by the request, if it is
// a well-formed UUID.
func ExistingSessionID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(cookie.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// SessionID returns the request's session id, issuing a new session cookie
// when there is none. The cookie has no expiry so it ends with the browser
// session.
func SessionID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := ExistingSessionID(r); ok {
		return id
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// ClearSession expires the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
