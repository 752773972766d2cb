// internal/adapters/in/http/middleware/session.go
package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionCookie names the storefront session cookie. Each browser session
// owns exactly one cart; the cookie value keys its persisted snapshot.
const SessionCookie = "lmye_session"

var ctxKeySession = ctxKey{name: "sessionId"}

// Session assigns a session id cookie to first-time visitors and stores the
// id in the request context for the cart handlers.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := ""
		if c, err := r.Cookie(SessionCookie); err == nil {
			sid = c.Value
		}
		if sid == "" {
			sid = uuid.NewString()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    sid,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), ctxKeySession, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionID returns the storefront session id for the request.
func SessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeySession).(string)
	return v, ok && v != ""
}
