// internal/adapters/in/http/handlers/session_handler.go
package handlers

import (
	"net/http"

	"lmye/internal/adapters/in/http/middleware"
)

// SessionHandler serves GET /api/admin/session: it only reports back the
// identity the auth middleware already verified, so the back office can show
// who is signed in.
type SessionHandler struct{}

func NewSessionHandler() http.Handler {
	return &SessionHandler{}
}

func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	uid, ok := middleware.UID(r.Context())
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	email, _ := middleware.Email(r.Context())

	writeJSON(w, http.StatusOK, map[string]string{
		"uid":   uid,
		"email": email,
	})
}
