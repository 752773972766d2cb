// internal/adapters/in/http/middleware/auth.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseAuthClient is an alias so callers can take
// *middleware.FirebaseAuthClient without importing the firebase SDK.
type FirebaseAuthClient = fbauth.Client

// context key uses a dedicated type to avoid collisions (SA1029).
type ctxKey struct{ name string }

var (
	ctxKeyUID   = ctxKey{name: "uid"}
	ctxKeyEmail = ctxKey{name: "email"}
)

// AuthMiddleware verifies
//
//   - Authorization: Bearer <ID_TOKEN>
//
// against Firebase Auth (Google sign-in) and, when an admin allowlist is
// configured, checks the token email against it. uid/email are stored in the
// request context for handlers.
type AuthMiddleware struct {
	FirebaseAuth *FirebaseAuthClient

	// IsAdmin gates the account email; nil means any authenticated account.
	IsAdmin func(email string) bool
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.FirebaseAuth == nil {
			http.Error(w, "auth middleware not initialized", http.StatusServiceUnavailable)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			http.Error(w, "unauthorized: missing bearer token", http.StatusUnauthorized)
			return
		}

		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			http.Error(w, "unauthorized: empty bearer token", http.StatusUnauthorized)
			return
		}

		token, err := m.FirebaseAuth.VerifyIDToken(r.Context(), idToken)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		uid := strings.TrimSpace(token.UID)
		if uid == "" {
			http.Error(w, "invalid uid in token", http.StatusUnauthorized)
			return
		}

		email := ""
		if emailRaw, ok := token.Claims["email"]; ok {
			if e, ok2 := emailRaw.(string); ok2 {
				email = strings.TrimSpace(e)
			}
		}

		if m.IsAdmin != nil && !m.IsAdmin(email) {
			log.Printf("[auth] forbidden: %s is not an admin", email)
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyUID, uid)
		if email != "" {
			ctx = context.WithValue(ctx, ctxKeyEmail, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UID returns the authenticated Firebase uid, if any.
func UID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyUID).(string)
	return v, ok && v != ""
}

// Email returns the authenticated account email, if any.
func Email(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ctxKeyEmail).(string)
	return v, ok && v != ""
}
