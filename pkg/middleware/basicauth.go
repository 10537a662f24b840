package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type principalKey struct{}

// Principal identifies an authenticated caller.
type Principal struct {
	Username string
	Role     string
}

// Authenticator validates HTTP Basic credentials and resolves the caller.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Principal, error)
}

// BasicAuth returns middleware that requires valid HTTP Basic credentials
// on every request. Failed or missing credentials receive a 401 with a
// WWW-Authenticate challenge; on success the principal is attached to the
// request context.
func BasicAuth(auth Authenticator, realm string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				challenge(w, realm)
				return
			}

			principal, err := auth.Authenticate(r.Context(), username, password)
			if err != nil {
				logger.Info("authentication rejected", "username", username, "error", err)
				challenge(w, realm)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFrom extracts the authenticated principal from the context.
// Returns nil when the request did not pass through BasicAuth.
func PrincipalFrom(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}

func challenge(w http.ResponseWriter, realm string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="`+realm+`", charset="UTF-8"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "unknown user"})
}
