package cart

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"SunShop/internal/auth"
	"SunShop/pkg/kit"
)

// TokenHeader carries the raw opaque session token; clients send it
// directly rather than through a bearer Authorization scheme.
const TokenHeader = "Token"

type ctxKey string

const usernameKey ctxKey = "username"

func UsernameFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(usernameKey).(string)
	return v, ok
}

// RequireSession validates the token header and resolves it to a stored
// user. A valid session pointing at a username missing from the user
// store means session and credential state have diverged; that is
// answered 404 and logged as an integrity error.
func RequireSession(sessions *auth.Sessions, users auth.UserStore, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				kit.WriteError(w, r, http.StatusUnauthorized, "missing token", nil)
				return
			}

			username, ok := sessions.Validate(token)
			if !ok {
				kit.WriteError(w, r, http.StatusUnauthorized, "invalid or expired token", nil)
				return
			}

			_, found, err := users.Get(r.Context(), username)
			if err != nil {
				log.Error("user lookup failed", zap.Error(err), zap.String("username", username))
				kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
				return
			}
			if !found {
				log.Error("session references unknown user", zap.String("username", username))
				kit.WriteError(w, r, http.StatusNotFound, "user not found", nil)
				return
			}

			ctx := context.WithValue(r.Context(), usernameKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
