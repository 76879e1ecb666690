package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

type contextKey string

const UsernameKey contextKey = "username"

// IdentityMiddleware reads the acting user from the X-Username header and
// puts it on the request context. There is no session or token layer; this
// service trusts its caller to say who is acting.
func IdentityMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username := strings.TrimSpace(r.Header.Get("X-Username"))
		if username == "" {
			respondWithError(w, http.StatusUnauthorized, "X-Username header required")
			return
		}

		ctx := context.WithValue(r.Context(), UsernameKey, username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUsername extracts the acting username from context.
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write([]byte(fmt.Sprintf(`{"error": "%s"}`, message)))
}
