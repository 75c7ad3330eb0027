package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/agentdex/agentdex/internal/domain"
)

type callerKey struct{}

// ContextWithCaller stores the resolved caller in the context.
func ContextWithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext extracts the caller. Absent means anonymous.
func CallerFromContext(ctx context.Context) domain.Caller {
	if c, ok := ctx.Value(callerKey{}).(domain.Caller); ok {
		return c
	}
	return domain.Caller{}
}

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// CallerAuthMiddleware resolves bearer tokens into caller identities using a
// static token -> user ID map. A request without an Authorization header runs
// as the anonymous caller; a malformed or unknown token is rejected rather
// than silently downgraded to anonymous.
func CallerAuthMiddleware(tokens map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), domain.Caller{})))
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized, "unauthorized",
					"authorization header must use Bearer scheme")
				return
			}

			userID, ok := tokens[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			ctx := ContextWithCaller(r.Context(), domain.Caller{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
