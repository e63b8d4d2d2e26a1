package http

import (
	"context"
	"net/http"
	"strings"

	"clubhub/internal/domain"
	"clubhub/internal/observability/middleware"
	"clubhub/internal/service"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	return p, ok
}

// RequireBearer rejects requests without a bearer token (401) or with one
// that fails verification (403).
func RequireBearer(auth service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := middleware.Logger(r.Context())
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				log.Info("auth missing bearer", "path", r.URL.Path)
				writeMessage(w, http.StatusUnauthorized, msgTokenRequired)
				return
			}
			p, err := auth.Verify(r.Context(), token)
			if err != nil {
				log.Info("auth invalid token", "path", r.URL.Path, "error", err)
				writeMessage(w, http.StatusForbidden, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
