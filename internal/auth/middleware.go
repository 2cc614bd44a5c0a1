package auth

import (
	"net/http"
	"strings"

	"github.com/pratofit/server/internal/config"
	"github.com/pratofit/server/internal/userctx"
)

// Middleware guards the API. When auth is not required, requests pass
// through and fall back to the default single-user identity.
type Middleware struct {
	config  *config.Config
	service *Service
}

func NewMiddleware(cfg *config.Config, service *Service) *Middleware {
	return &Middleware{
		config:  cfg,
		service: service,
	}
}

func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")

		if !m.config.AuthRequired {
			// Optional mode: a provided token is still validated so a stale
			// one fails loudly instead of silently mapping to the default user.
			if strings.TrimSpace(authHeader) == "" {
				next.ServeHTTP(w, r)
				return
			}
		}

		userID, err := m.authenticateHeader(authHeader)
		if err != nil {
			writeAuthError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(userctx.WithUserID(r.Context(), userID)))
	})
}

func (m *Middleware) authenticateHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrInvalidToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", ErrInvalidToken
	}

	return m.service.VerifyJWT(parts[1])
}

func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"Invalid or expired token"}}`))
}

func isPublicPath(path string) bool {
	return path == "/healthz" || strings.HasPrefix(path, "/v1/auth/")
}
