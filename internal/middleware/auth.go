package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/service"
)

type contextKey string

const (
	// ContextKeyAdmin is the key for storing the authenticated admin in request context.
	ContextKeyAdmin contextKey = "admin"
)

// AuthMiddleware handles Bearer token authentication for admin routes.
type AuthMiddleware struct {
	authService *service.AuthService
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(authService *service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Authenticate validates the Bearer token and adds the admin to request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			unauthorized(w, "invalid authorization header format")
			return
		}

		token := parts[1]
		if token == "" {
			unauthorized(w, "missing token")
			return
		}

		admin, err := m.authService.VerifyToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidToken) {
				unauthorized(w, "invalid or expired token")
				return
			}
			http.Error(w, `{"message":"internal server error"}`, http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyAdmin, admin)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// unauthorized writes a 401 with the API's {message} error envelope so clients
// can surface the reason the same way as every other backend error.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"message":"` + message + `"}`))
}

// GetAdminFromContext retrieves the authenticated admin from request context.
func GetAdminFromContext(ctx context.Context) (*domain.Admin, error) {
	admin, ok := ctx.Value(ContextKeyAdmin).(*domain.Admin)
	if !ok || admin == nil {
		return nil, domain.ErrInvalidToken
	}
	return admin, nil
}
