package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/promanage/promanage-api/internal/api/shared"
	"github.com/promanage/promanage-api/internal/service/auth"
	"github.com/promanage/promanage-api/internal/store"
)

// AuthMiddleware provides JWT authentication for routes. A passing request
// costs one user lookup: the token's user ID is resolved against the store
// and the full user record is attached to the request context, so a token
// for a deleted account is rejected even while the signature is still valid.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService, userStore store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
	}
}

// Authenticate validates the bearer token from the Authorization header,
// resolves the user it references, and adds the user record to the request
// context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header missing")
			return
		}

		// Malformed headers fail the same way as bad tokens; the client
		// learns nothing about which part was wrong.
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), parts[1])
		if err != nil {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := m.userStore.GetByID(r.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "User not found")
				return
			}
			slog.Error("failed to resolve authenticated user",
				"error", err,
				"user_id", claims.UserID)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Authentication error")
			return
		}

		ctx := shared.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
