package middleware

import (
	"context"
	"net/http"
	"strings"

	"send-push/constants"
	"send-push/utils"
)

type contextKey string

const CallerContextKey contextKey = "caller"

// Auth vérifie le token JWT de l'appelant (HS256, FUNCTION_JWT_SECRET)
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrNotAuthenticated)
				return
			}

			// Format "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrInvalidAuthToken)
				return
			}

			claims, err := utils.ValidateToken(parts[1], jwtSecret)
			if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, constants.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), CallerContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetCallerFromContext récupère les revendications de l'appelant depuis le contexte
func GetCallerFromContext(ctx context.Context) *utils.Claims {
	claims, ok := ctx.Value(CallerContextKey).(*utils.Claims)
	if !ok {
		return nil
	}
	return claims
}
