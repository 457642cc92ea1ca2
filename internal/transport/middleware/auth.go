package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/babylog/babylog-backend/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateToken(token string) (uuid.UUID, error)
}

// Auth puts the caregiver ID from a valid Bearer token into the request
// context. Requests without a token pass through anonymously; services
// reject them with ErrUnauthorized where identity is required.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			caregiverID, err := validator.ValidateToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			ctx := ctxutil.WithCaregiverID(r.Context(), caregiverID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return auth[len(prefix):]
}
