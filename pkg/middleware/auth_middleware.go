package middleware

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/AbdellahHatouchi/property-management/pkg/utils"
)

type contextKey string

const ContextKeyUserID = contextKey("userID")

// AuthMiddleware guards owner endpoints. The access token is read from
// `Authorization: Bearer ...`. Anything short of a valid token is answered
// with 403 Unauthenticated.
func AuthMiddleware(pub *rsa.PublicKey) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, err := extractAccessToken(r)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeUnauthenticated, "Unauthenticated", nil, err,
				)
				return
			}

			tok, vErr := ValidateToken(tokenStr, pub)
			if vErr != nil {
				if errors.Is(vErr, jwt.ErrTokenExpired) {
					utils.RespondErrorWithCode(
						w, http.StatusForbidden, utils.ErrCodeTokenExpired, "Token expired", nil, vErr,
					)
					return
				}
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeUnauthenticated, "Unauthenticated", nil, vErr,
				)
				return
			}

			claims := tok.Claims.(jwt.MapClaims)
			sub, _ := claims["sub"].(string)
			userID, err := uuid.Parse(sub)
			if err != nil {
				utils.RespondErrorWithCode(
					w, http.StatusForbidden, utils.ErrCodeUnauthenticated, "Unauthenticated", nil, err,
				)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated user set by AuthMiddleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(ContextKeyUserID).(uuid.UUID)
	return id, ok
}

func extractAccessToken(r *http.Request) (string, error) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", errors.New("missing Authorization header")
	}
	tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	if tok == "" {
		return "", errors.New("empty bearer token")
	}
	return tok, nil
}
