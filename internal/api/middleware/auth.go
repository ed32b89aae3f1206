package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tayashahzad4-eng/Idea-validater/internal/auth"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// AccountIDKey is the context key for the authenticated account ID
	AccountIDKey ContextKey = "accountID"
	// AccountEmailKey is the context key for the authenticated email
	AccountEmailKey ContextKey = "email"

	// AccessTokenCookie carries the session token
	AccessTokenCookie = "accessToken"
	// RefreshTokenCookie carries the refresh token
	RefreshTokenCookie = "refreshToken"
)

// Auth returns a middleware that validates session tokens. It fails closed:
// requests without a verifiable token never reach the wrapped handler.
func Auth(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Bearer header first, session cookie as fallback
			var tokenStr string
			if authHeader := r.Header.Get("Authorization"); authHeader != "" {
				parts := strings.Split(authHeader, " ")
				if len(parts) == 2 && parts[0] == "Bearer" {
					tokenStr = parts[1]
				}
			} else if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
				tokenStr = cookie.Value
			}

			if tokenStr == "" {
				utils.WriteError(w, errors.Unauthorized("Missing authentication token"))
				return
			}

			claims, err := auth.ParseClaims(tokenStr, jwtSecret)
			if err != nil {
				utils.WriteError(w, errors.Unauthorized("Invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), AccountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, AccountEmailKey, claims.Email)

			AddLogField(w, "account_id", claims.AccountID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAccountID extracts the account ID from the request context
func GetAccountID(r *http.Request) (int64, bool) {
	accountID, ok := r.Context().Value(AccountIDKey).(int64)
	return accountID, ok
}

// GetAccountEmail extracts the account email from the request context
func GetAccountEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(AccountEmailKey).(string)
	return email, ok
}
