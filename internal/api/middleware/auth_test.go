package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/auth"
)

const testSecret = "test-secret"

func protectedHandler(t *testing.T, wantID int64, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		id, ok := GetAccountID(r)
		if !ok {
			t.Error("handler reached without account ID in context")
		}
		if id != wantID {
			t.Errorf("account ID = %d, want %d", id, wantID)
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth(t *testing.T) {
	tokens, err := auth.MintTokens(42, "founder@example.com", testSecret, time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint tokens: %v", err)
	}
	expired, err := auth.MintTokens(42, "founder@example.com", testSecret, -time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to mint expired token: %v", err)
	}

	tests := []struct {
		name           string
		setup          func(r *http.Request)
		expectedStatus int
		wantHandler    bool
	}{
		{
			name: "bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
			},
			expectedStatus: http.StatusOK,
			wantHandler:    true,
		},
		{
			name: "session cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tokens.AccessToken})
			},
			expectedStatus: http.StatusOK,
			wantHandler:    true,
		},
		{
			name:           "no credentials",
			setup:          func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "malformed bearer header",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "expired token",
			setup: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+expired.AccessToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "token signed with other secret",
			setup: func(r *http.Request) {
				other, _ := auth.MintTokens(42, "founder@example.com", "other-secret", time.Minute, time.Hour)
				r.Header.Set("Authorization", "Bearer "+other.AccessToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(testSecret)(protectedHandler(t, 42, &called))

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			tt.setup(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.expectedStatus)
			}
			if called != tt.wantHandler {
				t.Errorf("handler called = %v, want %v", called, tt.wantHandler)
			}
		})
	}
}
