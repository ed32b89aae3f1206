package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/middleware"
	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/validator"
	"github.com/tayashahzad4-eng/Idea-validater/internal/services"
	"github.com/tayashahzad4-eng/Idea-validater/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:          "test-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
			BCryptCost:         bcrypt.MinCost,
		},
	}
}

func newAuthFixture(t *testing.T) (*AuthHandler, account.Service) {
	t.Helper()

	mockRepo := testutil.NewMockAccountRepository()
	log := logger.New(logger.Config{Level: "error", Format: "json"})
	accountService := services.NewAccountService(mockRepo, bcrypt.MinCost, log)
	handler := NewAuthHandler(accountService, testConfig(), log, validator.New())
	return handler, accountService
}

func hasCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) bool {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name && c.Value != "" {
			return true
		}
	}
	return false
}

func TestAuthHandler_Signup(t *testing.T) {
	handler, _ := newAuthFixture(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "valid signup",
			body:           `{"email": "founder@example.com", "password": "longenough"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate email",
			body:           `{"email": "founder@example.com", "password": "longenough"}`,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid email",
			body:           `{"email": "not-an-email", "password": "longenough"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "short password",
			body:           `{"email": "second@example.com", "password": "short"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed JSON",
			body:           `{"email": `,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.Signup(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var resp struct {
					ID    int64  `json:"id"`
					Email string `json:"email"`
					Plan  string `json:"plan"`
				}
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Plan != account.PlanFree {
					t.Errorf("plan = %q, want %q", resp.Plan, account.PlanFree)
				}
				if bytes.Contains(rr.Body.Bytes(), []byte("password")) {
					t.Error("response leaks password field")
				}
				if !hasCookie(t, rr, middleware.AccessTokenCookie) {
					t.Error("signup did not set access token cookie")
				}
				if !hasCookie(t, rr, middleware.RefreshTokenCookie) {
					t.Error("signup did not set refresh token cookie")
				}
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	handler, accountService := newAuthFixture(t)
	if _, err := accountService.Register(context.Background(), "founder@example.com", "longenough"); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "correct credentials",
			body:           `{"email": "founder@example.com", "password": "longenough"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong password",
			body:           `{"email": "founder@example.com", "password": "wrongwrong"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown email",
			body:           `{"email": "nobody@example.com", "password": "longenough"}`,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedStatus == http.StatusOK && !hasCookie(t, rr, middleware.AccessTokenCookie) {
				t.Error("login did not set access token cookie")
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler, accountService := newAuthFixture(t)
	a, err := accountService.Register(context.Background(), "founder@example.com", "longenough")
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.AccountIDKey, a.ID))
	rr := httptest.NewRecorder()

	handler.Me(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rr.Code, rr.Body.String())
	}

	var resp struct {
		Email                string `json:"email"`
		Plan                 string `json:"plan"`
		ValidationsThisMonth *int   `json:"validations_this_month"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Email != "founder@example.com" {
		t.Errorf("email = %q, want %q", resp.Email, "founder@example.com")
	}
	if resp.ValidationsThisMonth == nil {
		t.Error("response missing validations_this_month")
	}
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	handler, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rr := httptest.NewRecorder()

	handler.Me(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	handler, _ := newAuthFixture(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rr := httptest.NewRecorder()

	handler.Logout(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var resp map[string]bool
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp["success"] {
		t.Errorf("body = %v, want success true", resp)
	}

	// Both cookies must be expired
	for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
		found := false
		for _, c := range rr.Result().Cookies() {
			if c.Name == name && c.MaxAge < 0 {
				found = true
			}
		}
		if !found {
			t.Errorf("logout did not expire %s cookie", name)
		}
	}
}

func TestAuthHandler_SessionCookieFlags(t *testing.T) {
	tests := []struct {
		name         string
		environment  string
		expectSecure bool
	}{
		{name: "default environment is secure", environment: "", expectSecure: true},
		{name: "production is secure", environment: "production", expectSecure: true},
		{name: "local development opts out", environment: "development", expectSecure: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := testutil.NewMockAccountRepository()
			log := logger.New(logger.Config{Level: "error", Format: "json"})
			accountService := services.NewAccountService(mockRepo, bcrypt.MinCost, log)
			cfg := testConfig()
			cfg.Server.Environment = tt.environment
			handler := NewAuthHandler(accountService, cfg, log, validator.New())

			body := `{"email": "founder@example.com", "password": "longenough"}`
			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewBufferString(body))
			rr := httptest.NewRecorder()
			handler.Signup(rr, req)
			if rr.Code != http.StatusCreated {
				t.Fatalf("signup status = %d (body: %s)", rr.Code, rr.Body.String())
			}

			for _, name := range []string{middleware.AccessTokenCookie, middleware.RefreshTokenCookie} {
				var cookie *http.Cookie
				for _, c := range rr.Result().Cookies() {
					if c.Name == name {
						cookie = c
					}
				}
				if cookie == nil {
					t.Fatalf("signup did not set %s cookie", name)
				}
				if !cookie.HttpOnly {
					t.Errorf("%s cookie is not HttpOnly", name)
				}
				if cookie.Secure != tt.expectSecure {
					t.Errorf("%s cookie Secure = %v, want %v", name, cookie.Secure, tt.expectSecure)
				}
			}
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	handler, accountService := newAuthFixture(t)
	if _, err := accountService.Register(context.Background(), "founder@example.com", "longenough"); err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	// Login first to get a refresh cookie
	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		bytes.NewBufferString(`{"email": "founder@example.com", "password": "longenough"}`))
	loginRR := httptest.NewRecorder()
	handler.Login(loginRR, loginReq)
	if loginRR.Code != http.StatusOK {
		t.Fatalf("login status = %d", loginRR.Code)
	}

	var refreshCookie *http.Cookie
	for _, c := range loginRR.Result().Cookies() {
		if c.Name == middleware.RefreshTokenCookie {
			refreshCookie = c
		}
	}
	if refreshCookie == nil {
		t.Fatal("login did not set refresh cookie")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(refreshCookie)
	rr := httptest.NewRecorder()

	handler.Refresh(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("refresh status = %d (body: %s)", rr.Code, rr.Body.String())
	}

	var pair struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&pair); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Error("refresh returned empty token pair")
	}

	// Garbage token is rejected
	badReq := httptest.NewRequest(http.MethodPost, "/api/auth/refresh",
		bytes.NewBufferString(`{"refreshToken": "garbage"}`))
	badRR := httptest.NewRecorder()
	handler.Refresh(badRR, badReq)
	if badRR.Code != http.StatusUnauthorized {
		t.Errorf("refresh with garbage token status = %d, want 401", badRR.Code)
	}
}
