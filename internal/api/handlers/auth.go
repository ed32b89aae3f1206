package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/dto"
	"github.com/tayashahzad4-eng/Idea-validater/internal/api/middleware"
	"github.com/tayashahzad4-eng/Idea-validater/internal/auth"
	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/validator"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	accountService account.Service
	config         *config.Config
	logger         *logger.Logger
	validator      *validator.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	accountService account.Service,
	cfg *config.Config,
	log *logger.Logger,
	val *validator.Validator,
) *AuthHandler {
	return &AuthHandler{
		accountService: accountService,
		config:         cfg,
		logger:         log,
		validator:      val,
	}
}

// Signup handles account creation
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	created, err := h.accountService.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Signup failed")
		utils.WriteAppError(w, err)
		return
	}

	tokens, err := auth.MintTokens(
		created.ID,
		created.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint tokens")
		utils.WriteError(w, errors.Internal("Failed to create session", err))
		return
	}

	h.setSessionCookies(w, tokens)
	h.logger.Infof("Account created: %s", created.Email)
	utils.WriteJSON(w, http.StatusCreated, dto.NewAccountResponse(created))
}

// Login handles login with email and password
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, errors.BadRequest("Invalid request body"))
		return
	}

	if validationErrs := h.validator.Validate(req); len(validationErrs) > 0 {
		utils.WriteError(w, errors.ValidationError("Validation failed", validationErrs))
		return
	}

	authenticated, err := h.accountService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"email": req.Email,
		}).Warn("Authentication failed")
		utils.WriteAppError(w, err)
		return
	}

	tokens, err := auth.MintTokens(
		authenticated.ID,
		authenticated.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint tokens")
		utils.WriteError(w, errors.Internal("Failed to create session", err))
		return
	}

	h.setSessionCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, dto.NewAccountResponse(authenticated))
}

// Me returns the authenticated account with its usage counters
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	acct, err := h.accountService.GetByID(r.Context(), accountID)
	if err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.NewMeResponse(acct))
}

// Refresh exchanges a valid refresh token for a new token pair
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := ""
	if cookie, err := r.Cookie(middleware.RefreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req dto.RefreshTokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		utils.WriteError(w, errors.Unauthorized("Missing refresh token"))
		return
	}

	claims, err := auth.ParseClaims(refreshToken, h.config.Auth.JWTSecret)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired refresh token"))
		return
	}

	// Re-read the account so a deleted account cannot refresh forever.
	acct, err := h.accountService.GetByID(r.Context(), claims.AccountID)
	if err != nil {
		utils.WriteError(w, errors.Unauthorized("Invalid or expired refresh token"))
		return
	}

	tokens, err := auth.MintTokens(
		acct.ID,
		acct.Email,
		h.config.Auth.JWTSecret,
		h.config.Auth.AccessTokenExpiry,
		h.config.Auth.RefreshTokenExpiry,
	)
	if err != nil {
		h.logger.ErrorWithErr(err, "Failed to mint tokens")
		utils.WriteError(w, errors.Internal("Failed to refresh session", err))
		return
	}

	h.setSessionCookies(w, tokens)
	utils.WriteJSON(w, http.StatusOK, tokens)
}

// Logout clears the session cookies
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearCookie(w, middleware.AccessTokenCookie)
	h.clearCookie(w, middleware.RefreshTokenCookie)
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AuthHandler) setSessionCookies(w http.ResponseWriter, tokens auth.TokenPair) {
	// Secure by default; only local development over plain HTTP opts out.
	secure := h.config.Server.Environment != "development"
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.AccessTokenCookie,
		Value:    tokens.AccessToken,
		Path:     "/",
		MaxAge:   int(h.config.Auth.AccessTokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.RefreshTokenCookie,
		Value:    tokens.RefreshToken,
		Path:     "/",
		MaxAge:   int(h.config.Auth.RefreshTokenExpiry / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
