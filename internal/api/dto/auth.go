package dto

import (
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
)

// SignupRequest represents a signup request
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshTokenRequest represents a refresh token request. The token may
// also be supplied via the refresh cookie.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// AccountResponse is the public view of an account
type AccountResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Plan  string `json:"plan"`
}

// MeResponse extends the account view with usage counters
type MeResponse struct {
	ID                   int64  `json:"id"`
	Email                string `json:"email"`
	Plan                 string `json:"plan"`
	ValidationsThisMonth int    `json:"validations_this_month"`
}

// NewAccountResponse converts an account to its public view
func NewAccountResponse(a *account.Account) *AccountResponse {
	return &AccountResponse{
		ID:    a.ID,
		Email: a.Email,
		Plan:  a.Plan,
	}
}

// NewMeResponse converts an account to the current-user view
func NewMeResponse(a *account.Account) *MeResponse {
	return &MeResponse{
		ID:                   a.ID,
		Email:                a.Email,
		Plan:                 a.Plan,
		ValidationsThisMonth: a.ValidationsThisMonth,
	}
}
