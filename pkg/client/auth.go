package client

import (
	"context"
	"time"
)

// SignupRequest represents a signup request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Account represents an account in the system
type Account struct {
	ID                   int64  `json:"id"`
	Email                string `json:"email"`
	Plan                 string `json:"plan"`
	ValidationsThisMonth int    `json:"validations_this_month,omitempty"`
}

// TokenPair is returned by the refresh endpoint
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Signup creates a new account and starts a session
func (c *Client) Signup(ctx context.Context, email, password string) (*Account, error) {
	req := SignupRequest{Email: email, Password: password}

	var acct Account
	if err := c.doRequest(ctx, "POST", "/api/auth/signup", req, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*Account, error) {
	req := LoginRequest{Email: email, Password: password}

	var acct Account
	if err := c.doRequest(ctx, "POST", "/api/auth/login", req, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Me returns the authenticated account with usage counters
func (c *Client) Me(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.doRequest(ctx, "GET", "/api/auth/me", nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Logout ends the session
func (c *Client) Logout(ctx context.Context) error {
	if err := c.doRequest(ctx, "POST", "/api/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}

// Refresh exchanges a refresh token for a fresh token pair
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req := map[string]string{"refreshToken": refreshToken}

	var pair TokenPair
	if err := c.doRequest(ctx, "POST", "/api/auth/refresh", req, &pair); err != nil {
		return nil, err
	}
	if pair.AccessToken != "" {
		c.SetToken(pair.AccessToken)
	}
	return &pair, nil
}

// WaitForReady polls the readiness endpoint until the server responds or the
// context expires.
func (c *Client) WaitForReady(ctx context.Context) error {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := c.doRequest(ctx, "GET", "/readyz", nil, nil); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
