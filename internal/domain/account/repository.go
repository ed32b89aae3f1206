package account

import (
	"context"
	"time"
)

// Repository defines the interface for account data access
type Repository interface {
	// Create creates a new account
	Create(ctx context.Context, a *Account) error

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*Account, error)

	// GetByEmail retrieves an account by email
	GetByEmail(ctx context.Context, email string) (*Account, error)

	// UpdatePlan sets the account's plan tier
	UpdatePlan(ctx context.Context, id int64, plan string) error

	// ResetMonthlyUsage zeroes every account's monthly counter and stamps the reset time
	ResetMonthlyUsage(ctx context.Context, at time.Time) (int64, error)
}
