package account

import "context"

// Service defines the interface for account business logic
type Service interface {
	// Register creates a new account with a hashed password
	Register(ctx context.Context, email, password string) (*Account, error)

	// Authenticate verifies an email/password pair
	Authenticate(ctx context.Context, email, password string) (*Account, error)

	// GetByID retrieves an account by ID
	GetByID(ctx context.Context, id int64) (*Account, error)

	// UpgradePlan moves an account to the given plan tier
	UpgradePlan(ctx context.Context, accountID int64, plan string) error
}
