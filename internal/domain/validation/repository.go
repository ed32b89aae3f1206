package validation

import "context"

// Repository defines the interface for validation record data access
type Repository interface {
	// CreateWithUsage inserts the record and increments the owning account's
	// monthly counter in one transaction. The increment is conditional on the
	// quota: if the account is on the free plan and already at freeLimit, no
	// row is written and the quota error is returned.
	CreateWithUsage(ctx context.Context, r *Record, freeLimit int) error

	// ListByAccount returns the account's records, newest first
	ListByAccount(ctx context.Context, accountID int64) ([]*Record, error)

	// GetByID returns one record scoped to the owning account
	GetByID(ctx context.Context, accountID, id int64) (*Record, error)
}
