package validation

import "context"

// Service defines the interface for the validation workflow
type Service interface {
	// Submit runs the full workflow: quota check, AI analysis, persistence.
	Submit(ctx context.Context, accountID int64, sub Submission) (*Record, error)

	// List returns the account's records, newest first
	List(ctx context.Context, accountID int64) ([]*Record, error)

	// Get returns one record; records owned by other accounts are not found
	Get(ctx context.Context, accountID, id int64) (*Record, error)
}
