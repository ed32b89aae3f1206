package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
)

// uniqueViolation is the Postgres error code for unique constraint violations
const uniqueViolation = "23505"

// AccountRepository implements account.Repository on Postgres
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *sql.DB) account.Repository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(ctx context.Context, a *account.Account) error {
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.LastResetAt = now

	query := `
		INSERT INTO accounts (email, password_hash, plan, validations_this_month, last_reset_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		a.Email, a.PasswordHash, a.Plan, a.ValidationsThisMonth, now, now, now,
	).Scan(&a.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return errors.Conflict("Email already registered")
		}
		return errors.DatabaseError("Failed to create account", err)
	}

	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	return r.get(ctx, `WHERE id = $1`, id)
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.get(ctx, `WHERE email = $1`, email)
}

func (r *AccountRepository) get(ctx context.Context, where string, arg interface{}) (*account.Account, error) {
	query := `
		SELECT id, email, password_hash, plan, validations_this_month, last_reset_at, created_at, updated_at
		FROM accounts ` + where

	var a account.Account
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Plan, &a.ValidationsThisMonth,
		&a.LastResetAt, &a.CreatedAt, &a.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Account")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get account", err)
	}

	return &a, nil
}

// UpdatePlan sets the account's plan tier
func (r *AccountRepository) UpdatePlan(ctx context.Context, id int64, plan string) error {
	query := `UPDATE accounts SET plan = $1, updated_at = $2 WHERE id = $3`

	result, err := r.db.ExecContext(ctx, query, plan, time.Now(), id)
	if err != nil {
		return errors.DatabaseError("Failed to update plan", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}

	if rows == 0 {
		return errors.NotFound("Account")
	}

	return nil
}

// ResetMonthlyUsage zeroes every account's monthly counter
func (r *AccountRepository) ResetMonthlyUsage(ctx context.Context, at time.Time) (int64, error) {
	query := `UPDATE accounts SET validations_this_month = 0, last_reset_at = $1, updated_at = $2`

	result, err := r.db.ExecContext(ctx, query, at, at)
	if err != nil {
		return 0, errors.DatabaseError("Failed to reset monthly usage", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}
