package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
)

// AccountRepository implements account.Repository on SQLite
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
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		a.Email, a.PasswordHash, a.Plan, a.ValidationsThisMonth, now.Unix(), now.Unix(), now.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return errors.Conflict("Email already registered")
		}
		return errors.DatabaseError("Failed to create account", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get account ID", err)
	}

	a.ID = id
	return nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

// GetByEmail retrieves an account by email
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	return r.get(ctx, `WHERE email = ?`, email)
}

func (r *AccountRepository) get(ctx context.Context, where string, arg interface{}) (*account.Account, error) {
	query := `
		SELECT id, email, password_hash, plan, validations_this_month, last_reset_at, created_at, updated_at
		FROM accounts ` + where

	var a account.Account
	var lastReset, createdAt, updatedAt int64

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Plan, &a.ValidationsThisMonth, &lastReset, &createdAt, &updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Account")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get account", err)
	}

	a.LastResetAt = time.Unix(lastReset, 0)
	a.CreatedAt = time.Unix(createdAt, 0)
	a.UpdatedAt = time.Unix(updatedAt, 0)

	return &a, nil
}

// UpdatePlan sets the account's plan tier
func (r *AccountRepository) UpdatePlan(ctx context.Context, id int64, plan string) error {
	query := `UPDATE accounts SET plan = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, plan, time.Now().Unix(), id)
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
	query := `UPDATE accounts SET validations_this_month = 0, last_reset_at = ?, updated_at = ?`

	result, err := r.db.ExecContext(ctx, query, at.Unix(), at.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to reset monthly usage", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}

	return rows, nil
}
