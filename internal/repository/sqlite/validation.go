package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
)

// ValidationRepository implements validation.Repository on SQLite
type ValidationRepository struct {
	db *sql.DB
}

// NewValidationRepository creates a new validation repository
func NewValidationRepository(db *sql.DB) validation.Repository {
	return &ValidationRepository{db: db}
}

// CreateWithUsage inserts the record and increments the account's monthly
// counter in one transaction. The increment only succeeds while the account is
// under its quota, which closes the read-check-write race between concurrent
// submissions.
func (r *ValidationRepository) CreateWithUsage(ctx context.Context, rec *validation.Record, freeLimit int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.DatabaseError("Failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.ExecContext(ctx, `
		UPDATE accounts
		SET validations_this_month = validations_this_month + 1, updated_at = ?
		WHERE id = ? AND (plan = ? OR validations_this_month < ?)
	`, time.Now().Unix(), rec.AccountID, account.PlanPro, freeLimit)
	if err != nil {
		return errors.DatabaseError("Failed to increment usage", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM accounts WHERE id = ?`, rec.AccountID).Scan(&exists); err != nil {
			return errors.DatabaseError("Failed to check account", err)
		}
		if exists == 0 {
			return errors.NotFound("Account")
		}
		return errors.QuotaExceeded("Free limit reached. Upgrade to Pro for unlimited validations.")
	}

	rec.CreatedAt = time.Now()
	insert, err := tx.ExecContext(ctx, `
		INSERT INTO validations (account_id, idea_name, idea_description, target_audience, product_format, expected_price, target_country, ai_output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.AccountID, rec.IdeaName, rec.IdeaDescription, rec.TargetAudience,
		rec.ProductFormat, rec.ExpectedPrice, rec.TargetCountry, string(rec.AIOutput), rec.CreatedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create validation record", err)
	}

	id, err := insert.LastInsertId()
	if err != nil {
		return errors.DatabaseError("Failed to get record ID", err)
	}
	rec.ID = id

	if err := tx.Commit(); err != nil {
		return errors.DatabaseError("Failed to commit transaction", err)
	}

	return nil
}

// ListByAccount returns the account's records, newest first
func (r *ValidationRepository) ListByAccount(ctx context.Context, accountID int64) ([]*validation.Record, error) {
	query := `
		SELECT id, account_id, idea_name, idea_description, target_audience, product_format, expected_price, target_country, ai_output, created_at
		FROM validations
		WHERE account_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query, accountID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list validation records", err)
	}
	defer rows.Close()

	var out []*validation.Record
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan validation record", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to list validation records", err)
	}

	return out, nil
}

// GetByID returns one record scoped to the owning account
func (r *ValidationRepository) GetByID(ctx context.Context, accountID, id int64) (*validation.Record, error) {
	query := `
		SELECT id, account_id, idea_name, idea_description, target_audience, product_format, expected_price, target_country, ai_output, created_at
		FROM validations
		WHERE id = ? AND account_id = ?
	`

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, id, accountID).Scan)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Validation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get validation record", err)
	}

	return rec, nil
}

func scanRecord(scan func(...interface{}) error) (*validation.Record, error) {
	var rec validation.Record
	var aiOutput string
	var createdAt int64

	err := scan(
		&rec.ID, &rec.AccountID, &rec.IdeaName, &rec.IdeaDescription, &rec.TargetAudience,
		&rec.ProductFormat, &rec.ExpectedPrice, &rec.TargetCountry, &aiOutput, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	rec.AIOutput = json.RawMessage(aiOutput)
	rec.CreatedAt = time.Unix(createdAt, 0)

	return &rec, nil
}
