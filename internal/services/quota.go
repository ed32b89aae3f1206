package services

import (
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
)

// FreeMonthlyLimit is the number of validations a free-plan account gets per
// calendar month.
const FreeMonthlyLimit = 2

// QuotaPolicy decides whether an account may run another validation this month
type QuotaPolicy struct {
	FreeLimit int
}

// NewQuotaPolicy creates a quota policy with the default free-plan limit
func NewQuotaPolicy() QuotaPolicy {
	return QuotaPolicy{FreeLimit: FreeMonthlyLimit}
}

// Check is a pure predicate over already-loaded account state. Pro accounts
// are never denied. The authoritative check happens again inside the
// submission transaction; this one exists to fail fast before the AI call.
func (p QuotaPolicy) Check(a *account.Account) error {
	if a.Plan == account.PlanPro {
		return nil
	}
	if a.ValidationsThisMonth >= p.FreeLimit {
		return errors.QuotaExceeded("Free limit reached. Upgrade to Pro for unlimited validations.")
	}
	return nil
}
