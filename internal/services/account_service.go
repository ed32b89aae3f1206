package services

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
)

// AccountService implements account.Service
type AccountService struct {
	repo       account.Repository
	bcryptCost int
	logger     *logger.Logger
}

// NewAccountService creates a new account service
func NewAccountService(repo account.Repository, bcryptCost int, log *logger.Logger) account.Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AccountService{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     log,
	}
}

// Register creates a new account with a hashed password
func (s *AccountService) Register(ctx context.Context, email, password string) (*account.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, errors.Internal("Failed to hash password", err)
	}

	a := &account.Account{
		Email:        email,
		PasswordHash: string(hash),
		Plan:         account.PlanFree,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": a.ID,
		"email":      a.Email,
	}).Info("Account created")

	return a, nil
}

// Authenticate verifies an email/password pair. Lookup and comparison failures
// collapse into the same error so the response does not leak which emails exist.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (*account.Account, error) {
	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}

	return a, nil
}

// GetByID retrieves an account by ID
func (s *AccountService) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	return s.repo.GetByID(ctx, id)
}

// UpgradePlan moves an account to the given plan tier
func (s *AccountService) UpgradePlan(ctx context.Context, accountID int64, plan string) error {
	if err := s.repo.UpdatePlan(ctx, accountID, plan); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": accountID,
		"plan":       plan,
	}).Info("Account plan updated")

	return nil
}
