package services

import (
	"context"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/metrics"
)

// ValidationService implements validation.Service
type ValidationService struct {
	repo        validation.Repository
	accountRepo account.Repository
	analyzer    validation.Analyzer
	quota       QuotaPolicy
	provider    string
	logger      *logger.Logger
}

// NewValidationService creates a new validation service
func NewValidationService(
	repo validation.Repository,
	accountRepo account.Repository,
	analyzer validation.Analyzer,
	quota QuotaPolicy,
	provider string,
	log *logger.Logger,
) validation.Service {
	return &ValidationService{
		repo:        repo,
		accountRepo: accountRepo,
		analyzer:    analyzer,
		quota:       quota,
		provider:    provider,
		logger:      log,
	}
}

// Submit runs the workflow: reload account, quota fast-fail, AI analysis, then
// one transaction that increments usage and inserts the record. The AI cost is
// already incurred if persistence fails; there is nothing to roll back there.
func (s *ValidationService) Submit(ctx context.Context, accountID int64, sub validation.Submission) (*validation.Record, error) {
	a, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.quota.Check(a); err != nil {
		metrics.RecordQuotaDenial()
		s.logger.WithFields(map[string]interface{}{
			"account_id": accountID,
			"used":       a.ValidationsThisMonth,
		}).Warn("Submission denied by quota")
		return nil, err
	}

	start := time.Now()
	output, err := s.analyzer.Analyze(ctx, sub)
	if err != nil {
		metrics.RecordAnalysis(s.provider, "error", time.Since(start))
		s.logger.ErrorWithErr(err, "AI analysis failed")
		return nil, errors.AnalysisError("AI Analysis failed", err)
	}
	metrics.RecordAnalysis(s.provider, "ok", time.Since(start))

	rec := &validation.Record{
		AccountID:       accountID,
		IdeaName:        sub.IdeaName,
		IdeaDescription: sub.IdeaDescription,
		TargetAudience:  sub.TargetAudience,
		ProductFormat:   sub.ProductFormat,
		ExpectedPrice:   sub.ExpectedPrice,
		TargetCountry:   sub.TargetCountry,
		AIOutput:        output,
	}

	if err := s.repo.CreateWithUsage(ctx, rec, s.quota.FreeLimit); err != nil {
		if errors.IsCode(err, errors.ErrCodeQuotaExceeded) {
			metrics.RecordQuotaDenial()
		}
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"account_id": accountID,
		"record_id":  rec.ID,
		"idea":       sub.IdeaName,
		"took":       time.Since(start).String(),
	}).Info("Validation completed")

	return rec, nil
}

// List returns the account's records, newest first
func (s *ValidationService) List(ctx context.Context, accountID int64) ([]*validation.Record, error) {
	return s.repo.ListByAccount(ctx, accountID)
}

// Get returns one record scoped to the owning account
func (s *ValidationService) Get(ctx context.Context, accountID, id int64) (*validation.Record, error) {
	return s.repo.GetByID(ctx, accountID, id)
}
