package testutil

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
)

// MockAccountRepository is a mock implementation of account.Repository
type MockAccountRepository struct {
	Accounts    map[int64]*account.Account
	EmailIndex  map[string]*account.Account
	NextID      int64
	CreateError error
	GetError    error
	UpdateError error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		Accounts:   make(map[int64]*account.Account),
		EmailIndex: make(map[string]*account.Account),
		NextID:     1,
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	if _, exists := m.EmailIndex[a.Email]; exists {
		return errors.Conflict("Email already registered")
	}
	a.ID = m.NextID
	m.NextID++
	m.Accounts[a.ID] = a
	m.EmailIndex[a.Email] = a
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.Accounts[id]
	if !ok {
		return nil, errors.NotFound("Account")
	}
	return a, nil
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*account.Account, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	a, ok := m.EmailIndex[email]
	if !ok {
		return nil, errors.NotFound("Account")
	}
	return a, nil
}

func (m *MockAccountRepository) UpdatePlan(ctx context.Context, id int64, plan string) error {
	if m.UpdateError != nil {
		return m.UpdateError
	}
	a, ok := m.Accounts[id]
	if !ok {
		return errors.NotFound("Account")
	}
	a.Plan = plan
	a.UpdatedAt = time.Now()
	return nil
}

func (m *MockAccountRepository) ResetMonthlyUsage(ctx context.Context, at time.Time) (int64, error) {
	if m.UpdateError != nil {
		return 0, m.UpdateError
	}
	var n int64
	for _, a := range m.Accounts {
		if a.ValidationsThisMonth != 0 {
			n++
		}
		a.ValidationsThisMonth = 0
		a.LastResetAt = at
	}
	return n, nil
}

// MockValidationRepository is a mock implementation of validation.Repository.
// CreateWithUsage enforces the same conditional quota increment the real
// repositories do.
type MockValidationRepository struct {
	Records     map[int64]*validation.Record
	Accounts    *MockAccountRepository
	NextID      int64
	CreateError error
	GetError    error
}

func NewMockValidationRepository(accounts *MockAccountRepository) *MockValidationRepository {
	return &MockValidationRepository{
		Records:  make(map[int64]*validation.Record),
		Accounts: accounts,
		NextID:   1,
	}
}

func (m *MockValidationRepository) CreateWithUsage(ctx context.Context, r *validation.Record, freeLimit int) error {
	if m.CreateError != nil {
		return m.CreateError
	}
	a, ok := m.Accounts.Accounts[r.AccountID]
	if !ok {
		return errors.NotFound("Account")
	}
	if a.Plan != account.PlanPro && a.ValidationsThisMonth >= freeLimit {
		return errors.QuotaExceeded("Free limit reached. Upgrade to Pro for unlimited validations.")
	}
	a.ValidationsThisMonth++
	r.ID = m.NextID
	m.NextID++
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	m.Records[r.ID] = r
	return nil
}

func (m *MockValidationRepository) ListByAccount(ctx context.Context, accountID int64) ([]*validation.Record, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	var out []*validation.Record
	// Newest first: IDs are monotonic in the mock
	for id := m.NextID - 1; id >= 1; id-- {
		if r, ok := m.Records[id]; ok && r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *MockValidationRepository) GetByID(ctx context.Context, accountID, id int64) (*validation.Record, error) {
	if m.GetError != nil {
		return nil, m.GetError
	}
	r, ok := m.Records[id]
	if !ok || r.AccountID != accountID {
		return nil, errors.NotFound("Validation")
	}
	return r, nil
}

// StubAnalyzer is a canned validation.Analyzer for tests
type StubAnalyzer struct {
	Output json.RawMessage
	Err    error
	Calls  int
}

// SampleReport is a well-formed AI report for use as stub output
const SampleReport = `{
	"demand_score": 7,
	"demand_reason": "Strong search volume among indie founders",
	"competition_intensity": 5,
	"competition_reason": "A few incumbents with weak positioning",
	"differentiation_potential": 6,
	"monetization_difficulty": 4,
	"scalability_score": 8,
	"verdict": "BUILD WITH REFINEMENT",
	"niche_narrowing": "Focus on solo SaaS founders pre-launch",
	"unique_positioning_angles": ["Validation before code", "Fixed-price reports"],
	"first_100_customer_strategy": "Post teardown threads in founder communities",
	"suggested_price_range": "$19-$49/mo"
}`

func NewStubAnalyzer() *StubAnalyzer {
	return &StubAnalyzer{Output: json.RawMessage(SampleReport)}
}

func (s *StubAnalyzer) Analyze(ctx context.Context, sub validation.Submission) (json.RawMessage, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Output, nil
}
