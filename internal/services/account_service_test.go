package services

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/testutil"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", Format: "json"})
}

func TestAccountService_Register(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	service := NewAccountService(mockRepo, bcrypt.MinCost, testLogger())
	ctx := context.Background()

	a, err := service.Register(ctx, "founder@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if a.ID == 0 {
		t.Error("Register() returned zero ID")
	}
	if a.Plan != account.PlanFree {
		t.Errorf("Register() plan = %q, want %q", a.Plan, account.PlanFree)
	}
	if a.PasswordHash == "hunter22" {
		t.Error("Register() stored plaintext password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("hunter22")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Register_DuplicateEmail(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	service := NewAccountService(mockRepo, bcrypt.MinCost, testLogger())
	ctx := context.Background()

	if _, err := service.Register(ctx, "founder@example.com", "hunter22"); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := service.Register(ctx, "founder@example.com", "different")
	if err == nil {
		t.Fatal("second Register() error = nil, want conflict")
	}
	if !errors.IsCode(err, errors.ErrCodeConflict) {
		t.Errorf("second Register() error code = %v, want %v", err, errors.ErrCodeConflict)
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	service := NewAccountService(mockRepo, bcrypt.MinCost, testLogger())
	ctx := context.Background()

	if _, err := service.Register(ctx, "founder@example.com", "hunter22"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{
			name:     "correct credentials",
			email:    "founder@example.com",
			password: "hunter22",
		},
		{
			name:     "wrong password",
			email:    "founder@example.com",
			password: "wrong",
			wantErr:  true,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "hunter22",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := service.Authenticate(ctx, tt.email, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Authenticate() error = nil, want error")
				}
				// Unknown email and wrong password must be indistinguishable
				if !errors.IsCode(err, errors.ErrCodeUnauthorized) {
					t.Errorf("Authenticate() error code = %v, want %v", err, errors.ErrCodeUnauthorized)
				}
				return
			}

			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if a.Email != tt.email {
				t.Errorf("Authenticate() email = %q, want %q", a.Email, tt.email)
			}
		})
	}
}

func TestAccountService_UpgradePlan(t *testing.T) {
	mockRepo := testutil.NewMockAccountRepository()
	service := NewAccountService(mockRepo, bcrypt.MinCost, testLogger())
	ctx := context.Background()

	a, err := service.Register(ctx, "founder@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := service.UpgradePlan(ctx, a.ID, account.PlanPro); err != nil {
		t.Fatalf("UpgradePlan() error = %v", err)
	}

	got, err := service.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Plan != account.PlanPro {
		t.Errorf("plan after upgrade = %q, want %q", got.Plan, account.PlanPro)
	}

	if err := service.UpgradePlan(ctx, 999, account.PlanPro); err == nil {
		t.Error("UpgradePlan() on missing account error = nil, want error")
	}
}
