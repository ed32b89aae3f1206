package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/testutil"
)

const webhookSecret = "whsec_test_secret"

// signPayload produces a Stripe-Signature header the way Stripe does: the
// v1 scheme is an HMAC-SHA256 of "<timestamp>.<payload>" keyed by the
// endpoint secret.
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func checkoutCompletedPayload(clientReference string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"client_reference_id": %q
			}
		}
	}`, clientReference))
}

func newBillingFixture(t *testing.T) (*BillingService, *testutil.MockAccountRepository, int64) {
	t.Helper()

	accounts := testutil.NewMockAccountRepository()
	accountService := NewAccountService(accounts, bcrypt.MinCost, testLogger())

	a, err := accountService.Register(context.Background(), "founder@example.com", "hunter22")
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	cfg := config.BillingConfig{
		StripeSecretKey:     "sk_test_key",
		StripeWebhookSecret: webhookSecret,
		ProPriceCents:       2900,
		AppURL:              "http://localhost:3000",
	}
	return NewBillingService(cfg, accountService, testLogger()), accounts, a.ID
}

func TestBillingService_HandleWebhook_UpgradesPlan(t *testing.T) {
	service, accounts, accountID := newBillingFixture(t)
	ctx := context.Background()

	payload := checkoutCompletedPayload(fmt.Sprintf("%d", accountID))
	sig := signPayload(payload, webhookSecret, time.Now())

	if err := service.HandleWebhook(ctx, payload, sig); err != nil {
		t.Fatalf("HandleWebhook() error = %v", err)
	}

	if got := accounts.Accounts[accountID].Plan; got != account.PlanPro {
		t.Errorf("plan after webhook = %q, want %q", got, account.PlanPro)
	}

	// Replays of the same event are idempotent
	if err := service.HandleWebhook(ctx, payload, signPayload(payload, webhookSecret, time.Now())); err != nil {
		t.Fatalf("replayed HandleWebhook() error = %v", err)
	}
	if got := accounts.Accounts[accountID].Plan; got != account.PlanPro {
		t.Errorf("plan after replay = %q, want %q", got, account.PlanPro)
	}
}

func TestBillingService_HandleWebhook_BadSignature(t *testing.T) {
	service, accounts, accountID := newBillingFixture(t)
	ctx := context.Background()

	payload := checkoutCompletedPayload(fmt.Sprintf("%d", accountID))

	tests := []struct {
		name string
		sig  string
	}{
		{
			name: "missing header",
			sig:  "",
		},
		{
			name: "wrong secret",
			sig:  signPayload(payload, "whsec_other_secret", time.Now()),
		},
		{
			name: "tampered payload",
			sig:  signPayload([]byte(`{"type":"other"}`), webhookSecret, time.Now()),
		},
		{
			name: "stale timestamp",
			sig:  signPayload(payload, webhookSecret, time.Now().Add(-time.Hour)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.HandleWebhook(ctx, payload, tt.sig)
			if err == nil {
				t.Fatal("HandleWebhook() error = nil, want signature rejection")
			}
			if !errors.IsCode(err, errors.ErrCodeBadRequest) {
				t.Errorf("HandleWebhook() error code = %v, want %v", err, errors.ErrCodeBadRequest)
			}
			if got := accounts.Accounts[accountID].Plan; got != account.PlanFree {
				t.Errorf("plan after rejected webhook = %q, want %q", got, account.PlanFree)
			}
		})
	}
}

func TestBillingService_HandleWebhook_AcknowledgedNoOps(t *testing.T) {
	service, accounts, accountID := newBillingFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		payload []byte
	}{
		{
			name:    "unknown account reference",
			payload: checkoutCompletedPayload("424242"),
		},
		{
			name:    "unusable client reference",
			payload: checkoutCompletedPayload("not-a-number"),
		},
		{
			name:    "unrelated event type",
			payload: []byte(`{"id": "evt_test_2", "type": "invoice.paid", "data": {"object": {}}}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := signPayload(tt.payload, webhookSecret, time.Now())
			if err := service.HandleWebhook(ctx, tt.payload, sig); err != nil {
				t.Fatalf("HandleWebhook() error = %v, want acknowledged no-op", err)
			}
			if got := accounts.Accounts[accountID].Plan; got != account.PlanFree {
				t.Errorf("plan = %q, want untouched %q", got, account.PlanFree)
			}
		})
	}
}

func TestBillingService_Unconfigured(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	accountService := NewAccountService(accounts, bcrypt.MinCost, testLogger())
	service := NewBillingService(config.BillingConfig{}, accountService, testLogger())
	ctx := context.Background()

	if service.Configured() {
		t.Error("Configured() = true with empty config")
	}

	_, err := service.CreateCheckout(ctx, 1)
	if !errors.IsCode(err, errors.ErrCodeServiceUnavailable) {
		t.Errorf("CreateCheckout() error = %v, want %v", err, errors.ErrCodeServiceUnavailable)
	}

	err = service.HandleWebhook(ctx, []byte(`{}`), "t=1,v1=abc")
	if !errors.IsCode(err, errors.ErrCodeServiceUnavailable) {
		t.Errorf("HandleWebhook() error = %v, want %v", err, errors.ErrCodeServiceUnavailable)
	}
}
