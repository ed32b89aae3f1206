package services

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"

	"github.com/tayashahzad4-eng/Idea-validater/internal/config"
	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/account"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/metrics"
)

// BillingService creates checkout sessions and applies Stripe webhook events
type BillingService struct {
	cfg      config.BillingConfig
	accounts account.Service
	logger   *logger.Logger
}

// NewBillingService creates a new billing service. It sets the package-level
// Stripe key, so construct it once at startup.
func NewBillingService(cfg config.BillingConfig, accounts account.Service, log *logger.Logger) *BillingService {
	if cfg.StripeSecretKey != "" {
		stripe.Key = cfg.StripeSecretKey
	}
	return &BillingService{
		cfg:      cfg,
		accounts: accounts,
		logger:   log,
	}
}

// Configured reports whether a Stripe secret key is present
func (s *BillingService) Configured() bool {
	return s.cfg.StripeSecretKey != ""
}

// CreateCheckout starts a Stripe Checkout subscription session for the Pro
// plan. The account ID rides along as the client reference so the webhook can
// resolve who paid.
func (s *BillingService) CreateCheckout(ctx context.Context, accountID int64) (string, error) {
	if !s.Configured() {
		return "", errors.ServiceUnavailable("Billing is not configured")
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(string(stripe.CurrencyUSD)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String("Validate Before You Build - Pro Plan"),
						Description: stripe.String("Unlimited validations and full access to all features."),
					},
					UnitAmount: stripe.Int64(s.cfg.ProPriceCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(s.cfg.AppURL + "/dashboard?success=true"),
		CancelURL:         stripe.String(s.cfg.AppURL + "/dashboard?canceled=true"),
		ClientReferenceID: stripe.String(strconv.FormatInt(accountID, 10)),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		s.logger.ErrorWithErr(err, "Stripe checkout session failed")
		return "", errors.Internal("Failed to create checkout session", err)
	}

	return sess.URL, nil
}

// HandleWebhook verifies the payload signature and applies the event. A bad
// signature is rejected without touching any state; a verified event that
// references an unknown account is acknowledged as a no-op so the provider
// stops retrying.
func (s *BillingService) HandleWebhook(ctx context.Context, payload []byte, sigHeader string) error {
	if s.cfg.StripeWebhookSecret == "" {
		return errors.ServiceUnavailable("Billing webhook is not configured")
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		sigHeader,
		s.cfg.StripeWebhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		},
	)
	if err != nil {
		metrics.RecordBillingEvent("unknown", "bad_signature")
		s.logger.ErrorWithErr(err, "Stripe webhook signature verification failed")
		return errors.BadRequest("Signature verification failed")
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			metrics.RecordBillingEvent(string(event.Type), "malformed")
			s.logger.ErrorWithErr(err, "Stripe session unmarshal failed")
			return nil
		}

		accountID, err := strconv.ParseInt(sess.ClientReferenceID, 10, 64)
		if err != nil {
			metrics.RecordBillingEvent(string(event.Type), "no_reference")
			s.logger.Warnf("Checkout completed without a usable client reference: %q", sess.ClientReferenceID)
			return nil
		}

		if err := s.accounts.UpgradePlan(ctx, accountID, account.PlanPro); err != nil {
			if errors.IsCode(err, errors.ErrCodeNotFound) {
				metrics.RecordBillingEvent(string(event.Type), "unknown_account")
				s.logger.Warnf("Checkout completed for unknown account %d", accountID)
				return nil
			}
			metrics.RecordBillingEvent(string(event.Type), "error")
			return err
		}

		metrics.RecordBillingEvent(string(event.Type), "ok")
		s.logger.WithFields(map[string]interface{}{
			"account_id": accountID,
		}).Info("Account upgraded to pro via checkout")
	default:
		metrics.RecordBillingEvent(string(event.Type), "ignored")
	}

	return nil
}
