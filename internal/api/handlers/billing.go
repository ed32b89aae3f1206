package handlers

import (
	"io"
	"net/http"

	"github.com/tayashahzad4-eng/Idea-validater/internal/api/dto"
	"github.com/tayashahzad4-eng/Idea-validater/internal/api/middleware"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/errors"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/logger"
	"github.com/tayashahzad4-eng/Idea-validater/internal/pkg/utils"
	"github.com/tayashahzad4-eng/Idea-validater/internal/services"
)

// Stripe signs the raw payload; cap it well above any real event size.
const maxWebhookBody = 64 * 1024

// BillingHandler handles Stripe checkout and webhook requests
type BillingHandler struct {
	billingService *services.BillingService
	logger         *logger.Logger
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billingService *services.BillingService, log *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: billingService,
		logger:         log,
	}
}

// CreateCheckout starts a Stripe checkout session for the Pro upgrade
func (h *BillingHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.GetAccountID(r)
	if !ok {
		utils.WriteError(w, errors.Unauthorized("Not authenticated"))
		return
	}

	url, err := h.billingService.CreateCheckout(r.Context(), accountID)
	if err != nil {
		h.logger.WithFields(map[string]interface{}{
			"account_id": accountID,
		}).WithError(err).Error("Checkout session creation failed")
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.CheckoutResponse{URL: url})
}

// Webhook receives Stripe events. The payload must be read raw, before
// any JSON decoding, because the signature covers the exact bytes.
func (h *BillingHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.WriteError(w, errors.BadRequest("Failed to read request body"))
		return
	}

	if err := h.billingService.HandleWebhook(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		utils.WriteAppError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, dto.WebhookAck{Received: true})
}
