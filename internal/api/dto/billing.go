package dto

// CheckoutResponse carries the Stripe-hosted checkout URL
type CheckoutResponse struct {
	URL string `json:"url"`
}

// WebhookAck acknowledges receipt of a webhook event
type WebhookAck struct {
	Received bool `json:"received"`
}
