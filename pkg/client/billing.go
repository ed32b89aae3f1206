package client

import "context"

// CheckoutSession carries the Stripe-hosted checkout URL
type CheckoutSession struct {
	URL string `json:"url"`
}

// CreateCheckout starts a Stripe checkout session for the Pro upgrade and
// returns the URL to open in a browser.
func (c *Client) CreateCheckout(ctx context.Context) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := c.doRequest(ctx, "POST", "/api/billing/create-checkout", nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
