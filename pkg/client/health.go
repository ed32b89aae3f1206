package client

import "context"

// HealthStatus is the response from the health endpoints
type HealthStatus struct {
	Status string `json:"status"`
}

// Health checks process liveness
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, "GET", "/healthz", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Ready checks readiness, including database connectivity
func (c *Client) Ready(ctx context.Context) (*HealthStatus, error) {
	var status HealthStatus
	if err := c.doRequest(ctx, "GET", "/readyz", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}
