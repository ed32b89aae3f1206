package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// SubmitValidationRequest carries the idea fields for analysis
type SubmitValidationRequest struct {
	IdeaName        string `json:"ideaName"`
	IdeaDescription string `json:"ideaDescription"`
	TargetAudience  string `json:"targetAudience"`
	ProductFormat   string `json:"productFormat"`
	ExpectedPrice   string `json:"expectedPrice"`
	TargetCountry   string `json:"targetCountry,omitempty"`
}

// ValidationCreated is the response to a successful submission
type ValidationCreated struct {
	ID       int64           `json:"id"`
	AIOutput json.RawMessage `json:"ai_output"`
}

// Validation represents a stored validation record
type Validation struct {
	ID              int64           `json:"id"`
	AccountID       int64           `json:"user_id"`
	IdeaName        string          `json:"idea_name"`
	IdeaDescription string          `json:"idea_description"`
	TargetAudience  string          `json:"target_audience"`
	ProductFormat   string          `json:"product_format"`
	ExpectedPrice   string          `json:"expected_price"`
	TargetCountry   string          `json:"target_country"`
	AIOutput        json.RawMessage `json:"ai_output"`
	CreatedAt       time.Time       `json:"created_at"`
}

// SubmitValidation submits an idea for AI analysis
func (c *Client) SubmitValidation(ctx context.Context, req SubmitValidationRequest) (*ValidationCreated, error) {
	var created ValidationCreated
	if err := c.doRequest(ctx, "POST", "/api/validations", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListValidations returns the account's validation history, newest first
func (c *Client) ListValidations(ctx context.Context) ([]Validation, error) {
	var records []Validation
	if err := c.doRequest(ctx, "GET", "/api/validations", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetValidation returns one validation record by ID
func (c *Client) GetValidation(ctx context.Context, id int64) (*Validation, error) {
	var rec Validation
	if err := c.doRequest(ctx, "GET", fmt.Sprintf("/api/validations/%d", id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}
