package dto

import (
	"encoding/json"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
)

// SubmitRequest carries the idea fields a user submits for validation
type SubmitRequest struct {
	IdeaName        string `json:"ideaName" validate:"required,max=200"`
	IdeaDescription string `json:"ideaDescription" validate:"required,max=5000"`
	TargetAudience  string `json:"targetAudience" validate:"required,max=500"`
	ProductFormat   string `json:"productFormat" validate:"required,max=200"`
	ExpectedPrice   string `json:"expectedPrice" validate:"required,max=100"`
	TargetCountry   string `json:"targetCountry,omitempty" validate:"max=100"`
}

// Submission converts the request into the domain submission
func (r *SubmitRequest) Submission() validation.Submission {
	return validation.Submission{
		IdeaName:        r.IdeaName,
		IdeaDescription: r.IdeaDescription,
		TargetAudience:  r.TargetAudience,
		ProductFormat:   r.ProductFormat,
		ExpectedPrice:   r.ExpectedPrice,
		TargetCountry:   r.TargetCountry,
	}
}

// ValidationCreatedResponse is returned after a successful submission
type ValidationCreatedResponse struct {
	ID       int64           `json:"id"`
	AIOutput json.RawMessage `json:"ai_output"`
}

// NewValidationCreatedResponse builds the creation response from a record
func NewValidationCreatedResponse(rec *validation.Record) *ValidationCreatedResponse {
	return &ValidationCreatedResponse{
		ID:       rec.ID,
		AIOutput: rec.AIOutput,
	}
}
