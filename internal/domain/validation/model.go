package validation

import (
	"encoding/json"
	"fmt"
	"time"
)

// Submission holds the idea fields a user submits for validation
type Submission struct {
	IdeaName        string `json:"ideaName"`
	IdeaDescription string `json:"ideaDescription"`
	TargetAudience  string `json:"targetAudience"`
	ProductFormat   string `json:"productFormat"`
	ExpectedPrice   string `json:"expectedPrice"`
	TargetCountry   string `json:"targetCountry"`
}

// Record is one submitted idea plus its AI-generated report. Records are
// immutable after creation.
type Record struct {
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

// Verdict values the model must choose from
const (
	VerdictBuild       = "BUILD"
	VerdictBuildRefine = "BUILD WITH REFINEMENT"
	VerdictDoNotBuild  = "DO NOT BUILD"
)

// Report is the structured scoring the model returns. It is the typed view of
// Record.AIOutput; the raw bytes are what get persisted.
type Report struct {
	DemandScore              float64  `json:"demand_score"`
	DemandReason             string   `json:"demand_reason"`
	CompetitionIntensity     float64  `json:"competition_intensity"`
	CompetitionReason        string   `json:"competition_reason"`
	DifferentiationPotential float64  `json:"differentiation_potential"`
	MonetizationDifficulty   float64  `json:"monetization_difficulty"`
	ScalabilityScore         float64  `json:"scalability_score"`
	Verdict                  string   `json:"verdict"`
	NicheNarrowing           string   `json:"niche_narrowing"`
	UniquePositioningAngles  []string `json:"unique_positioning_angles"`
	First100CustomerStrategy string   `json:"first_100_customer_strategy"`
	SuggestedPriceRange      string   `json:"suggested_price_range"`
}

// Validate checks the report against the schema the prompt demands: five
// scores on the 1-10 scale and a verdict from the closed set.
func (r *Report) Validate() error {
	scores := map[string]float64{
		"demand_score":              r.DemandScore,
		"competition_intensity":     r.CompetitionIntensity,
		"differentiation_potential": r.DifferentiationPotential,
		"monetization_difficulty":   r.MonetizationDifficulty,
		"scalability_score":         r.ScalabilityScore,
	}
	for name, score := range scores {
		if score < 1 || score > 10 {
			return fmt.Errorf("%s out of range: %v", name, score)
		}
	}

	switch r.Verdict {
	case VerdictBuild, VerdictBuildRefine, VerdictDoNotBuild:
	default:
		return fmt.Errorf("unknown verdict: %q", r.Verdict)
	}

	return nil
}

// ParseReport parses and validates raw model output against the report schema.
func ParseReport(raw []byte) (*Report, error) {
	var report Report
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("malformed report JSON: %w", err)
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}
	return &report, nil
}
