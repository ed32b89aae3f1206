package integrations

import (
	"fmt"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
)

// systemPrompt pins the model to the report schema. The response must be a
// single JSON object so it can be parsed and stored verbatim.
const systemPrompt = `You are a professional startup validation analyst.
Analyze digital product ideas realistically and provide structured scoring.
Respond ONLY in JSON format with the following fields:
{
  "demand_score": number (1-10),
  "demand_reason": string,
  "competition_intensity": number (1-10),
  "competition_reason": string,
  "differentiation_potential": number (1-10),
  "monetization_difficulty": number (1-10),
  "scalability_score": number (1-10),
  "verdict": "BUILD" | "BUILD WITH REFINEMENT" | "DO NOT BUILD",
  "niche_narrowing": string,
  "unique_positioning_angles": string[],
  "first_100_customer_strategy": string,
  "suggested_price_range": string
}
Be realistic. Avoid generic motivational advice.`

// userPrompt renders the submitted idea fields for the model.
func userPrompt(sub validation.Submission) string {
	country := sub.TargetCountry
	if country == "" {
		country = "Global"
	}
	return fmt.Sprintf(`Idea Details:
Name: %s
Description: %s
Target Audience: %s
Product Format: %s
Expected Price: %s
Target Country: %s`,
		sub.IdeaName, sub.IdeaDescription, sub.TargetAudience,
		sub.ProductFormat, sub.ExpectedPrice, country)
}
