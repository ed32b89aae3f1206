package validation

import (
	"strings"
	"testing"
)

const goodReport = `{
	"demand_score": 8,
	"demand_reason": "Large underserved audience",
	"competition_intensity": 4,
	"competition_reason": "Few direct competitors",
	"differentiation_potential": 7,
	"monetization_difficulty": 3,
	"scalability_score": 9,
	"verdict": "BUILD",
	"niche_narrowing": "Start with freelance designers",
	"unique_positioning_angles": ["Speed", "Price"],
	"first_100_customer_strategy": "Cold outreach in design communities",
	"suggested_price_range": "$29/mo"
}`

func TestParseReport(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid report",
			raw:  goodReport,
		},
		{
			name:    "malformed JSON",
			raw:     `{"demand_score": `,
			wantErr: "malformed report JSON",
		},
		{
			name:    "score below range",
			raw:     strings.Replace(goodReport, `"demand_score": 8`, `"demand_score": 0`, 1),
			wantErr: "demand_score out of range",
		},
		{
			name:    "score above range",
			raw:     strings.Replace(goodReport, `"scalability_score": 9`, `"scalability_score": 11`, 1),
			wantErr: "scalability_score out of range",
		},
		{
			name:    "missing scores default to zero",
			raw:     `{"verdict": "BUILD"}`,
			wantErr: "out of range",
		},
		{
			name:    "unknown verdict",
			raw:     strings.Replace(goodReport, `"verdict": "BUILD"`, `"verdict": "MAYBE"`, 1),
			wantErr: `unknown verdict: "MAYBE"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := ParseReport([]byte(tt.raw))

			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("ParseReport() error = %v, want nil", err)
				}
				if report.Verdict != VerdictBuild {
					t.Errorf("Verdict = %q, want %q", report.Verdict, VerdictBuild)
				}
				if report.DemandScore != 8 {
					t.Errorf("DemandScore = %v, want 8", report.DemandScore)
				}
				if len(report.UniquePositioningAngles) != 2 {
					t.Errorf("UniquePositioningAngles = %v, want 2 entries", report.UniquePositioningAngles)
				}
				return
			}

			if err == nil {
				t.Fatal("ParseReport() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ParseReport() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestReportValidate_AllVerdicts(t *testing.T) {
	for _, verdict := range []string{VerdictBuild, VerdictBuildRefine, VerdictDoNotBuild} {
		report := Report{
			DemandScore:              5,
			CompetitionIntensity:     5,
			DifferentiationPotential: 5,
			MonetizationDifficulty:   5,
			ScalabilityScore:         5,
			Verdict:                  verdict,
		}
		if err := report.Validate(); err != nil {
			t.Errorf("Validate() with verdict %q returned %v", verdict, err)
		}
	}
}
