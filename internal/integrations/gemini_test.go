package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
)

const modelReport = `{
	"demand_score": 6,
	"demand_reason": "Moderate interest",
	"competition_intensity": 7,
	"competition_reason": "Crowded space",
	"differentiation_potential": 5,
	"monetization_difficulty": 5,
	"scalability_score": 6,
	"verdict": "BUILD WITH REFINEMENT",
	"niche_narrowing": "Narrow to one vertical",
	"unique_positioning_angles": ["Vertical focus"],
	"first_100_customer_strategy": "Partner with niche newsletters",
	"suggested_price_range": "$20-$40/mo"
}`

func geminiBody(text string) string {
	wrapped, _ := json.Marshal(map[string]interface{}{
		"candidates": []map[string]interface{}{
			{
				"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				},
				"finishReason": "STOP",
			},
		},
	})
	return string(wrapped)
}

func testSubmission() validation.Submission {
	return validation.Submission{
		IdeaName:        "Launch Radar",
		IdeaDescription: "Tracks competitor product launches",
		TargetAudience:  "Product managers",
		ProductFormat:   "SaaS",
		ExpectedPrice:   "$49/mo",
	}
}

func TestGeminiAnalyzer_Analyze(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-Goog-Api-Key")
		_ = json.NewDecoder(r.Body).Decode(&gotReq)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(geminiBody(modelReport)))
	}))
	defer server.Close()

	analyzer := NewGeminiAnalyzer("test-key", "gemini-2.0-flash", 5*time.Second)
	analyzer.baseURL = server.URL

	raw, err := analyzer.Analyze(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if string(raw) != strings.TrimSpace(modelReport) {
		t.Errorf("Analyze() returned altered bytes")
	}
	if gotPath != "/gemini-2.0-flash:generateContent" {
		t.Errorf("request path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q, want test-key", gotKey)
	}
	if gotReq.GenerationConfig.ResponseMIMEType != "application/json" {
		t.Errorf("response mime type = %q, want application/json", gotReq.GenerationConfig.ResponseMIMEType)
	}
	if gotReq.SystemInstruction == nil || len(gotReq.SystemInstruction.Parts) == 0 {
		t.Fatal("request missing system instruction")
	}
	if !strings.Contains(gotReq.SystemInstruction.Parts[0].Text, "demand_score") {
		t.Error("system instruction does not describe the report schema")
	}
	if len(gotReq.Contents) != 1 || !strings.Contains(gotReq.Contents[0].Parts[0].Text, "Launch Radar") {
		t.Error("user prompt does not carry the submission")
	}
}

func TestGeminiAnalyzer_Analyze_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "API error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"error": "quota"}`, http.StatusTooManyRequests)
			},
			wantErr: "status 429",
		},
		{
			name: "empty candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates": []}`))
			},
			wantErr: "no content generated",
		},
		{
			name: "report fails schema validation",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiBody(`{"verdict": "MAYBE"}`)))
			},
			wantErr: "out of range",
		},
		{
			name: "report is not JSON",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(geminiBody("I think you should build it")))
			},
			wantErr: "malformed report JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			analyzer := NewGeminiAnalyzer("test-key", "gemini-2.0-flash", 5*time.Second)
			analyzer.baseURL = server.URL

			_, err := analyzer.Analyze(context.Background(), testSubmission())
			if err == nil {
				t.Fatal("Analyze() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Analyze() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestGeminiAnalyzer_MissingKey(t *testing.T) {
	analyzer := NewGeminiAnalyzer("", "gemini-2.0-flash", 5*time.Second)
	if _, err := analyzer.Analyze(context.Background(), testSubmission()); err == nil {
		t.Error("Analyze() without API key error = nil, want error")
	}
}

func TestUserPrompt_DefaultsCountry(t *testing.T) {
	sub := testSubmission()
	prompt := userPrompt(sub)
	if !strings.Contains(prompt, "Global") {
		t.Errorf("prompt without country should default to Global: %q", prompt)
	}

	sub.TargetCountry = "Germany"
	prompt = userPrompt(sub)
	if !strings.Contains(prompt, "Germany") {
		t.Errorf("prompt should carry the submitted country: %q", prompt)
	}
}
