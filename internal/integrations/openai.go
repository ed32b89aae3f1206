package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tayashahzad4-eng/Idea-validater/internal/domain/validation"
)

// OpenAIAnalyzer scores idea submissions with the OpenAI chat API
type OpenAIAnalyzer struct {
	client *openai.Client
	model  string
}

// NewOpenAIAnalyzer creates a new OpenAI-backed analyzer
func NewOpenAIAnalyzer(apiKey, model string) *OpenAIAnalyzer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIAnalyzer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// Analyze builds the analyst prompt, invokes the model in JSON mode, and
// returns the validated report bytes.
func (a *OpenAIAnalyzer) Analyze(ctx context.Context, sub validation.Submission) (json.RawMessage, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt(sub),
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	if _, err := validation.ParseReport([]byte(raw)); err != nil {
		return nil, err
	}

	return json.RawMessage(raw), nil
}
