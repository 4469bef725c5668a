// Package gemini implements shopinsight.Structurer with Google Gemini.
package gemini

import (
	"context"

	"github.com/fwojciec/shopinsight"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Structurer implements shopinsight.Structurer at compile time.
var _ shopinsight.Structurer = (*Structurer)(nil)

// Structurer normalizes serialized insights into a JSON object with Gemini.
type Structurer struct {
	client *genai.Client
	model  string

	// Tokens, when set together with MaxInputTokens, rejects oversized
	// inputs before they are sent.
	Tokens         shopinsight.TokenCounter
	MaxInputTokens int
}

// NewStructurer creates a new Structurer. An empty model uses DefaultModel.
func NewStructurer(client *genai.Client, model string) *Structurer {
	if model == "" {
		model = DefaultModel
	}
	return &Structurer{client: client, model: model}
}

// Structure sends raw to Gemini and parses the reply as a JSON object.
// Replies that are not a JSON object are returned as {"raw": text}.
func (s *Structurer) Structure(ctx context.Context, raw string) (map[string]any, error) {
	if raw == "" {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "nothing to structure")
	}

	if s.Tokens != nil && s.MaxInputTokens > 0 {
		n, err := s.Tokens.CountTokens(ctx, raw)
		if err != nil {
			return nil, err
		}
		if n > s.MaxInputTokens {
			return nil, shopinsight.Errorf(shopinsight.EINVALID,
				"insights too large to structure: %d tokens, limit %d", n, s.MaxInputTokens)
		}
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: raw}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, shopinsight.Errorf(shopinsight.EINTERNAL, "gemini returned nil result")
	}

	return shopinsight.ParseStructured(result.Text()), nil
}

// BuildConfig returns the GenerateContentConfig for structuring calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: shopinsight.StructurePrompt}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
	}
}
