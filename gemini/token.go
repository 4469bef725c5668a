package gemini

import (
	"context"

	"github.com/fwojciec/shopinsight"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ shopinsight.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures structuring requests with the local Gemini
// tokenizer. The count covers the system prompt sent with every request
// plus the serialized insights, so it can be compared directly against the
// model's input limit.
type TokenCounter struct {
	tok    *tokenizer.LocalTokenizer
	prompt *genai.Content
}

// NewTokenCounter creates a TokenCounter for model. An empty model uses
// DefaultModel.
func NewTokenCounter(model string) (*TokenCounter, error) {
	if model == "" {
		model = DefaultModel
	}
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, err
	}
	return &TokenCounter{
		tok:    tok,
		prompt: genai.NewContentFromText(shopinsight.StructurePrompt, "user"),
	}, nil
}

// CountTokens returns the tokens a structuring request for raw would use.
// An empty input is never sent, so it counts as zero.
func (tc *TokenCounter) CountTokens(_ context.Context, raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{
		tc.prompt,
		genai.NewContentFromText(raw, "user"),
	}, nil)
	if err != nil {
		return 0, err
	}
	return int(result.TotalTokens), nil
}
