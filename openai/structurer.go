// Package openai implements shopinsight.Structurer against any
// OpenAI-compatible chat completions API. Groq is the default endpoint.
package openai

import (
	"context"

	"github.com/fwojciec/shopinsight"
	openai "github.com/sashabaranov/go-openai"
)

// Groq defaults.
const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"
)

// Temperature is the sampling temperature for structuring requests.
const Temperature = 0.2

// ChatClient is the subset of *openai.Client used by Structurer.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Config holds the connection settings for an OpenAI-compatible endpoint.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Ensure Structurer implements shopinsight.Structurer at compile time.
var _ shopinsight.Structurer = (*Structurer)(nil)

// Structurer normalizes serialized insights into a JSON object with a chat
// completion model in JSON mode.
type Structurer struct {
	client ChatClient
	model  string
}

// NewStructurer creates a Structurer from cfg. Empty BaseURL and Model fall
// back to the Groq defaults.
func NewStructurer(cfg Config) (*Structurer, error) {
	if cfg.APIKey == "" {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "API key required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	oc.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		oc.BaseURL = cfg.BaseURL
	}
	return NewStructurerWithClient(openai.NewClientWithConfig(oc), cfg.Model), nil
}

// NewStructurerWithClient creates a Structurer using client.
// An empty model uses DefaultModel.
func NewStructurerWithClient(client ChatClient, model string) *Structurer {
	if model == "" {
		model = DefaultModel
	}
	return &Structurer{client: client, model: model}
}

// Structure sends raw to the model and parses the reply as a JSON object.
// Replies that are not a JSON object are returned as {"raw": text}.
func (s *Structurer) Structure(ctx context.Context, raw string) (map[string]any, error) {
	if raw == "" {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "nothing to structure")
	}

	resp, err := s.client.CreateChatCompletion(ctx, BuildRequest(s.model, raw))
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, shopinsight.Errorf(shopinsight.EINTERNAL, "model returned no choices")
	}

	return shopinsight.ParseStructured(resp.Choices[0].Message.Content), nil
}

// BuildRequest returns the chat completion request for structuring raw.
func BuildRequest(model, raw string) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: shopinsight.StructurePrompt},
			{Role: openai.ChatMessageRoleUser, Content: raw},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: Temperature,
	}
}
