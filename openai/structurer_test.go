package openai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fwojciec/shopinsight"
	shopopenai "github.com/fwojciec/shopinsight/openai"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chatClient is a function-field shopopenai.ChatClient.
type chatClient struct {
	CreateChatCompletionFn func(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (c *chatClient) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return c.CreateChatCompletionFn(ctx, request)
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		}},
	}
}

func TestStructurer_Structure(t *testing.T) {
	t.Parallel()

	t.Run("sends JSON mode request and parses reply", func(t *testing.T) {
		t.Parallel()

		var got openai.ChatCompletionRequest
		client := &chatClient{
			CreateChatCompletionFn: func(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				got = req
				return reply(`{"brand":"Tote Co"}`), nil
			},
		}
		s := shopopenai.NewStructurerWithClient(client, "")

		obj, err := s.Structure(context.Background(), `{"store_url":"https://tote.example"}`)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"brand": "Tote Co"}, obj)
		assert.Equal(t, shopopenai.DefaultModel, got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, shopinsight.StructurePrompt, got.Messages[0].Content)
		assert.Equal(t, `{"store_url":"https://tote.example"}`, got.Messages[1].Content)
		require.NotNil(t, got.ResponseFormat)
		assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, got.ResponseFormat.Type)
	})

	t.Run("wraps non-object reply as raw", func(t *testing.T) {
		t.Parallel()

		client := &chatClient{
			CreateChatCompletionFn: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return reply(`["not","an","object"]`), nil
			},
		}

		obj, err := shopopenai.NewStructurerWithClient(client, "m").Structure(context.Background(), "{}")

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"raw": `["not","an","object"]`}, obj)
	})

	t.Run("fails when model returns no choices", func(t *testing.T) {
		t.Parallel()

		client := &chatClient{
			CreateChatCompletionFn: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		}

		_, err := shopopenai.NewStructurerWithClient(client, "m").Structure(context.Background(), "{}")

		require.Error(t, err)
		assert.Equal(t, shopinsight.EINTERNAL, shopinsight.ErrorCode(err))
	})

	t.Run("propagates API errors", func(t *testing.T) {
		t.Parallel()

		client := &chatClient{
			CreateChatCompletionFn: func(_ context.Context, _ openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, errors.New("429 too many requests")
			},
		}

		_, err := shopopenai.NewStructurerWithClient(client, "m").Structure(context.Background(), "{}")

		require.ErrorContains(t, err, "429")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := shopopenai.NewStructurerWithClient(&chatClient{}, "").Structure(context.Background(), "")

		assert.Equal(t, shopinsight.EINVALID, shopinsight.ErrorCode(err))
	})
}

func TestNewStructurer(t *testing.T) {
	t.Parallel()

	t.Run("requires API key", func(t *testing.T) {
		t.Parallel()

		_, err := shopopenai.NewStructurer(shopopenai.Config{})

		assert.Equal(t, shopinsight.EINVALID, shopinsight.ErrorCode(err))
	})

	t.Run("talks to configured base URL", func(t *testing.T) {
		t.Parallel()

		var path, auth, model string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path = r.URL.Path
			auth = r.Header.Get("Authorization")
			var req openai.ChatCompletionRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			model = req.Model
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(reply(`{"ok":true}`))
		}))
		defer srv.Close()

		s, err := shopopenai.NewStructurer(shopopenai.Config{
			APIKey:  "secret",
			BaseURL: srv.URL + "/v1",
			Model:   "llama-test",
		})
		require.NoError(t, err)

		obj, err := s.Structure(context.Background(), `{"store_url":"https://tote.example"}`)

		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, obj)
		assert.Equal(t, "/v1/chat/completions", path)
		assert.Equal(t, "Bearer secret", auth)
		assert.Equal(t, "llama-test", model)
	})
}
