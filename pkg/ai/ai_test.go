package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func newChatServer(t *testing.T, status int, content string, seen *openai.ChatCompletionRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if seen != nil {
			_ = json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"insufficient_quota"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"choices": []map[string]interface{}{{"index": 0, "message": map[string]string{"role": "assistant", "content": content}}},
		})
	}))
}

func TestChatGenerator_Generate(t *testing.T) {
	var req openai.ChatCompletionRequest
	ts := newChatServer(t, http.StatusOK, `{"summary":"ok"}`, &req)
	defer ts.Close()

	gen, err := NewGroqGenerator("test-key", ts.URL+"/v1", "")
	require.NoError(t, err)

	out, err := gen.Generate(context.Background(), "summarize this")
	require.NoError(t, err)

	assert.Equal(t, `{"summary":"ok"}`, out)
	assert.Equal(t, "groq", gen.Name())
	assert.Equal(t, defaultGroqModel, req.Model)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.Equal(t, SystemPrompt, req.Messages[0].Content)
	assert.Equal(t, "summarize this", req.Messages[1].Content)
	assert.Equal(t, 1000, req.MaxTokens)
}

func TestChatGenerator_GenerateError(t *testing.T) {
	ts := newChatServer(t, http.StatusTooManyRequests, "", nil)
	defer ts.Close()

	gen, err := NewGroqGenerator("test-key", ts.URL+"/v1", "llama")
	require.NoError(t, err)

	_, err = gen.Generate(context.Background(), "prompt")
	assert.Error(t, err)
}

func TestConstructors_RequireKey(t *testing.T) {
	_, err := NewOpenAIGenerator("", "")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewGroqGenerator("", "", "")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewGeminiGenerator(context.Background(), "", "")
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	_, err = NewAssemblyAITranscriber("", "en", nil)
	assert.True(t, errors.Is(err, ErrMissingAPIKey))
}

func TestOpenAIGenerator_Defaults(t *testing.T) {
	gen, err := NewOpenAIGenerator("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, defaultOpenAIModel, gen.model)
	assert.Equal(t, "openai", gen.Name())
}

func TestResponseText(t *testing.T) {
	assert.Equal(t, "", responseText(nil))
	assert.Equal(t, "", responseText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "```json\n{"}, {Text: "}\n```"}}},
		}},
	}
	assert.Equal(t, "```json\n{}\n```", responseText(resp))
}
