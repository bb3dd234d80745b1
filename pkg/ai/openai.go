package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-3.5-turbo"
	defaultGroqModel   = "llama-3.3-70b-versatile"
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// SystemPrompt frames every chat completion request
	SystemPrompt = "You are a meeting summarizer. Extract key information and structure it."
)

// ErrMissingAPIKey is returned when a backend is built without credentials
var ErrMissingAPIKey = errors.New("missing API key")

// ChatGenerator calls an OpenAI-compatible chat completions endpoint
type ChatGenerator struct {
	client    *openai.Client
	model     string
	name      string
	maxTokens int
}

// NewOpenAIGenerator creates a generator backed by OpenAI
func NewOpenAIGenerator(apiKey, model string) (*ChatGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}
	if model == "" {
		model = defaultOpenAIModel
	}
	return &ChatGenerator{
		client:    openai.NewClient(apiKey),
		model:     model,
		name:      "openai",
		maxTokens: 1000,
	}, nil
}

// NewGroqGenerator creates a generator backed by Groq's OpenAI-compatible API
func NewGroqGenerator(apiKey, baseURL, model string) (*ChatGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: %w", ErrMissingAPIKey)
	}
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	if model == "" {
		model = defaultGroqModel
	}
	clientConfig := openai.DefaultConfig(apiKey)
	clientConfig.BaseURL = baseURL
	return &ChatGenerator{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     model,
		name:      "groq",
		maxTokens: 1000,
	}, nil
}

// Name returns the provider name
func (g *ChatGenerator) Name() string {
	return g.name
}

// Generate sends prompt as the user message and returns the assistant content
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.3,
		MaxTokens:   g.maxTokens,
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%s chat completion: %w", g.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
