package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrMissingAPIKey is returned when the client is built without a credential.
	ErrMissingAPIKey = errors.New("OpenAI API key is missing. Please set it in the .env file.")

	// ErrNoChoices is returned when the completion carries no choices.
	ErrNoChoices = errors.New("no completion choices")
)

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

// Config holds the client settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration // applied when ctx has no deadline; default 30s
}

// OpenAIClient implements Completer on the chat completions API.
type OpenAIClient struct {
	api     *openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIClient builds a client. An empty API key is refused up front so
// callers can report it before any request is made.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, ErrMissingAPIKey
	}

	apiCfg := openai.DefaultConfig(key)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		apiCfg.BaseURL = base
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o-mini"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &OpenAIClient{
		api:     openai.NewClientWithConfig(apiCfg),
		model:   model,
		timeout: timeout,
	}, nil
}

func (c *OpenAIClient) Model() string { return c.model }

// Complete sends prompt as a single user message and returns the trimmed reply.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	}

	var cancel context.CancelFunc
	if _, ok := ctx.Deadline(); !ok {
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
