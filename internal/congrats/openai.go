package congrats

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/ykvlv/birthday-bot/internal/config"
)

// OpenAIClient generates congratulations through any OpenAI-compatible API.
type OpenAIClient struct {
	client  *openai.Client
	model   string
	prompts Prompts
	timeout time.Duration
}

// NewOpenAIClient builds a client from the generator configuration.
func NewOpenAIClient(cfg config.Generator, prompts Prompts) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		oc.BaseURL = cfg.OpenAIBaseURL
	}
	return &OpenAIClient{
		client:  openai.NewClientWithConfig(oc),
		model:   cfg.OpenAIModel,
		prompts: prompts,
		timeout: cfg.Timeout,
	}
}

// Generate implements Remote.
func (c *OpenAIClient) Generate(ctx context.Context, mention string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.prompts.System},
			{Role: openai.ChatMessageRoleUser, Content: c.prompts.UserFor(mention)},
		},
		Temperature: 0.8,
		MaxTokens:   120,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}
