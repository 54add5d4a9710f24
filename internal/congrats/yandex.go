package congrats

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/ykvlv/birthday-bot/internal/config"
)

type yandexMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type yandexRequest struct {
	ModelURI          string `json:"modelUri"`
	CompletionOptions struct {
		Stream      bool    `json:"stream"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"maxTokens,string"`
	} `json:"completionOptions"`
	Messages []yandexMessage `json:"messages"`
}

type yandexResponse struct {
	Result struct {
		Alternatives []struct {
			Message yandexMessage `json:"message"`
		} `json:"alternatives"`
	} `json:"result"`
}

// YandexClient calls the YandexGPT foundation models completion endpoint.
type YandexClient struct {
	endpoint string
	apiKey   string
	folderID string
	modelURI string
	prompts  Prompts
	http     *http.Client
}

// NewYandexClient builds a client from the generator configuration.
func NewYandexClient(cfg config.Generator, prompts Prompts) *YandexClient {
	return &YandexClient{
		endpoint: cfg.YandexEndpoint,
		apiKey:   cfg.YandexAPIKey,
		folderID: cfg.YandexFolderID,
		modelURI: cfg.YandexModelURI(),
		prompts:  prompts,
		http:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate implements Remote.
func (c *YandexClient) Generate(ctx context.Context, mention string) (string, error) {
	var body yandexRequest
	body.ModelURI = c.modelURI
	body.CompletionOptions.Temperature = 0.8
	body.CompletionOptions.MaxTokens = 120
	body.Messages = []yandexMessage{
		{Role: "system", Text: c.prompts.System},
		{Role: "user", Text: c.prompts.UserFor(mention)},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Api-Key "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-folder-id", c.folderID)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("yandex completion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("yandex completion: status %d", resp.StatusCode)
	}

	var out yandexResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Result.Alternatives) == 0 {
		return "", ErrEmptyCompletion
	}
	return out.Result.Alternatives[0].Message.Text, nil
}
