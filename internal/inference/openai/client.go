package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/translator/internal/inference"
	"golang.org/x/time/rate"
	"resty.dev/v3"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"
	DefaultModel   = "gpt-4o-mini"
)

type Client struct {
	httpClient *resty.Client
	model      string
	limiter    *rate.Limiter
}

func NewClient(apiKey, model, baseURL string, limiter *rate.Limiter) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		model:      model,
		limiter:    limiter,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Generate implements the inference.Client interface
func (client *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := inference.Wait(ctx, client.limiter); err != nil {
		return "", err
	}

	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages: []Message{
			{Role: RoleUser, Content: prompt},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		Post("/chat/completions")
	if err != nil {
		slog.Default().Warn("openai request failed", "model", client.model, "error", err)
		return "", inference.NewTransportError(ctx, err)
	}
	if response.IsError() {
		slog.Default().Warn("openai returned an error",
			"model", client.model,
			"status", response.StatusCode(),
		)
		return "", inference.NewStatusError(response.StatusCode(), response.String())
	}

	var responseBody ChatCompletionResponse
	if err := json.Unmarshal(response.Bytes(), &responseBody); err != nil {
		return "", inference.NewMalformedError("undecodable response body: %v", err)
	}
	if len(responseBody.Choices) == 0 {
		return "", inference.NewMalformedError("empty response body or choices: %s", response.String())
	}

	content := strings.TrimSpace(responseBody.Choices[0].Message.Content)
	if content == "" {
		return "", inference.NewMalformedError("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"model", client.model,
		"usage", responseBody.Usage,
	)
	return content, nil
}
