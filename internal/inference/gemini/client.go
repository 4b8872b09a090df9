// Package gemini calls the Google Generative Language API generateContent endpoint.
package gemini

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
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"
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
	client.SetHeader("x-goog-api-key", apiKey)
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

type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

type Part struct {
	Text string `json:"text"`
}

type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
}

type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type PromptFeedback struct {
	BlockReason string `json:"blockReason"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate implements the inference.Client interface
func (client *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if err := inference.Wait(ctx, client.limiter); err != nil {
		return "", err
	}

	requestBody := GenerateContentRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("model", client.model).
		SetBody(requestBody).
		Post("/models/{model}:generateContent")
	if err != nil {
		slog.Default().Warn("gemini request failed", "model", client.model, "error", err)
		return "", inference.NewTransportError(ctx, err)
	}
	if response.IsError() {
		slog.Default().Warn("gemini returned an error",
			"model", client.model,
			"status", response.StatusCode(),
		)
		return "", inference.NewStatusError(response.StatusCode(), errorMessage(response.String()))
	}

	var responseBody GenerateContentResponse
	if err := json.Unmarshal(response.Bytes(), &responseBody); err != nil {
		return "", inference.NewMalformedError("undecodable response body: %v", err)
	}
	slog.Default().Debug("gemini response",
		"model", client.model,
		"candidates", len(responseBody.Candidates),
	)

	text, err := extractText(&responseBody)
	if err != nil {
		return "", err
	}
	return text, nil
}

func extractText(body *GenerateContentResponse) (string, error) {
	if len(body.Candidates) == 0 {
		if body.PromptFeedback != nil && body.PromptFeedback.BlockReason != "" {
			return "", inference.NewMalformedError("prompt was blocked: %s", body.PromptFeedback.BlockReason)
		}
		return "", inference.NewMalformedError("no candidates in response")
	}

	var builder strings.Builder
	for _, part := range body.Candidates[0].Content.Parts {
		builder.WriteString(part.Text)
	}
	text := strings.TrimSpace(builder.String())
	if text == "" {
		return "", inference.NewMalformedError("empty response text (finish reason %q)", body.Candidates[0].FinishReason)
	}
	return text, nil
}

// errorMessage pulls error.message out of a Google API error body, falling back to the raw body
func errorMessage(body string) string {
	var decoded errorResponse
	if err := json.Unmarshal([]byte(body), &decoded); err == nil && decoded.Error.Message != "" {
		return decoded.Error.Message
	}
	return body
}
