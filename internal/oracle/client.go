package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultBaseURL = "https://api.anthropic.com"

// Client calls the Anthropic Messages API.
type Client struct {
	http      *resty.Client
	apiKey    string
	model     string
	maxTokens int
}

// NewClient creates an oracle client. A missing API key is allowed here;
// Generate then returns an error that callers degrade on.
func NewClient(apiKey, model string, maxTokens int, proxyURL string) *Client {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	c := resty.New().
		SetBaseURL(defaultBaseURL).
		SetTimeout(120 * time.Second).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("content-type", "application/json")
	if proxyURL != "" {
		c.SetProxy(proxyURL)
	}
	return &Client{http: c, apiKey: apiKey, model: model, maxTokens: maxTokens}
}

type messagesRequest struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system,omitempty"`
	Messages    []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends one system-instruction + data-context exchange and returns
// the concatenated text blocks of the response.
func (c *Client) Generate(ctx context.Context, systemInstruction, dataContext string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("oracle not configured: missing API key")
	}

	var result messagesResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("x-api-key", c.apiKey).
		SetBody(messagesRequest{
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: 0.3,
			System:      systemInstruction,
			Messages:    []message{{Role: "user", Content: dataContext}},
		}).
		SetResult(&result).
		SetError(&result).
		Post("/v1/messages")
	if err != nil {
		return "", fmt.Errorf("oracle request: %w", err)
	}
	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("oracle API error: %s: %s", result.Error.Type, result.Error.Message)
		}
		return "", fmt.Errorf("oracle API error: status %d", resp.StatusCode())
	}

	text := ""
	for _, block := range result.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return "", fmt.Errorf("oracle returned no text content")
	}
	return text, nil
}
