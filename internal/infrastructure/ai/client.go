package ai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/shared"
	"github.com/chefcode/backend/internal/infrastructure/config"
)

// ErrNotConfigured is returned by every AI-backed operation when no API key
// is set. Handlers map it to a "service unavailable" response instead of
// failing hard, so the rest of the application works without AI.
var ErrNotConfigured = shared.NewDomainError("AI_UNAVAILABLE", "AI integration not configured. Set the API key to enable AI features.")

// Client talks to an OpenAI-compatible chat completions endpoint. It backs
// the chat command parser, the assistant's intent detector and the invoice
// line-item extractor.
type Client struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
}

// NewClient creates a Client from the AI configuration section.
func NewClient(cfg *config.AIConfig, logger *zap.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

type message struct {
	Role string `json:"role"`
	// Content is a plain string for text-only messages, or a []contentPart
	// for multimodal messages carrying an image.
	Content any `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Choices []struct {
		Index   int `json:"index"`
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chat performs one chat completion and returns the assistant's text.
func (c *Client) chat(ctx context.Context, messages []message, temperature float64, maxTokens int) (string, error) {
	if !c.Available() {
		return "", ErrNotConfigured
	}

	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("chat completion request rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("model", c.model))
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no response choices returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}

// dataURL encodes image bytes as a data URL for multimodal messages.
func dataURL(image []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}

// stripFences removes a surrounding markdown code fence from a model reply.
// Models occasionally wrap JSON in ```json blocks despite being told not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// extractJSONObject trims any stray prose before the first '{' so that a
// chatty reply still parses.
func extractJSONObject(s string) string {
	s = stripFences(s)
	if idx := strings.IndexByte(s, '{'); idx > 0 {
		s = s[idx:]
	}
	return s
}
