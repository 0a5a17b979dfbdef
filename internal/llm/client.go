// Package llm talks to an OpenAI-compatible chat-completions endpoint and
// maps provider failures onto domain errors.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Message roles replayed to the model. Ordering of messages is significant
// and preserved as given.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls a chat-completions API. It is safe to copy via
// WithCredentials; copies share the underlying http.Client.
type Client struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	log        *slog.Logger
}

func NewClient(baseURL, apiKey, model string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint: normalizeEndpoint(baseURL),
		apiKey:   apiKey,
		model:    model,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		log: log,
	}
}

// WithCredentials returns a copy of the client using the given API key and
// model where non-empty. Requests carry per-caller provider credentials, so
// handlers derive a client per request from the shared one.
func (c *Client) WithCredentials(apiKey, model string) *Client {
	cp := *c
	if apiKey != "" {
		cp.apiKey = apiKey
	}
	if model != "" {
		cp.model = model
	}
	return &cp
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	Stream      bool      `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Chat sends the ordered message sequence and returns the generated text.
// Blocking, no streaming, no retries: failures surface immediately.
func (c *Client) Chat(ctx context.Context, messages []Message) (string, error) {
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: 0.1,
		Stream:      false,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	c.log.Debug("model call",
		"model", c.model,
		"messages", len(messages),
		"prompt_tokens", countTokens(body),
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("chat api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyAPIError(resp.StatusCode, apiErrorMessage(respBody))
	}

	var apiResp chatResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != nil {
		return "", classifyAPIError(resp.StatusCode, apiResp.Error.Message)
	}
	if len(apiResp.Choices) == 0 {
		return "", &GatewayError{StatusCode: resp.StatusCode, Message: "empty response from model"}
	}

	return strings.TrimSpace(apiResp.Choices[0].Message.Content), nil
}

// apiErrorMessage pulls the provider's error message out of an error body,
// falling back to the raw body.
func apiErrorMessage(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return string(body)
}

func normalizeEndpoint(baseURL string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if endpoint == "" {
		endpoint = "https://api.deepseek.com/v1"
	}
	if !strings.HasSuffix(endpoint, "/chat/completions") {
		endpoint += "/chat/completions"
	}
	return endpoint
}
