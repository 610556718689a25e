// Package llmvalidate implements the gray-zone LLM adjudicator: a JSON-only
// HTTP client, a validator that wraps it with disabled/error fallbacks, a
// sliding-window circuit breaker, and a per-entity-type call budget (§4.4).
package llmvalidate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestMeta carries the per-call telemetry the router needs to update
// pipeline_run_metrics (latency, retry flag).
type RequestMeta struct {
	RequestID           string
	LatencyMs           int64
	InvalidJSONRetry    bool
}

// Client sends adjudication requests to a provider-agnostic chat-completion
// endpoint and extracts the reply content regardless of whether the
// provider nests it under `content` or an OpenAI-shaped `choices[]` array.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

// NewClient builds a Client bound to requestURL with the given bearer token
// and per-call timeout.
func NewClient(requestURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		url:    requestURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatChoice struct {
	Message *chatMessage `json:"message"`
	Text    string       `json:"text"`
}

type chatResponse struct {
	Content string       `json:"content"`
	Choices []chatChoice `json:"choices"`
}

// RequestJSON sends (systemPrompt, userPrompt) and parses the reply as JSON.
// On a malformed reply it retries once with an instructional preamble
// prepended to the user prompt, summing both requests' latency into the
// returned RequestMeta. A second decode failure surfaces as an error (§4.4).
func (c *Client) RequestJSON(ctx context.Context, systemPrompt, userPrompt string) (map[string]interface{}, RequestMeta, error) {
	meta := RequestMeta{RequestID: uuid.NewString()}

	payload, latency, err := c.send(ctx, systemPrompt, userPrompt)
	meta.LatencyMs += latency
	if err != nil {
		return nil, meta, fmt.Errorf("llm request %s failed: %w", meta.RequestID, err)
	}

	parsed, decodeErr := decodeJSONReply(payload)
	if decodeErr == nil {
		return parsed, meta, nil
	}
	log.Warn().Str("request_id", meta.RequestID).Msg("llm reply was not valid JSON, retrying once")

	meta.InvalidJSONRetry = true
	retryPrompt := "Return valid JSON only, with no surrounding prose.\n\n" + userPrompt
	payload, latency, err = c.send(ctx, systemPrompt, retryPrompt)
	meta.LatencyMs += latency
	if err != nil {
		return nil, meta, fmt.Errorf("llm request %s failed on retry: %w", meta.RequestID, err)
	}

	parsed, decodeErr = decodeJSONReply(payload)
	if decodeErr != nil {
		return nil, meta, fmt.Errorf("llm request %s returned invalid JSON twice: %w", meta.RequestID, decodeErr)
	}
	return parsed, meta, nil
}

func (c *Client) send(ctx context.Context, systemPrompt, userPrompt string) (string, int64, error) {
	body, err := json.Marshal(chatRequest{
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode llm request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("failed to build llm request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	latencyMs := time.Since(started).Milliseconds()
	if err != nil {
		return "", latencyMs, fmt.Errorf("llm transport error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", latencyMs, fmt.Errorf("failed to read llm response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", latencyMs, fmt.Errorf("llm returned status %d: %s", resp.StatusCode, string(raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", latencyMs, fmt.Errorf("failed to unmarshal llm envelope: %w", err)
	}

	return extractContent(parsed), latencyMs, nil
}

// extractContent tries, in order: top-level content, choices[0].message.content,
// choices[0].text (§4.4).
func extractContent(resp chatResponse) string {
	if resp.Content != "" {
		return resp.Content
	}
	if len(resp.Choices) > 0 {
		if resp.Choices[0].Message != nil && resp.Choices[0].Message.Content != "" {
			return resp.Choices[0].Message.Content
		}
		return resp.Choices[0].Text
	}
	return ""
}

func decodeJSONReply(content string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, err
	}
	return out, nil
}
