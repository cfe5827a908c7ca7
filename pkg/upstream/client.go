package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"launchcanvas/atlas/pkg/config"
)

// maxResponseBodySize limits upstream response bodies (10MB).
const maxResponseBodySize = 10 * 1024 * 1024

// Client issues chat-completion requests to the upstream API.
//
// The client holds no credential; the API key is supplied per call so the
// gateway can resolve it from configuration on every request.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewClient creates a new upstream client with connection pooling.
func NewClient(cfg *config.UpstreamConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		logger: slog.Default().With("component", "upstream"),
	}
}

// Complete sends a completion request and returns the upstream response body
// verbatim. Any failure, transport-level or protocol-level, is returned as a
// *Error; no retries are attempted.
func (c *Client) Complete(ctx context.Context, apiKey string, req *CompletionRequest) ([]byte, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create upstream request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	c.logger.DebugContext(ctx, "sending upstream completion request",
		"model", req.Model,
	)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.WarnContext(ctx, "upstream request failed",
			"model", req.Model,
			"error", err,
		)
		return nil, &Error{Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to read upstream response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "upstream returned error status",
			"model", req.Model,
			"status", resp.StatusCode,
		)
		return nil, &Error{
			StatusCode: resp.StatusCode,
			Message:    upstreamErrorText(respBody),
		}
	}

	return respBody, nil
}

// CompleteText sends a completion request and extracts the assistant's reply
// text from the upstream response. Used by the connectivity probe.
func (c *Client) CompleteText(ctx context.Context, apiKey string, req *CompletionRequest) (string, error) {
	body, err := c.Complete(ctx, apiKey, req)
	if err != nil {
		return "", err
	}

	var reply completionReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return "", &Error{Message: fmt.Sprintf("failed to parse upstream response: %v", err)}
	}
	if len(reply.Choices) == 0 {
		return "", &Error{Message: "upstream response contained no choices"}
	}

	return reply.Choices[0].Message.Content, nil
}

// upstreamErrorText extracts a readable error message from an upstream error
// body. It prefers the standard {"error": {"message": ...}} shape and falls
// back to the raw body.
func upstreamErrorText(body []byte) string {
	var parsed struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		return "Unknown error"
	}
	return text
}
