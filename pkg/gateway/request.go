package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"launchcanvas/atlas/pkg/gateway/types"
)

// MaxRequestBodySize is the maximum allowed request body size (10MB).
const MaxRequestBodySize = 10 * 1024 * 1024

// ParseChatCompletionRequest parses an HTTP request body into a
// ChatCompletionRequest. It enforces the body size limit, parses the JSON,
// and validates required fields. All failures are returned as a
// *RequestError, which the handler maps to the single 400 validation
// response.
func ParseChatCompletionRequest(r *http.Request) (*types.ChatCompletionRequest, error) {
	limitedReader := io.LimitReader(r.Body, MaxRequestBodySize)

	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}

	if len(body) >= MaxRequestBodySize {
		return nil, &RequestError{
			Reason: fmt.Sprintf("request body exceeds maximum size of %d bytes", MaxRequestBodySize),
		}
	}

	var req types.ChatCompletionRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &RequestError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := req.Validate(); err != nil {
		return nil, &RequestError{Reason: err.Error()}
	}

	return &req, nil
}

// RequestError represents a request parsing or validation failure.
// Reason is for logs only; the caller-facing message is always the fixed
// validation literal.
type RequestError struct {
	Reason string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return e.Reason
}
