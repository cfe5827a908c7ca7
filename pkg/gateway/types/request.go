package types

import "encoding/json"

// ChatCompletionRequest represents a chat-completion request accepted by the
// forward-completion endpoint.
//
// Messages and the optional directives are held as raw JSON: the gateway
// validates shape, not content, and forwards the caller's payload verbatim.
// Optional directives the caller omitted are nil and stay off the wire.
type ChatCompletionRequest struct {
	// Model is the identifier of the model to use. Required.
	Model string `json:"model"`

	// Messages is the conversation history. Required, must be a JSON array.
	Messages json.RawMessage `json:"messages"`

	// FunctionCall is the optional function-call directive.
	FunctionCall json.RawMessage `json:"function_call,omitempty"`

	// ResponseFormat is the optional response-format directive.
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

// Validate checks that the required fields are present and correctly shaped:
// model non-empty, messages present, array-shaped, and non-empty. Absence of
// either field is a validation failure, not a defaulted value.
func (r *ChatCompletionRequest) Validate() error {
	if r.Model == "" {
		return &ValidationError{Field: "model"}
	}

	if r.Messages == nil {
		return &ValidationError{Field: "messages"}
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(r.Messages, &elements); err != nil {
		return &ValidationError{Field: "messages"}
	}
	if len(elements) == 0 {
		return &ValidationError{Field: "messages"}
	}

	return nil
}

// ValidationError represents a request validation failure. All validation
// failures map to the same caller-facing message; Field records which field
// failed for logging.
type ValidationError struct {
	Field string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "invalid request parameters: " + e.Field
}
