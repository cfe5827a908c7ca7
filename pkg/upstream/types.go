package upstream

import "encoding/json"

// CompletionRequest is the payload forwarded to the upstream completion API.
//
// Messages and the optional directives are carried as raw JSON so the
// gateway forwards exactly what the caller supplied. Optional fields that
// the caller omitted stay omitted on the wire (nil RawMessage + omitempty),
// never forwarded as null.
type CompletionRequest struct {
	// Model is the identifier of the model to use.
	Model string `json:"model"`

	// Messages is the conversation history, forwarded verbatim.
	Messages json.RawMessage `json:"messages"`

	// FunctionCall is the optional function-call directive.
	FunctionCall json.RawMessage `json:"function_call,omitempty"`

	// ResponseFormat is the optional response-format directive.
	ResponseFormat json.RawMessage `json:"response_format,omitempty"`
}

// completionReply is the minimal upstream response shape needed to extract
// the assistant's reply text. Only the probe uses this; the forward path
// passes the body through without parsing.
type completionReply struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}
