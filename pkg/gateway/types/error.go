package types

// ErrorResponse is the normalized error document returned by every gateway
// failure path: {"error": "...", "message": "..."} with message optional.
type ErrorResponse struct {
	// Error is the stable, category-identifying error string.
	Error string `json:"error"`

	// Message carries additional detail, typically upstream error text.
	Message string `json:"message,omitempty"`
}

// Caller-facing error strings. These are part of the HTTP contract and must
// not change without versioning the API.
const (
	// MsgInvalidParams is returned with status 400 when required request
	// fields are missing or malformed.
	MsgInvalidParams = "Invalid request parameters. Required: model, messages (array)"

	// MsgKeyNotConfigured is returned with status 500 when the server-held
	// upstream credential is absent. This is an operator fault, not a
	// caller fault.
	MsgKeyNotConfigured = "OpenAI API key not configured on the server"

	// MsgProcessingError is returned with status 500 when the upstream call
	// fails on the forward-completion endpoint.
	MsgProcessingError = "Error processing OpenAI request"

	// MsgProbeError is returned with status 500 when the upstream call
	// fails on the connectivity-probe endpoint.
	MsgProbeError = "Error testing OpenAI API"

	// MsgUnknownError is used when no upstream error text is available.
	MsgUnknownError = "Unknown error"
)

// NewInvalidParamsError returns the validation failure response.
func NewInvalidParamsError() *ErrorResponse {
	return &ErrorResponse{Error: MsgInvalidParams}
}

// NewKeyNotConfiguredError returns the missing-credential response.
func NewKeyNotConfiguredError() *ErrorResponse {
	return &ErrorResponse{Error: MsgKeyNotConfigured}
}

// NewUpstreamError returns the upstream-failure response for the given
// endpoint error string, carrying the upstream error text when available.
func NewUpstreamError(errorMsg, detail string) *ErrorResponse {
	if detail == "" {
		detail = MsgUnknownError
	}
	return &ErrorResponse{Error: errorMsg, Message: detail}
}

// ProbeResponse is the success document returned by the connectivity probe.
type ProbeResponse struct {
	// Message is the fixed success indicator.
	Message string `json:"message"`

	// Response is the upstream assistant's reply text.
	Response string `json:"response"`
}

// ProbeSuccessMessage is the fixed success indicator for the probe endpoint.
const ProbeSuccessMessage = "OpenAI API test successful"
