package middleware

// contextKey is a private type for context keys defined in this package.
type contextKey string

const (
	// RequestIDKey is the context key holding the request ID.
	RequestIDKey contextKey = "request_id"
)
