// Package upstream provides the HTTP client for the upstream chat-completion
// API.
//
// The client is a thin, credential-carrying pass-through: it forwards a
// completion request and returns the upstream response body verbatim. A
// single upstream failure is surfaced immediately as a typed *Error; the
// client never retries. Callers control cancellation through the request
// context.
package upstream
