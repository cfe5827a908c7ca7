// Package gateway implements the stateless HTTP gateway that forwards
// chat-completion requests to the upstream LLM API without exposing the
// server-held credential to browser clients.
//
// The gateway is a credential-hiding, error-normalizing pass-through, not a
// business-logic layer. Each request is handled independently; the only
// blocking point is the outbound upstream call, which is never retried.
// Every response, success or failure, carries the permissive CORS header
// set so browser clients can call the gateway directly.
package gateway
