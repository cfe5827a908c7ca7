// Package server provides the HTTP gateway server.
//
// This package ties together the gateway handlers and middleware and
// provides server lifecycle management including start, graceful shutdown,
// and OS signal handling (SIGTERM, SIGINT).
//
// # Routes
//
// The server exposes the following HTTP endpoints:
//
//   - POST /v1/chat/completions - forward a chat completion upstream
//   - POST /v1/chat/probe - upstream connectivity probe
//   - POST/GET /v1/analyses - create or list saved analyses
//   - GET/DELETE /v1/analyses/{id} - fetch or delete one analysis
//   - GET /healthz - liveness probe (always returns 200)
//   - GET /metrics - Prometheus metrics (when enabled)
//
// # Middleware Chain
//
// Requests pass through the following middleware (innermost to outermost):
//  1. CORS: attaches the cross-origin header set and answers preflight
//  2. RequestID: generates a unique request ID for tracing
//  3. Logging: logs request/response details
//  4. Recovery: recovers from panics and returns a 500 error
//
// The CORS headers appear on every response, success or failure; browser
// clients call the gateway directly.
package server
