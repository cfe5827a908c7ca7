// Package middleware provides the HTTP middleware chain for the gateway:
// CORS, request ID assignment, request logging, and panic recovery.
package middleware
