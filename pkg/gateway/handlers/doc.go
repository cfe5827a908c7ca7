// Package handlers contains the gateway's HTTP request handlers: the
// forward-completion endpoint, the upstream connectivity probe, the
// analysis record CRUD endpoints, and health checks.
package handlers
