// Package storage provides analysis.Storage implementations: an in-memory
// backend for testing and small deployments, and a SQLite backend for
// durable persistence.
package storage
