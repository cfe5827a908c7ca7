// Package secrets provides resolution of server-held secrets such as the
// upstream API credential.
//
// The gateway reads the upstream credential through a Resolver on every
// request; an absent secret is a configuration fault surfaced as a typed
// error, never a panic. Secret values must never appear in log output.
package secrets

import (
	"fmt"
	"os"
	"strings"
)

// Resolver retrieves secrets from a backend.
type Resolver interface {
	// GetSecret retrieves a secret by name.
	// Returns a *NotFoundError if the secret is not configured.
	GetSecret(name string) (string, error)
}

// NotFoundError indicates a secret is not configured in the backend.
// This distinguishes operator misconfiguration from transient failures.
type NotFoundError struct {
	// Name is the logical secret name (e.g., "openai-api-key").
	Name string

	// Source describes where the secret was looked up (e.g., the env var name).
	Source string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("secret %q not configured (source: %s)", e.Name, e.Source)
}

// EnvResolver loads secrets from environment variables.
//
// Secret names are converted to uppercase environment variable names with
// hyphens replaced by underscores, prefixed with the configured prefix.
//
// Example:
//   - Secret name: "openai-api-key"
//   - Env var name: "ATLAS_SECRET_OPENAI_API_KEY" (with prefix "ATLAS_SECRET_")
type EnvResolver struct {
	// Prefix is prepended to all environment variable names.
	Prefix string
}

// NewEnvResolver creates a new environment variable secret resolver.
func NewEnvResolver(prefix string) *EnvResolver {
	return &EnvResolver{Prefix: prefix}
}

// GetSecret retrieves a secret from an environment variable.
//
// The secret name is converted to an environment variable name by
// uppercasing, replacing hyphens with underscores, and prepending the
// configured prefix. An empty variable counts as absent.
func (r *EnvResolver) GetSecret(name string) (string, error) {
	envVar := r.secretNameToEnvVar(name)

	value := os.Getenv(envVar)
	if value == "" {
		return "", &NotFoundError{Name: name, Source: envVar}
	}

	return value, nil
}

// secretNameToEnvVar converts a secret name to an environment variable name.
//
// Example: "openai-api-key" -> "ATLAS_SECRET_OPENAI_API_KEY"
func (r *EnvResolver) secretNameToEnvVar(name string) string {
	envVar := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
	return r.Prefix + envVar
}
