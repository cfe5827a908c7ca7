// Package types defines the wire-level request and response documents for
// the gateway HTTP surface.
package types
