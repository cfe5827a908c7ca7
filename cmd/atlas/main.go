// Atlas is an HTTP gateway and strategy engine for product-launch planning.
//
// It forwards chat-completion requests to an upstream LLM API while keeping
// the API credential server-side, derives user-journey documents from
// product-canvas form state, and persists saved analyses.
//
// Usage:
//
//	# Start the gateway with default configuration
//	atlas run
//
//	# Start with a custom configuration file
//	atlas run --config /path/to/config.yaml
//
//	# Validate configuration without starting
//	atlas validate
//
//	# Show version information
//	atlas version
package main

func main() {
	Execute()
}
