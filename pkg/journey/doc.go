// Package journey derives the user-journey document from product-strategy
// form state.
//
// Synthesize is a pure function over five inputs: the selected business
// model, the free-tier feature list, the challenge list, the solution list,
// and the product description. It produces a fresh UserJourney on every
// call; it never mutates a prior document, performs no I/O, and is
// deterministic for equal inputs.
//
// The engagement stage's limitations text comes from an external
// per-model table (LimitationsTable) that can be loaded from YAML and
// hot-reloaded through a file watcher. A table gap for a selectable model
// is a configuration fault and fails the whole computation.
package journey
