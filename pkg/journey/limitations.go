package journey

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// LimitationsTable maps business-model IDs to the free-tier limitations
// text used in the engagement stage.
//
// The table is external configuration: it is expected to cover every
// selectable model, and a missing entry is a configuration fault surfaced
// as a *LookupError, never a silent default. The table can be replaced
// atomically from a YAML file, which makes it safe to hot-reload while
// syntheses are running.
type LimitationsTable struct {
	mu      sync.RWMutex
	entries map[string]string
}

// LookupError indicates the selected model has no entry in the table.
// This means the model enumeration and the table have diverged.
type LookupError struct {
	ModelID string
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("no limitations entry for business model %q", e.ModelID)
}

// NewDefaultTable returns the compiled-in limitations table covering every
// built-in business model.
func NewDefaultTable() *LimitationsTable {
	return &LimitationsTable{
		entries: map[string]string{
			"freemium":    "Core features only, with usage caps on the free plan",
			"free-trial":  "Full access for the trial period, then a paid plan is required",
			"usage-trial": "Full access until the usage allowance is consumed",
			"open-core":   "Community edition lacks enterprise and collaboration features",
			"sandbox":     "Non-production use only, with reduced rate limits",
		},
	}
}

// NewTable returns a table with the given entries. Used by tests and by
// callers that build tables programmatically.
func NewTable(entries map[string]string) *LimitationsTable {
	copied := make(map[string]string, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return &LimitationsTable{entries: copied}
}

// Lookup returns the limitations text for the given model ID.
// A missing entry returns a *LookupError.
func (t *LimitationsTable) Lookup(modelID string) (string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	text, ok := t.entries[modelID]
	if !ok {
		return "", &LookupError{ModelID: modelID}
	}
	return text, nil
}

// LoadFile replaces the table contents from a YAML file holding a flat
// mapping of model ID to limitations text. The replacement is atomic: a
// parse failure leaves the current contents untouched.
func (t *LimitationsTable) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read limitations file %q: %w", path, err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse limitations file %q: %w", path, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("limitations file %q contains no entries", path)
	}

	t.mu.Lock()
	t.entries = entries
	t.mu.Unlock()

	return nil
}

// Len returns the number of entries in the table.
func (t *LimitationsTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
