package analysis

import (
	"context"
	"time"

	"github.com/google/uuid"

	"launchcanvas/atlas/pkg/journey"
)

// Record is a saved analysis: a snapshot of the canvas form state and the
// journey derived from it.
type Record struct {
	// Identity
	ID string `json:"id"` // UUID v4

	// Timestamps
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Canvas snapshot
	Title       string               `json:"title"`
	Description string               `json:"description"`
	ModelID     string               `json:"model_id"`
	Features    []journey.Feature    `json:"features,omitempty"`
	Challenges  []journey.Challenge  `json:"challenges,omitempty"`
	Solutions   []journey.Solution   `json:"solutions,omitempty"`
	Journey     *journey.UserJourney `json:"journey,omitempty"`
}

// NewRecord creates a record with a fresh UUID and creation timestamps.
func NewRecord(title string) *Record {
	now := time.Now().UTC()
	return &Record{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Title:     title,
	}
}

// ListOptions controls pagination and ordering for List queries.
type ListOptions struct {
	// Limit caps the number of records returned. Zero means no limit.
	Limit int

	// Offset skips the first N records.
	Offset int

	// OldestFirst orders results by creation time ascending. The default
	// ordering is newest first.
	OldestFirst bool
}

// Storage is the persistence contract for analysis records.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Create persists a new record. A record with the same ID must not
	// already exist.
	Create(ctx context.Context, record *Record) error

	// Get retrieves a record by ID. A missing record returns *NotFoundError.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns records ordered by creation time.
	List(ctx context.Context, opts ListOptions) ([]*Record, error)

	// Update replaces an existing record. A missing record returns
	// *NotFoundError.
	Update(ctx context.Context, record *Record) error

	// Delete removes a record by ID. A missing record returns *NotFoundError.
	Delete(ctx context.Context, id string) error

	// DeleteOlderThan removes records created before the cutoff and returns
	// the number deleted.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases resources held by the backend.
	Close() error
}
