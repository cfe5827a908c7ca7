package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"launchcanvas/atlas/pkg/analysis"
)

// MemoryStorage implements the Storage interface using an in-memory map.
// Records do not survive process restarts.
type MemoryStorage struct {
	records map[string]*analysis.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory storage backend.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[string]*analysis.Record),
	}
}

// Create persists a new record.
func (s *MemoryStorage) Create(ctx context.Context, record *analysis.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[record.ID]; exists {
		return analysis.NewStorageError("memory", "create",
			&duplicateIDError{ID: record.ID})
	}

	// Copy to avoid mutation through the caller's pointer
	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Get retrieves a record by ID.
func (s *MemoryStorage) Get(ctx context.Context, id string) (*analysis.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[id]
	if !ok {
		return nil, &analysis.NotFoundError{ID: id}
	}

	recordCopy := *record
	return &recordCopy, nil
}

// List returns records ordered by creation time.
func (s *MemoryStorage) List(ctx context.Context, opts analysis.ListOptions) ([]*analysis.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]*analysis.Record, 0, len(s.records))
	for _, record := range s.records {
		recordCopy := *record
		results = append(results, &recordCopy)
	}

	sort.Slice(results, func(i, j int) bool {
		if opts.OldestFirst {
			return results[i].CreatedAt.Before(results[j].CreatedAt)
		}
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})

	start := opts.Offset
	if start > len(results) {
		return []*analysis.Record{}, nil
	}
	results = results[start:]

	if opts.Limit > 0 && opts.Limit < len(results) {
		results = results[:opts.Limit]
	}

	return results, nil
}

// Update replaces an existing record.
func (s *MemoryStorage) Update(ctx context.Context, record *analysis.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; !ok {
		return &analysis.NotFoundError{ID: record.ID}
	}

	recordCopy := *record
	s.records[record.ID] = &recordCopy

	return nil
}

// Delete removes a record by ID.
func (s *MemoryStorage) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return &analysis.NotFoundError{ID: id}
	}

	delete(s.records, id)
	return nil
}

// DeleteOlderThan removes records created before the cutoff.
func (s *MemoryStorage) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, record := range s.records {
		if record.CreatedAt.Before(cutoff) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Count returns the number of stored records.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

// Close releases resources held by the storage backend.
func (s *MemoryStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*analysis.Record)
	return nil
}

type duplicateIDError struct {
	ID string
}

func (e *duplicateIDError) Error() string {
	return "record " + e.ID + " already exists"
}
