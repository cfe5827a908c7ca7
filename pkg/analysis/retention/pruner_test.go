package retention

import (
	"context"
	"testing"
	"time"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/analysis/storage"
	"launchcanvas/atlas/pkg/config"
)

func seedRecords(t *testing.T, s analysis.Storage, ages ...time.Duration) []*analysis.Record {
	t.Helper()

	now := time.Now().UTC()
	records := make([]*analysis.Record, 0, len(ages))
	for _, age := range ages {
		r := analysis.NewRecord("seeded")
		r.CreatedAt = now.Add(-age)
		r.UpdatedAt = r.CreatedAt
		if err := s.Create(context.Background(), r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		records = append(records, r)
	}
	return records
}

func TestPrunerByAge(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	seedRecords(t, s,
		100*24*time.Hour, // well past retention
		50*24*time.Hour,  // within retention
		time.Hour,        // fresh
	)

	pruner := NewPruner(s, &config.RetentionConfig{RetentionDays: 90}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	count, err := s.Count(context.Background())
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPrunerByCount(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	records := seedRecords(t, s,
		3*time.Hour,
		2*time.Hour,
		time.Hour,
	)

	pruner := NewPruner(s, &config.RetentionConfig{MaxRecords: 2}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	// The oldest record goes first.
	if _, err := s.Get(context.Background(), records[0].ID); err == nil {
		t.Error("oldest record should have been pruned")
	}
	if _, err := s.Get(context.Background(), records[2].ID); err != nil {
		t.Errorf("newest record should survive: %v", err)
	}
}

func TestPrunerBothPhases(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	seedRecords(t, s,
		100*24*time.Hour,
		4*time.Hour,
		3*time.Hour,
		2*time.Hour,
		time.Hour,
	)

	pruner := NewPruner(s, &config.RetentionConfig{RetentionDays: 90, MaxRecords: 2}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	// 1 by age, then 2 more by count.
	if deleted != 3 {
		t.Errorf("deleted = %d, want 3", deleted)
	}

	count, _ := s.Count(context.Background())
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestPrunerDisabled(t *testing.T) {
	s := storage.NewMemoryStorage()
	defer s.Close()

	seedRecords(t, s, 1000*24*time.Hour)

	pruner := NewPruner(s, &config.RetentionConfig{}, nil)

	deleted, err := pruner.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0 with pruning disabled", deleted)
	}
}
