package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/config"
)

func newTestSQLiteStorage(t *testing.T) analysis.Storage {
	t.Helper()

	cfg := &config.SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "analyses.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}

	s, err := NewSQLiteStorage(cfg, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}
	return s
}

func TestSQLiteStorage(t *testing.T) {
	runStorageTests(t, newTestSQLiteStorage)
}

func TestSQLiteStorageReopen(t *testing.T) {
	cfg := &config.SQLiteConfig{
		Path:         filepath.Join(t.TempDir(), "analyses.db"),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		WALMode:      true,
		BusyTimeout:  5 * time.Second,
	}

	s, err := NewSQLiteStorage(cfg, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() error = %v", err)
	}

	record := analysis.NewRecord("persistent")
	if err := s.Create(context.Background(), record); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := NewSQLiteStorage(cfg, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStorage() reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(context.Background(), record.ID)
	if err != nil {
		t.Fatalf("Get() after reopen error = %v", err)
	}
	if got.Title != "persistent" {
		t.Errorf("title = %q", got.Title)
	}
}
