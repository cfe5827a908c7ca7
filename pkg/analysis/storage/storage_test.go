package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/journey"
)

// runStorageTests exercises the Storage contract against a backend.
func runStorageTests(t *testing.T, newStorage func(t *testing.T) analysis.Storage) {
	ctx := context.Background()

	newRecord := func(title string, createdAt time.Time) *analysis.Record {
		r := analysis.NewRecord(title)
		r.CreatedAt = createdAt
		r.UpdatedAt = createdAt
		r.Description = "Teams struggle to onboard."
		r.ModelID = "usage-trial"
		return r
	}

	t.Run("create and get round-trip", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		record := newRecord("Onboarding analysis", time.Now().UTC())
		record.Features = []journey.Feature{{Name: "Dashboard", Category: journey.CategoryCore}}
		record.Journey = &journey.UserJourney{
			Discovery: journey.DiscoveryStage{Problem: "Teams struggle to onboard"},
		}

		if err := s.Create(ctx, record); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		got, err := s.Get(ctx, record.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Title != record.Title {
			t.Errorf("title = %q, want %q", got.Title, record.Title)
		}
		if got.ModelID != record.ModelID {
			t.Errorf("modelID = %q, want %q", got.ModelID, record.ModelID)
		}
		if len(got.Features) != 1 || got.Features[0].Name != "Dashboard" {
			t.Errorf("features = %+v", got.Features)
		}
		if got.Journey == nil || got.Journey.Discovery.Problem != "Teams struggle to onboard" {
			t.Errorf("journey = %+v", got.Journey)
		}
	})

	t.Run("get missing record returns NotFoundError", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		_, err := s.Get(ctx, "no-such-id")
		var notFound *analysis.NotFoundError
		if !errors.As(err, &notFound) {
			t.Fatalf("error = %v, want *NotFoundError", err)
		}
		if notFound.ID != "no-such-id" {
			t.Errorf("not-found ID = %q", notFound.ID)
		}
	})

	t.Run("list orders newest first by default", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 3; i++ {
			r := newRecord("r", base.Add(time.Duration(i)*time.Minute))
			if err := s.Create(ctx, r); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		records, err := s.List(ctx, analysis.ListOptions{})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("List() returned %d records, want 3", len(records))
		}
		for i := 1; i < len(records); i++ {
			if records[i].CreatedAt.After(records[i-1].CreatedAt) {
				t.Errorf("records out of order at index %d", i)
			}
		}

		oldest, err := s.List(ctx, analysis.ListOptions{OldestFirst: true, Limit: 1})
		if err != nil {
			t.Fatalf("List(oldest) error = %v", err)
		}
		if len(oldest) != 1 || !oldest[0].CreatedAt.Equal(records[2].CreatedAt) {
			t.Errorf("oldest-first limit 1 returned wrong record")
		}
	})

	t.Run("list pagination", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		base := time.Now().UTC().Add(-time.Hour)
		for i := 0; i < 5; i++ {
			if err := s.Create(ctx, newRecord("r", base.Add(time.Duration(i)*time.Minute))); err != nil {
				t.Fatalf("Create() error = %v", err)
			}
		}

		page, err := s.List(ctx, analysis.ListOptions{Limit: 2, Offset: 2})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(page) != 2 {
			t.Errorf("page size = %d, want 2", len(page))
		}

		past, err := s.List(ctx, analysis.ListOptions{Offset: 10})
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(past) != 0 {
			t.Errorf("offset past end should return empty, got %d", len(past))
		}
	})

	t.Run("update replaces record", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		record := newRecord("Before", time.Now().UTC())
		if err := s.Create(ctx, record); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		record.Title = "After"
		record.UpdatedAt = time.Now().UTC()
		if err := s.Update(ctx, record); err != nil {
			t.Fatalf("Update() error = %v", err)
		}

		got, err := s.Get(ctx, record.ID)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got.Title != "After" {
			t.Errorf("title = %q after update", got.Title)
		}
	})

	t.Run("update missing record returns NotFoundError", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		var notFound *analysis.NotFoundError
		if err := s.Update(ctx, newRecord("ghost", time.Now().UTC())); !errors.As(err, &notFound) {
			t.Errorf("error = %v, want *NotFoundError", err)
		}
	})

	t.Run("delete removes record", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		record := newRecord("doomed", time.Now().UTC())
		if err := s.Create(ctx, record); err != nil {
			t.Fatalf("Create() error = %v", err)
		}

		if err := s.Delete(ctx, record.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}

		var notFound *analysis.NotFoundError
		if _, err := s.Get(ctx, record.ID); !errors.As(err, &notFound) {
			t.Errorf("record should be gone, got %v", err)
		}
		if err := s.Delete(ctx, record.ID); !errors.As(err, &notFound) {
			t.Errorf("double delete should return *NotFoundError, got %v", err)
		}
	})

	t.Run("delete older than cutoff", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		now := time.Now().UTC()
		old := newRecord("old", now.Add(-48*time.Hour))
		fresh := newRecord("fresh", now)
		if err := s.Create(ctx, old); err != nil {
			t.Fatalf("Create(old) error = %v", err)
		}
		if err := s.Create(ctx, fresh); err != nil {
			t.Fatalf("Create(fresh) error = %v", err)
		}

		deleted, err := s.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
		if err != nil {
			t.Fatalf("DeleteOlderThan() error = %v", err)
		}
		if deleted != 1 {
			t.Errorf("deleted = %d, want 1", deleted)
		}

		count, err := s.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 1 {
			t.Errorf("count = %d, want 1", count)
		}
		if _, err := s.Get(ctx, fresh.ID); err != nil {
			t.Errorf("fresh record should survive: %v", err)
		}
	})

	t.Run("count empty storage", func(t *testing.T) {
		s := newStorage(t)
		defer s.Close()

		count, err := s.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error = %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
	})
}
