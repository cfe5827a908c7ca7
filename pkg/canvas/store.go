// Package canvas holds the product-strategy form state and keeps the
// derived user journey consistent with it.
//
// The store exposes one update operation per form slice. Each update
// recomputes the journey synchronously under the store's lock, so the
// journey slot always reflects the inputs at the time of the last
// completed update and no two recomputations can race. The store is the
// sole writer of the journey slot.
package canvas

import (
	"log/slog"
	"sync"

	"launchcanvas/atlas/pkg/journey"
)

// Store is the shared form-state container.
type Store struct {
	mu     sync.RWMutex
	logger *slog.Logger

	model       *journey.BusinessModel
	features    []journey.Feature
	challenges  []journey.Challenge
	solutions   []journey.Solution
	description string

	journey *journey.UserJourney
	table   *journey.LimitationsTable
}

// NewStore creates an empty store backed by the given limitations table.
// A nil table falls back to the compiled-in defaults.
func NewStore(table *journey.LimitationsTable, logger *slog.Logger) *Store {
	if table == nil {
		table = journey.NewDefaultTable()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		table:  table,
		logger: logger.With("component", "canvas"),
	}
}

// SetModel updates the selected business model and recomputes the journey.
func (s *Store) SetModel(m *journey.BusinessModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = m
	return s.recompute()
}

// SetFeatures replaces the free-tier feature list and recomputes the journey.
func (s *Store) SetFeatures(features []journey.Feature) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.features = cloneSlice(features)
	return s.recompute()
}

// SetChallenges replaces the challenge list and recomputes the journey.
func (s *Store) SetChallenges(challenges []journey.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.challenges = cloneSlice(challenges)
	return s.recompute()
}

// SetSolutions replaces the solution list and recomputes the journey.
func (s *Store) SetSolutions(solutions []journey.Solution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.solutions = cloneSlice(solutions)
	return s.recompute()
}

// SetDescription updates the product description and recomputes the journey.
func (s *Store) SetDescription(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.description = text
	return s.recompute()
}

// Reset clears all form state, including the journey slot.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = nil
	s.features = nil
	s.challenges = nil
	s.solutions = nil
	s.description = ""
	s.journey = nil
}

// Journey returns the current derived journey, or nil when no satisfying
// computation has happened yet.
func (s *Store) Journey() *journey.UserJourney {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journey
}

// Snapshot returns a copy of the current form-state inputs.
func (s *Store) Snapshot() journey.Inputs {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return journey.Inputs{
		Model:       s.model,
		Features:    cloneSlice(s.features),
		Challenges:  cloneSlice(s.challenges),
		Solutions:   cloneSlice(s.solutions),
		Description: s.description,
	}
}

// recompute runs the synthesizer over the current inputs. Caller holds the
// write lock. A nil result without error means the synthesizer declined to
// compute and the stored journey stays as-is; an error also leaves the
// previous journey untouched.
func (s *Store) recompute() error {
	in := journey.Inputs{
		Model:       s.model,
		Features:    s.features,
		Challenges:  s.challenges,
		Solutions:   s.solutions,
		Description: s.description,
	}

	next, err := journey.Synthesize(in, s.table)
	if err != nil {
		s.logger.Error("Journey synthesis failed", "error", err)
		return err
	}
	if next == nil {
		return nil
	}

	s.journey = next
	return nil
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
