package analytics

import (
	"context"
	"sync"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
)

// API is the slice of the remote client the analytics view needs.
type API interface {
	JobStats(ctx context.Context) (*domain.JobStats, error)
}

// State holds the dashboard stats. Same contract as the other slices:
// loading flag, last-error message cleared only explicitly.
type State struct {
	mu  sync.Mutex
	api API

	stats   domain.JobStats
	fetched bool
	loading bool
	lastErr string
}

type Snapshot struct {
	Stats     domain.JobStats `json:"stats"`
	Fetched   bool            `json:"fetched"`
	Loading   bool            `json:"loading"`
	LastError string          `json:"lastError,omitempty"`
}

func New(remote API) *State {
	return &State{api: remote}
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Stats: s.stats, Fetched: s.fetched, Loading: s.loading, LastError: s.lastErr}
}

// Refresh pulls the server's stats. A failure keeps the last good numbers.
func (s *State) Refresh(ctx context.Context) (*domain.JobStats, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	st, err := s.api.JobStats(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return nil, err
	}
	s.stats = *st
	s.fetched = true
	s.lastErr = ""
	cp := s.stats
	return &cp, nil
}

// ClearError drops only the last-error field.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
