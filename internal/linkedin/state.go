package linkedin

import (
	"context"
	"errors"
	"strings"
	"sync"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
)

// Platform is the identifier the publish step gates on.
const Platform = "linkedin"

var (
	ErrNotConnected = errors.New("LinkedIn account is not connected")
	ErrTokenExpired = errors.New("LinkedIn access token has expired; please reconnect")
)

// API is the slice of the remote client this state needs.
type API interface {
	LinkedInStatus(ctx context.Context) (*domain.LinkedInStatus, error)
	LinkedInAuthURL(ctx context.Context) (string, error)
	DisconnectLinkedIn(ctx context.Context) error
}

// State tracks the OAuth connection sub-resource. A failed status fetch
// downgrades to "not connected"; it never upgrades.
type State struct {
	mu  sync.Mutex
	api API

	status  domain.LinkedInStatus
	fetched bool
	loading bool
	lastErr string
}

type Snapshot struct {
	Status    domain.LinkedInStatus `json:"status"`
	Loading   bool                  `json:"loading"`
	LastError string                `json:"lastError,omitempty"`
}

func New(remote API) *State {
	return &State{api: remote}
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Status: s.status, Loading: s.loading, LastError: s.lastErr}
}

// FetchStatus refreshes from the server. Idempotent; safe to call every time
// a publish surface opens.
func (s *State) FetchStatus(ctx context.Context) domain.LinkedInStatus {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	st, err := s.api.LinkedInStatus(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.fetched = true
	if err != nil {
		// Unknown is treated as disconnected, never as connected.
		s.status = domain.LinkedInStatus{}
		s.lastErr = api.Message(err)
		return s.status
	}
	s.status = *st
	s.lastErr = ""
	return s.status
}

// CanPublish is the synchronous gate the publish step consults at call time.
// Platforms other than LinkedIn pass through.
func (s *State) CanPublish(platform string) error {
	if !strings.EqualFold(platform, Platform) {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.status.IsConnected {
		return ErrNotConnected
	}
	if !s.status.TokenValid {
		return ErrTokenExpired
	}
	return nil
}

// StartConnect asks the server for the provider authorization URL. The
// caller performs the navigation; nothing changes here until the callback.
func (s *State) StartConnect(ctx context.Context) (string, error) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	authURL, err := s.api.LinkedInAuthURL(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return "", err
	}
	s.lastErr = ""
	return authURL, nil
}

// Disconnect resets to disconnected only after the round trip succeeds.
func (s *State) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	err := s.api.DisconnectLinkedIn(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.lastErr = api.Message(err)
		return err
	}
	s.status = domain.LinkedInStatus{}
	s.lastErr = ""
	return nil
}

// ClearError drops only the last-error field.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
