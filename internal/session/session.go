package session

import (
	"context"
	"log"
	"sync"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
)

type Phase string

const (
	PhaseAnonymous      Phase = "anonymous"
	PhaseAuthenticating Phase = "authenticating"
	PhaseVerifying      Phase = "verifying"
	PhaseAuthenticated  Phase = "authenticated"
	PhaseLoggingOut     Phase = "loggingOut"
)

// API is the slice of the remote client the session needs.
type API interface {
	SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthPayload, error)
	SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthPayload, error)
	VerifyToken(ctx context.Context) (*domain.User, error)
	Logout(ctx context.Context) error
}

// TokenStore is the durable storage side of the session.
type TokenStore interface {
	Load() string
	Save(tok string) error
	Clear()
}

// State owns the session lifecycle: token, current user, phase, loading and
// last-error flags. All methods are safe for concurrent use; the lock is
// never held across a network call, so resolutions apply in completion order.
type State struct {
	mu     sync.Mutex
	api    API
	tokens TokenStore

	phase   Phase
	user    *domain.User
	token   string
	loading bool
	lastErr string
}

// Snapshot is what consumers render. Authenticated is true iff both user and
// token are present.
type Snapshot struct {
	Phase         Phase        `json:"phase"`
	User          *domain.User `json:"user,omitempty"`
	Authenticated bool         `json:"authenticated"`
	Loading       bool         `json:"loading"`
	LastError     string       `json:"lastError,omitempty"`
}

// New builds an anonymous session, picking up any token a previous run left
// in durable storage. A stored token alone does not authenticate: the caller
// decides whether to run VerifyToken on startup.
func New(remote API, tokens TokenStore) *State {
	return &State{
		api:    remote,
		tokens: tokens,
		phase:  PhaseAnonymous,
		token:  tokens.Load(),
	}
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	var u *domain.User
	if s.user != nil {
		cp := *s.user
		u = &cp
	}
	return Snapshot{
		Phase:         s.phase,
		User:          u,
		Authenticated: s.user != nil && s.token != "",
		Loading:       s.loading,
		LastError:     s.lastErr,
	}
}

// Token returns the current in-memory token ("" when anonymous).
func (s *State) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// HasStoredToken reports whether a cold start should attempt VerifyToken.
func (s *State) HasStoredToken() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.user == nil
}

func (s *State) SignUp(ctx context.Context, username, email, password string, role domain.UserRole) error {
	return s.authenticate(ctx, func(ctx context.Context) (*api.AuthPayload, error) {
		return s.api.SignUp(ctx, api.SignUpRequest{
			Username: username,
			Email:    email,
			Password: password,
			Role:     role,
		})
	})
}

func (s *State) SignIn(ctx context.Context, email, password string) error {
	return s.authenticate(ctx, func(ctx context.Context) (*api.AuthPayload, error) {
		return s.api.SignIn(ctx, api.SignInRequest{Email: email, Password: password})
	})
}

func (s *State) authenticate(ctx context.Context, call func(context.Context) (*api.AuthPayload, error)) error {
	s.mu.Lock()
	s.phase = PhaseAuthenticating
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	payload, err := call(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		// No partial user/token survives a failed attempt.
		s.user = nil
		s.token = ""
		s.phase = PhaseAnonymous
		s.lastErr = api.Message(err)
		s.tokens.Clear()
		return err
	}

	u := payload.User
	s.user = &u
	s.token = payload.Token
	s.phase = PhaseAuthenticated
	s.lastErr = ""
	if perr := s.tokens.Save(payload.Token); perr != nil {
		log.Printf("level=warn msg=\"token persist failed\" err=%v", perr)
	}
	return nil
}

// VerifyToken resolves a cold start where a token survived the reload but no
// user is held. A locally-expired token fails without a round trip. One
// failure is terminal for the attempt; it is never retried automatically.
func (s *State) VerifyToken(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" || s.user != nil {
		s.mu.Unlock()
		return nil
	}
	tok := s.token
	s.phase = PhaseVerifying
	s.loading = true
	s.mu.Unlock()

	var (
		user *domain.User
		err  error
	)
	if Expired(tok) {
		err = &api.Error{Message: "Session expired. Please sign in again."}
	} else {
		user, err = s.api.VerifyToken(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.user = nil
		s.token = ""
		s.phase = PhaseAnonymous
		s.lastErr = api.Message(err)
		s.tokens.Clear()
		return err
	}
	s.user = user
	s.phase = PhaseAuthenticated
	s.lastErr = ""
	return nil
}

// Logout is best effort remote, guaranteed local: whatever the server says,
// the local session and every durable store end up empty.
func (s *State) Logout(ctx context.Context) {
	s.mu.Lock()
	s.phase = PhaseLoggingOut
	s.loading = true
	s.mu.Unlock()

	if err := s.api.Logout(ctx); err != nil {
		log.Printf("level=warn msg=\"remote logout failed\" err=%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.clearLocked()
}

// Invalidate tears the session down without a remote call. Wired to the API
// client's 401 hook.
func (s *State) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *State) clearLocked() {
	s.user = nil
	s.token = ""
	s.phase = PhaseAnonymous
	s.tokens.Clear()
}

// ClearError drops only the last-error field.
func (s *State) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}
