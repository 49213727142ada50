package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrms-engine/internal/api"
	"hrms-engine/internal/domain"
)

type stubAPI struct {
	signIn  func(api.SignInRequest) (*api.AuthPayload, error)
	signUp  func(api.SignUpRequest) (*api.AuthPayload, error)
	verify  func() (*domain.User, error)
	logout  func() error
	verifyN int
}

func (s *stubAPI) SignIn(ctx context.Context, req api.SignInRequest) (*api.AuthPayload, error) {
	return s.signIn(req)
}

func (s *stubAPI) SignUp(ctx context.Context, req api.SignUpRequest) (*api.AuthPayload, error) {
	return s.signUp(req)
}

func (s *stubAPI) VerifyToken(ctx context.Context) (*domain.User, error) {
	s.verifyN++
	if s.verify == nil {
		return nil, &api.Error{Message: "no stub"}
	}
	return s.verify()
}

func (s *stubAPI) Logout(ctx context.Context) error {
	if s.logout == nil {
		return nil
	}
	return s.logout()
}

type memTokens struct{ tok string }

func (m *memTokens) Load() string          { return m.tok }
func (m *memTokens) Save(tok string) error { m.tok = tok; return nil }
func (m *memTokens) Clear()                { m.tok = "" }

func hrUser() *domain.User {
	return &domain.User{ID: "u1", Username: "sarah", Email: "hr@co.com", Role: domain.RoleHR, IsActive: true}
}

// jwtWithExp builds an unsigned JWT-shaped token carrying only an exp claim.
func jwtWithExp(exp time.Time) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp.Unix())))
	return "e30." + payload + ".sig"
}

func TestSignInSuccess(t *testing.T) {
	remote := &stubAPI{signIn: func(req api.SignInRequest) (*api.AuthPayload, error) {
		assert.Equal(t, "hr@co.com", req.Email)
		return &api.AuthPayload{User: *hrUser(), Token: "t1"}, nil
	}}
	tokens := &memTokens{}
	s := New(remote, tokens)

	require.NoError(t, s.SignIn(context.Background(), "hr@co.com", "pw"))

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, PhaseAuthenticated, snap.Phase)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.LastError)
	require.NotNil(t, snap.User)
	assert.Equal(t, "sarah", snap.User.Username)
	assert.Equal(t, "t1", tokens.tok, "token must reach durable storage")
}

func TestSignInFailureLeavesNothingBehind(t *testing.T) {
	remote := &stubAPI{signIn: func(api.SignInRequest) (*api.AuthPayload, error) {
		return nil, &api.Error{Message: "Invalid credentials"}
	}}
	tokens := &memTokens{}
	s := New(remote, tokens)

	require.Error(t, s.SignIn(context.Background(), "hr@co.com", "wrong"))

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Equal(t, "Invalid credentials", snap.LastError)
	assert.Nil(t, snap.User)
	assert.Empty(t, tokens.tok)
}

func TestSignUpSuccess(t *testing.T) {
	remote := &stubAPI{signUp: func(req api.SignUpRequest) (*api.AuthPayload, error) {
		assert.Equal(t, domain.RoleInterviewer, req.Role)
		return &api.AuthPayload{User: domain.User{ID: "u2", Role: domain.RoleInterviewer}, Token: "t2"}, nil
	}}
	tokens := &memTokens{}
	s := New(remote, tokens)

	require.NoError(t, s.SignUp(context.Background(), "jo", "jo@co.com", "pw", domain.RoleInterviewer))
	assert.True(t, s.Snapshot().Authenticated)
	assert.Equal(t, "t2", tokens.tok)
}

func TestVerifyTokenRestoresSession(t *testing.T) {
	remote := &stubAPI{verify: func() (*domain.User, error) { return hrUser(), nil }}
	tokens := &memTokens{tok: "stored"}
	s := New(remote, tokens)

	require.True(t, s.HasStoredToken())
	require.NoError(t, s.VerifyToken(context.Background()))

	snap := s.Snapshot()
	assert.True(t, snap.Authenticated)
	assert.Equal(t, 1, remote.verifyN)
	assert.Equal(t, "stored", tokens.tok, "a verified token stays stored")
}

func TestVerifyTokenFailureIsTerminal(t *testing.T) {
	remote := &stubAPI{verify: func() (*domain.User, error) {
		return nil, &api.Error{Message: "Token expired"}
	}}
	tokens := &memTokens{tok: "stale"}
	s := New(remote, tokens)

	require.Error(t, s.VerifyToken(context.Background()))

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated)
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Empty(t, tokens.tok, "failed verify evicts the stored token")

	// A second call is a no-op: the token is gone, nothing to verify.
	require.NoError(t, s.VerifyToken(context.Background()))
	assert.Equal(t, 1, remote.verifyN)
}

func TestVerifyTokenExpiredLocallySkipsNetwork(t *testing.T) {
	remote := &stubAPI{}
	tokens := &memTokens{tok: jwtWithExp(time.Now().Add(-time.Hour))}
	s := New(remote, tokens)

	err := s.VerifyToken(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Session expired. Please sign in again.", err.Error())
	assert.Equal(t, 0, remote.verifyN, "locally expired token must not hit the server")
	assert.Empty(t, tokens.tok)
}

func TestVerifyTokenNoOpWhenAnonymous(t *testing.T) {
	remote := &stubAPI{}
	s := New(remote, &memTokens{})
	require.NoError(t, s.VerifyToken(context.Background()))
	assert.Equal(t, 0, remote.verifyN)
}

func TestLogoutGuaranteedLocal(t *testing.T) {
	remote := &stubAPI{
		signIn: func(api.SignInRequest) (*api.AuthPayload, error) {
			return &api.AuthPayload{User: *hrUser(), Token: "t1"}, nil
		},
		logout: func() error { return &api.Error{Message: api.NetworkErrorMessage} },
	}
	tokens := &memTokens{}
	s := New(remote, tokens)
	require.NoError(t, s.SignIn(context.Background(), "hr@co.com", "pw"))

	s.Logout(context.Background())

	snap := s.Snapshot()
	assert.False(t, snap.Authenticated, "logout clears locally even when the server call fails")
	assert.Equal(t, PhaseAnonymous, snap.Phase)
	assert.Nil(t, snap.User)
	assert.Empty(t, tokens.tok)
}

func TestInvalidateTearsDownWithoutRemoteCall(t *testing.T) {
	remote := &stubAPI{signIn: func(api.SignInRequest) (*api.AuthPayload, error) {
		return &api.AuthPayload{User: *hrUser(), Token: "t1"}, nil
	}}
	tokens := &memTokens{}
	s := New(remote, tokens)
	require.NoError(t, s.SignIn(context.Background(), "hr@co.com", "pw"))

	s.Invalidate()

	assert.False(t, s.Snapshot().Authenticated)
	assert.Empty(t, tokens.tok)
}

func TestClearErrorOnlyDropsError(t *testing.T) {
	remote := &stubAPI{signIn: func(api.SignInRequest) (*api.AuthPayload, error) {
		return nil, &api.Error{Message: "Invalid credentials"}
	}}
	s := New(remote, &memTokens{})
	_ = s.SignIn(context.Background(), "hr@co.com", "wrong")
	require.NotEmpty(t, s.Snapshot().LastError)

	s.ClearError()
	snap := s.Snapshot()
	assert.Empty(t, snap.LastError)
	assert.Equal(t, PhaseAnonymous, snap.Phase)
}

func TestDecodeExpiry(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	got, ok := DecodeExpiry(jwtWithExp(exp))
	require.True(t, ok)
	assert.True(t, got.Equal(exp))

	_, ok = DecodeExpiry("not-a-jwt")
	assert.False(t, ok)

	_, ok = DecodeExpiry("a.!!!.c")
	assert.False(t, ok)
}

func TestExpired(t *testing.T) {
	assert.True(t, Expired(jwtWithExp(time.Now().Add(-time.Minute))))
	assert.False(t, Expired(jwtWithExp(time.Now().Add(time.Minute))))
	// Opaque tokens are not judged locally; the server decides.
	assert.False(t, Expired("t1"))
}
