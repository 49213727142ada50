package token

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups the engine's secrets in the OS keychain.
	KeyringService = "hrms"

	// KeyName is the fixed name the session token lives under, in the
	// keychain and as the file name in the data dir.
	KeyName = "hrms_token"
)

// Store keeps the session token in the OS keychain and in a file fallback
// under the data dir, so headless installs still survive a restart. Saves
// and clears hit both; loads prefer the keychain.
//
// The file side is flock-guarded and written tmp+rename, so concurrent
// login/logout end up last-writer-wins with no partial writes.
type Store struct {
	path string
	lock *flock.Flock
}

func NewStore(dataDir string) *Store {
	p := filepath.Join(dataDir, KeyName)
	return &Store{
		path: p,
		lock: flock.New(p + ".lock"),
	}
}

// Load returns the stored token, or "" when none is stored.
func (s *Store) Load() string {
	if tok, err := keyring.Get(KeyringService, KeyName); err == nil && strings.TrimSpace(tok) != "" {
		return strings.TrimSpace(tok)
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Save persists the token to every store. It succeeds as long as at least
// one store took the write; some desktops have no keychain daemon.
func (s *Store) Save(tok string) error {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return errors.New("token is empty")
	}

	kerr := keyring.Set(KeyringService, KeyName, tok)
	ferr := s.writeFile(tok)
	if kerr != nil && ferr != nil {
		return ferr
	}
	return nil
}

// Clear removes the token from every store it could have been written to.
func (s *Store) Clear() {
	_ = keyring.Delete(KeyringService, KeyName)

	if err := s.lock.Lock(); err == nil {
		defer func() { _ = s.lock.Unlock() }()
	}
	_ = os.Remove(s.path)
}

func (s *Store) writeFile(tok string) error {
	if err := s.lock.Lock(); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(tok), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
