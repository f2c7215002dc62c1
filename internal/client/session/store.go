package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"mergington/internal/client/api"
)

const (
	configDirName = "mergington"
	tokenFileName = "token"
)

// Store holds the current session token and cached identity. The token is the
// only durable part: it is written to a file so a session survives restarts.
// The identity is never persisted raw and is re-derived on every verification.
// INVARIANT: A stored token does not imply a valid session. Only the Verifier
// establishes validity.
type Store struct {
	mu       sync.Mutex
	path     string
	identity *api.Identity
}

// NewStore creates a store backed by the user's config directory.
func NewStore() (*Store, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewStoreAt(filepath.Join(dir, configDirName, tokenFileName)), nil
}

// NewStoreAt creates a store backed by the given token file path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Token returns the persisted session token, if any.
func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// SetToken persists the session token durably.
// POST: The token survives process restarts; file mode restricts it to the
// owning user
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Identity returns the cached identity, if one has been verified.
func (s *Store) Identity() (api.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return api.Identity{}, false
	}
	return *s.identity, true
}

// SetIdentity replaces the cached identity wholesale.
func (s *Store) SetIdentity(id api.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
}

// Clear removes the token and identity. Idempotent: clearing an absent
// session is not an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
