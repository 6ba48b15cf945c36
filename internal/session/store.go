package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	toml "github.com/pelletier/go-toml/v2"
)

const defaultSessionPath = "~/.config/storeops/session.toml"

// fileData is the on-disk session shape.
type fileData struct {
	Token   string    `toml:"token"`
	SavedAt time.Time `toml:"saved_at"`
}

// Store owns the persisted credential. Presence of a token is the sole
// authentication signal; staleness is only discovered through a 401.
type Store struct {
	path string

	mu   sync.RWMutex
	data fileData
}

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Open loads the session file at path, falling back to an empty session
// when the file is missing or unreadable.
func Open(path string) (*Store, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: resolved}

	bytes, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, nil // unreadable session means signed out, not fatal
	}
	var data fileData
	if err := toml.Unmarshal(bytes, &data); err != nil {
		return s, nil
	}
	s.data = data
	return s, nil
}

// Token returns the stored credential. Implements api.TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	token := strings.TrimSpace(s.data.Token)
	return token, token != ""
}

// Authenticated reports whether a credential is present.
func (s *Store) Authenticated() bool {
	_, ok := s.Token()
	return ok
}

// Save stores the token in memory and persists it to disk.
func (s *Store) Save(token string) error {
	s.mu.Lock()
	s.data = fileData{Token: token, SavedAt: time.Now().UTC()}
	data := s.data
	s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	encoded, err := toml.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(s.path, encoded, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Clear wipes the credential in memory and removes the session file.
// Used on logout and on any 401 from the backend.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.data = fileData{}
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// ExpiresAt peeks at the token's exp claim when the credential happens to
// be a JWT. The parse is unverified and purely informational; opaque
// tokens report false.
func (s *Store) ExpiresAt() (time.Time, bool) {
	token, ok := s.Token()
	if !ok {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func resolvePath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		trimmed = defaultSessionPath
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
