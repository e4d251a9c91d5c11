// Package client implements the admin console side of the API: a persisted
// session, typed calls for agents and uploads, and text rendering of
// distribution results.
package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Session owns the persisted bearer token. It is the only writer of the token
// slot; everything else reads the token through Token() when building requests.
type Session struct {
	path string

	mu    sync.RWMutex
	token string
}

// DefaultSessionPath returns the fixed storage slot for the session token,
// under the user's config directory.
func DefaultSessionPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "agentdesk", "token"), nil
}

// LoadSession reads a previously persisted token, if any. A missing token file
// simply yields an unauthenticated session.
func LoadSession(path string) (*Session, error) {
	s := &Session{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session token: %w", err)
	}

	s.token = string(data)
	return s, nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is present. Presence does not imply
// validity; Verify on startup decides that.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores and persists a fresh token.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write session token: %w", err)
	}

	s.token = token
	return nil
}

// Clear forgets the token and removes the persisted file.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session token: %w", err)
	}
	return nil
}
