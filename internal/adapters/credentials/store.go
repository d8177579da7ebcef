// Package credentials persists the session token as a private JSON file and
// watches it for changes made by other depot processes.
package credentials

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// record is the on-disk shape of the credential file.
type record struct {
	Token   string    `json:"token"`
	SavedAt time.Time `json:"savedAt"`
}

// Store implements ports.CredentialStore.
type Store struct {
	fs   afero.Fs
	path string

	mu    sync.RWMutex
	token string
}

// NewStore creates a store for the credential file at path.
func NewStore(fsys afero.Fs, path string) *Store {
	return &Store{fs: fsys, path: path}
}

// Path returns the credential file location.
func (s *Store) Path() string {
	return s.path
}

// Token returns the token read by the last Load or written by Save.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Load re-reads the credential file. A missing file means no session.
func (s *Store) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.set("")
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCredentialReadFailed, err.Error()), "path", s.path)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.set("")
		return zerr.With(zerr.Wrap(domain.ErrCredentialReadFailed, err.Error()), "path", s.path)
	}
	s.set(rec.Token)
	return nil
}

// Save writes token with owner-only permissions.
func (s *Store) Save(token string) error {
	if err := s.fs.MkdirAll(filepath.Dir(s.path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCredentialWriteFailed, err.Error()), "path", s.path)
	}

	data, err := json.Marshal(record{Token: token, SavedAt: time.Now().UTC()})
	if err != nil {
		return zerr.Wrap(domain.ErrCredentialWriteFailed, err.Error())
	}
	if err := afero.WriteFile(s.fs, s.path, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCredentialWriteFailed, err.Error()), "path", s.path)
	}

	s.set(token)
	return nil
}

// Clear removes the credential file.
func (s *Store) Clear() error {
	s.set("")
	if err := s.fs.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrCredentialWriteFailed, err.Error()), "path", s.path)
	}
	return nil
}

func (s *Store) set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
