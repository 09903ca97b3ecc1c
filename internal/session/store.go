// Package session owns the authenticated-identity lifecycle: credential
// persistence, login, hydration with bounded refresh, and identity broadcast.
package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"scholarhub-client/internal/models"
)

// CredentialStore persists the token pair between runs. Load never fails:
// missing or corrupt storage reads as absence so the rest of the client can
// fall back to "no session" uniformly.
type CredentialStore interface {
	Save(ctx context.Context, pair *models.TokenPair) error
	Load(ctx context.Context) *models.TokenPair
	Clear(ctx context.Context) error
}

// FileStore keeps the pair as a JSON file, the desktop analogue of browser
// local storage.
type FileStore struct {
	path string
}

// NewFileStore uses the given path, or <user config dir>/scholarhub/tokens.json
// when path is empty.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "scholarhub", "tokens.json")
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Save(_ context.Context, pair *models.TokenPair) error {
	data, err := json.Marshal(pair)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Load(_ context.Context) *models.TokenPair {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}
	var pair models.TokenPair
	if err := json.Unmarshal(data, &pair); err != nil {
		return nil
	}
	if pair.Empty() {
		return nil
	}
	return &pair
}

func (s *FileStore) Clear(_ context.Context) error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
