// Package tokenstore persists the Yahoo oauth token between runs. The token is the
// only state the extractor keeps on disk; everything else is rebuilt per run.
package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

type Store interface {
	Get() (*oauth2.Token, error)
	Save(t *oauth2.Token) error
}

type fileStore struct {
	path string
}

func New(path string) Store {
	return &fileStore{path: path}
}

func (s *fileStore) Get() (*oauth2.Token, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading token file: %w", err)
	}

	var t oauth2.Token
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("error parsing token file: %w", err)
	}
	if t.AccessToken == "" {
		return nil, errors.New("token file has no access token")
	}
	return &t, nil
}

func (s *fileStore) Save(t *oauth2.Token) error {
	b, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializing token: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("error creating token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.path, b, 0o600); err != nil {
		return fmt.Errorf("error writing token file: %w", err)
	}
	return nil
}
