package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const TOKEN_FILE_MODE = 0600

var ErrNoToken = errors.New("no access token stored")

// FileStore keeps a single opaque access token in a file.
type FileStore struct {
	Path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Read() (string, error) {
	content, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("reading token file: %w", err)
	}
	token := strings.TrimSpace(string(content))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (s *FileStore) Write(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("refusing to store an empty token")
	}
	if dir := filepath.Dir(s.Path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("creating token directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, []byte(token), TOKEN_FILE_MODE); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return os.Chmod(s.Path, TOKEN_FILE_MODE)
}

func (s *FileStore) Exists() bool {
	info, err := os.Stat(s.Path)
	return err == nil && !info.IsDir()
}
