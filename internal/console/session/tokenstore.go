package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// TokenStore persists the access token across process restarts. All session
// consumers go through the Manager rather than touching the store directly.
type TokenStore interface {
	Read() (string, error) // returns "" when no token is stored
	Write(token string) error
	Clear() error // idempotent
}

// credentialsFile is the on-disk shape of the persisted token.
type credentialsFile struct {
	AccessToken string `yaml:"access_token"`
}

// FileTokenStore persists the token as a YAML file under the user's config
// directory.
type FileTokenStore struct {
	path string
}

// DefaultCredentialsPath returns the default location of the credentials file
// (e.g. ~/.config/reservat/credentials.yaml on Linux).
func DefaultCredentialsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "reservat", "credentials.yaml"), nil
}

// NewFileTokenStore creates a file-backed token store at the given path.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Read returns the stored token, or "" when the file does not exist.
func (s *FileTokenStore) Read() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("unable to read credentials file: %w", err)
	}
	var creds credentialsFile
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("unable to parse credentials file: %w", err)
	}
	return creds.AccessToken, nil
}

// Write stores the token, creating the parent directory if needed.
func (s *FileTokenStore) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("unable to create credentials directory: %w", err)
	}
	data, err := yaml.Marshal(credentialsFile{AccessToken: token})
	if err != nil {
		return fmt.Errorf("unable to generate credentials file: %w", err)
	}
	if err := os.WriteFile(s.path, data, os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write credentials file: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Removing an absent file is not an error.
func (s *FileTokenStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove credentials file: %w", err)
	}
	return nil
}

// MemoryTokenStore is an in-memory TokenStore for tests and embedded use.
type MemoryTokenStore struct {
	token string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Read() (string, error) {
	return s.token, nil
}

func (s *MemoryTokenStore) Write(token string) error {
	s.token = token
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.token = ""
	return nil
}
