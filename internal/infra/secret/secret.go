// Package secret provides retrieval of the content API credential by name.
// Two backends are supported: environment variables (local development) and
// files under a mount directory (Kubernetes-style mounted secrets). A
// failed retrieval is a fatal initialization condition for the caller.
package secret

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store retrieves a single secret value by name.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
}

// EnvStore reads secrets from environment variables. The secret name is
// the variable name.
type EnvStore struct{}

// NewEnvStore creates an environment-backed secret store.
func NewEnvStore() EnvStore {
	return EnvStore{}
}

// Get returns the value of the environment variable named by name.
func (EnvStore) Get(_ context.Context, name string) (string, error) {
	value := os.Getenv(name)
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("secret %q not set or empty", name)
	}
	return value, nil
}

// FileStore reads secrets from files under a root directory, one file per
// secret. This matches how orchestrators mount secrets into containers.
type FileStore struct {
	Root string
}

// NewFileStore creates a file-backed secret store rooted at root.
func NewFileStore(root string) FileStore {
	return FileStore{Root: root}
}

// Get reads the secret file named by name. Trailing whitespace is trimmed
// because mounted secret files commonly end with a newline.
func (s FileStore) Get(_ context.Context, name string) (string, error) {
	path := filepath.Join(s.Root, filepath.Clean("/"+name))

	// #nosec G304 -- the secret name comes from configuration, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read secret %q: %w", name, err)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("secret %q is empty", name)
	}
	return value, nil
}
