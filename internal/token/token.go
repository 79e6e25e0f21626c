// Package token resolves the GitHub token used by repository search.
// The GITHUB_TOKEN environment variable wins; otherwise the token is read from the OS keychain
// (macOS Keychain, Secret Service on Linux, Windows Credential Manager).
package token

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	errs "github.com/flowvibe/mcp-installer/internal/errors"
)

const (
	// EnvVarGitHubToken is checked before the keychain.
	EnvVarGitHubToken = "GITHUB_TOKEN"

	keyringService = "mcp-installer"
	keyringUser    = "github-token"
)

// ErrNotFound is returned by a Store that holds no token.
var ErrNotFound = errors.New("token not found")

var _ Store = (*KeyringStore)(nil)

// Store persists a single token.
type Store interface {
	Get() (string, error)
	Set(token string) error
	Delete() error
}

// KeyringStore keeps the token in the OS keychain.
type KeyringStore struct{}

// Get implements Store.
func (KeyringStore) Get() (string, error) {
	v, err := keyring.Get(keyringService, keyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("keychain error: %w", err)
	}
	return v, nil
}

// Set implements Store.
func (KeyringStore) Set(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token cannot be empty", errs.ErrBadRequest)
	}
	if err := keyring.Set(keyringService, keyringUser, token); err != nil {
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}

// Delete implements Store. Deleting a missing token returns ErrNotFound.
func (KeyringStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("keychain error: %w", err)
	}
	return nil
}

// Resolve returns the token from the environment, falling back to store.
// An unavailable keychain is treated like a missing token.
func Resolve(store Store) (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvVarGitHubToken)); v != "" {
		return v, nil
	}

	if store != nil {
		if v, err := store.Get(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), nil
		}
	}

	return "", errs.ErrTokenRequired
}
