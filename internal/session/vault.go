package session

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const serviceName = "munchie"

// Keys under which the session is persisted.
const (
	keyAccessToken = "access-token"
	keyUserID      = "user-id"
	keyUsername    = "username"
)

// ErrNotFound is returned by a Vault when a key has no stored value.
var ErrNotFound = errors.New("credential not found")

// Vault is the secret storage the session persists to.
type Vault interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// KeyringVault stores credentials in the system keyring.
type KeyringVault struct {
	ring keyring.Keyring
}

// NewKeyringVault wraps an already opened keyring.
func NewKeyringVault(ring keyring.Keyring) *KeyringVault {
	return &KeyringVault{ring: ring}
}

// OpenKeyring opens the system keyring, falling back to an encrypted file
// under fileDir on hosts without a native secret service.
func OpenKeyring(fileDir string) (*KeyringVault, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  fileDir,
		FilePasswordFunc:         keyring.FixedStringPrompt("munchie-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return NewKeyringVault(ring), nil
}

// Get retrieves a credential value by key.
func (v *KeyringVault) Get(key string) (string, error) {
	item, err := v.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("getting credential %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (v *KeyringVault) Set(key, value string) error {
	err := v.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: serviceName + " " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key. Deleting a missing key is not an error.
func (v *KeyringVault) Delete(key string) error {
	err := v.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
