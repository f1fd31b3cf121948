package apikey

import (
	"github.com/zalando/go-keyring"

	"github.com/spectatorcontext/spectator-cli/internal/errors"
)

// Keyring coordinates for the stored API key. One service, one account:
// spectator stores a single key per machine user.
const (
	keyringService = "spectator"
	keyringAccount = "api-key"
)

// Store saves the API key in the OS keyring.
func Store(key string) error {
	if err := keyring.Set(keyringService, keyringAccount, key); err != nil {
		return errors.Wrap(err, "storing api key in keyring")
	}
	return nil
}

// Load retrieves the API key from the OS keyring.
// Returns ErrKeyNotFound when no key is stored.
func Load() (string, error) {
	key, err := keyring.Get(keyringService, keyringAccount)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrKeyNotFound
		}
		return "", errors.Wrap(err, "loading api key from keyring")
	}
	return key, nil
}

// Delete removes the stored API key from the OS keyring.
// Returns ErrKeyNotFound when no key was stored.
func Delete() error {
	if err := keyring.Delete(keyringService, keyringAccount); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrKeyNotFound
		}
		return errors.Wrap(err, "deleting api key from keyring")
	}
	return nil
}
