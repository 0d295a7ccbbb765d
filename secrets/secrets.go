package secrets

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	service     = "drg-mod-manager"
	oauthKeyAcc = "mod_io_oauth_key"
)

// GetOAuthKey returns the stored mod.io OAuth key, or "" if none is stored.
func GetOAuthKey() (string, error) {
	secret, err := keyring.Get(service, oauthKeyAcc)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading OAuth key from keyring: %w", err)
	}
	return secret, nil
}

// SetOAuthKey stores the mod.io OAuth key in the OS keyring.
func SetOAuthKey(key string) error {
	if err := keyring.Set(service, oauthKeyAcc, key); err != nil {
		return fmt.Errorf("storing OAuth key in keyring: %w", err)
	}
	return nil
}

// DeleteOAuthKey removes the stored key. Deleting a key that was never
// stored is not an error.
func DeleteOAuthKey() error {
	err := keyring.Delete(service, oauthKeyAcc)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("deleting OAuth key from keyring: %w", err)
	}
	return nil
}
