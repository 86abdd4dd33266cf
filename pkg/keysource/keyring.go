package keysource

import (
	"context"
	"errors"

	"github.com/zalando/go-keyring"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// SafeStorageAccount is the account Chrome files its keychain entry under.
const SafeStorageAccount = "Chrome"

var keyringGet = keyring.Get

// Keyring reads the password through the OS keyring service (macOS
// keychain, Secret Service on Linux, Credential Manager on Windows).
type Keyring struct {
	Service string
	Account string
}

// NewKeyring returns a Keyring for Chrome's safe storage entry.
func NewKeyring() *Keyring {
	return &Keyring{
		Service: SafeStorageService,
		Account: SafeStorageAccount,
	}
}

func (k *Keyring) Name() string { return BackendKeyring }

// Secret looks up the entry. The keyring API is not cancellable; wrap the
// source with WithTimeout to bound it.
func (k *Keyring) Secret(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, oscrypt.NewError(oscrypt.KindSecretRetrievalFailed, "keyring", err)
	}
	secret, err := keyringGet(k.Service, k.Account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, oscrypt.Errorf(oscrypt.KindSecretRetrievalFailed, "keyring",
				"no entry for service %q account %q", k.Service, k.Account)
		}
		return nil, oscrypt.NewError(oscrypt.KindSecretRetrievalFailed, "keyring", err)
	}
	if secret == "" {
		return nil, oscrypt.Errorf(oscrypt.KindSecretRetrievalFailed, "keyring", "empty entry for service %q", k.Service)
	}
	return []byte(secret), nil
}
