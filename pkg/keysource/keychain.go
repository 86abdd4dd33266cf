package keysource

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"unicode/utf8"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// SafeStorageService is the keychain service name Chrome stores its
// cookie password under.
const SafeStorageService = "Chrome Safe Storage"

var execCommand = exec.CommandContext

// Keychain reads the password with the macOS security tool.
type Keychain struct {
	Service string
}

// NewKeychain returns a Keychain for Chrome's safe storage entry.
func NewKeychain() *Keychain {
	return &Keychain{Service: SafeStorageService}
}

func (k *Keychain) Name() string { return BackendKeychain }

func (k *Keychain) Secret(ctx context.Context) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := execCommand(ctx, "security", "find-generic-password", "-w", "-s", k.Service)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			err = errors.Join(err, errors.New(string(msg)))
		}
		return nil, oscrypt.NewError(oscrypt.KindSecretRetrievalFailed, "keychain", err)
	}
	secret := bytes.TrimSpace(out)
	if len(secret) == 0 {
		return nil, oscrypt.Errorf(oscrypt.KindSecretRetrievalFailed, "keychain", "empty password for %q", k.Service)
	}
	if !utf8.Valid(secret) {
		return nil, oscrypt.Errorf(oscrypt.KindSecretRetrievalFailed, "keychain", "password for %q is not valid UTF-8", k.Service)
	}
	return secret, nil
}
