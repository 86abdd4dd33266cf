package keysource

import (
	"context"
	"encoding/base64"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// EncryptedKeyPath is the gjson path of the wrapped key in Local State.
const EncryptedKeyPath = "os_crypt.encrypted_key"

// LocalState reads the wrapped master key from Chrome's Local State file.
// Secret returns the base64-decoded blob with the DPAPI marker removed.
type LocalState struct {
	Path string
	Fs   afero.Fs
}

// NewLocalState returns a LocalState reading path from the OS filesystem.
func NewLocalState(path string) *LocalState {
	return &LocalState{Path: path, Fs: afero.NewOsFs()}
}

func (l *LocalState) Name() string { return BackendLocalState }

// PasswordSource is false: Secret returns the wrapped master key.
func (l *LocalState) PasswordSource() bool { return false }

func (l *LocalState) Secret(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, oscrypt.NewError(oscrypt.KindConfigReadFailed, "local state", err)
	}
	b64, err := l.EncryptedKey()
	if err != nil {
		return nil, err
	}
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, oscrypt.Errorf(oscrypt.KindConfigParseFailed, "local state", "base64 decode of %s: %w", EncryptedKeyPath, err)
	}
	return oscrypt.StripDPAPI(blob), nil
}

// EncryptedKey returns the raw base64 value of os_crypt.encrypted_key.
func (l *LocalState) EncryptedKey() (string, error) {
	fs := l.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	data, err := afero.ReadFile(fs, l.Path)
	if err != nil {
		return "", oscrypt.NewError(oscrypt.KindConfigReadFailed, "local state", err)
	}
	if !gjson.ValidBytes(data) {
		return "", oscrypt.Errorf(oscrypt.KindConfigParseFailed, "local state", "invalid JSON in %s", l.Path)
	}
	field := gjson.GetBytes(data, EncryptedKeyPath)
	if !field.Exists() || field.Type != gjson.String {
		return "", oscrypt.Errorf(oscrypt.KindConfigParseFailed, "local state", "missing %s", EncryptedKeyPath)
	}
	return field.String(), nil
}
