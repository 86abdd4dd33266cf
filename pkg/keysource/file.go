package keysource

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// secretFileMode is the most permissive mode accepted for a secret file.
const secretFileMode = 0600

// File reads the master secret from a file, for headless machines where
// no keyring is reachable. The file must not be readable by group or others.
type File struct {
	Path string
	Fs   afero.Fs
}

// NewFile returns a File source reading path from the OS filesystem.
func NewFile(path string) *File {
	return &File{Path: path, Fs: afero.NewOsFs()}
}

func (f *File) Name() string { return BackendFile }

func (f *File) Secret(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, oscrypt.NewError(oscrypt.KindConfigReadFailed, "secret file", err)
	}
	fs := f.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	info, err := fs.Stat(f.Path)
	if err != nil {
		return nil, oscrypt.NewError(oscrypt.KindConfigReadFailed, "secret file", err)
	}
	if info.IsDir() {
		return nil, oscrypt.Errorf(oscrypt.KindConfigReadFailed, "secret file", "%s is a directory", f.Path)
	}
	if perm := info.Mode().Perm(); perm&^secretFileMode != 0 {
		return nil, oscrypt.NewError(oscrypt.KindConfigReadFailed, "secret file",
			fmt.Errorf("%s has mode %o, expected at most %o", f.Path, perm, secretFileMode))
	}
	data, err := afero.ReadFile(fs, f.Path)
	if err != nil {
		return nil, oscrypt.NewError(oscrypt.KindConfigReadFailed, "secret file", err)
	}
	secret := strings.TrimRight(string(data), "\r\n")
	if secret == "" {
		return nil, oscrypt.Errorf(oscrypt.KindConfigParseFailed, "secret file", "%s is empty", f.Path)
	}
	return []byte(secret), nil
}

// Store writes secret to f.Path with mode 0600, creating the parent
// directory if needed. The file is replaced atomically through a temporary
// file and rename, so a concurrent Secret never sees a partial write.
func (f *File) Store(secret []byte) error {
	if len(secret) == 0 {
		return oscrypt.Errorf(oscrypt.KindConfigParseFailed, "store secret file", "empty secret")
	}
	fs := f.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	dir := filepath.Dir(f.Path)
	if err := fs.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create secret dir: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, ".secret.tmp.")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(secret); err != nil {
		tmp.Close()
		fs.Remove(tmpPath)
		return fmt.Errorf("write secret: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Chmod(tmpPath, secretFileMode); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := fs.Rename(tmpPath, f.Path); err != nil {
		fs.Remove(tmpPath)
		return fmt.Errorf("rename secret file: %w", err)
	}
	return nil
}
