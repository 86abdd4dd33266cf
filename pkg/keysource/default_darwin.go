//go:build darwin

package keysource

// Default returns the keychain source Chrome uses on macOS.
func Default() Source {
	return NewKeychain()
}
