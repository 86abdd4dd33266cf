// Package oscrypt implements Chrome's at-rest cookie encryption: key
// derivation from the browser's master secret, classification of the
// versioned ciphertext envelope, AES-128-CBC cookie decryption and AES-GCM
// unwrapping of the browser master key.
//
// All functions are pure and safe for concurrent use. Secret material and
// decrypted values are never logged or formatted into errors.
package oscrypt

import (
	"crypto/sha1" //nolint:gosec // Chrome's PBKDF2 parameters are fixed to HMAC-SHA1.
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// Salt is the PBKDF2 salt Chrome uses for every scheme.
	Salt = "saltysalt"
	// KeySize is the derived key length in bytes (AES-128).
	KeySize = 16

	iterationsMacOS = 1003
	iterationsLinux = 1
)

// Scheme selects one of Chrome's key derivation parameter sets.
type Scheme int

const (
	// SchemeLegacyCBC is the macOS keychain password scheme (1003 iterations).
	SchemeLegacyCBC Scheme = iota + 1
	// SchemeWrappedKey derives the key that unwraps the Local State master key.
	SchemeWrappedKey
	// SchemePortableCBC is the Linux scheme (1 iteration).
	SchemePortableCBC
)

func (s Scheme) String() string {
	switch s {
	case SchemeLegacyCBC:
		return "legacy"
	case SchemeWrappedKey:
		return "wrapped"
	case SchemePortableCBC:
		return "portable"
	}
	return fmt.Sprintf("scheme(%d)", int(s))
}

// Iterations returns the PBKDF2 iteration count for the scheme, or 0 for an
// unknown scheme.
func (s Scheme) Iterations() int {
	switch s {
	case SchemeLegacyCBC, SchemeWrappedKey:
		return iterationsMacOS
	case SchemePortableCBC:
		return iterationsLinux
	}
	return 0
}

// ParseScheme maps a CLI/RPC scheme name to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch name {
	case "legacy", "macos", "darwin":
		return SchemeLegacyCBC, nil
	case "portable", "linux":
		return SchemePortableCBC, nil
	case "wrapped":
		return SchemeWrappedKey, nil
	}
	return 0, fmt.Errorf("unknown scheme %q (expected legacy, portable or wrapped)", name)
}

// Key is a derived AES-128 key bound to the scheme it was derived for.
// Keys of different schemes are never interchangeable.
type Key struct {
	scheme Scheme
	b      [KeySize]byte
}

// DeriveKey derives the 16-byte key for scheme from secret with
// PBKDF2-HMAC-SHA1 over the fixed salt.
func DeriveKey(secret []byte, scheme Scheme) Key {
	k := Key{scheme: scheme}
	copy(k.b[:], pbkdf2.Key(secret, []byte(Salt), scheme.Iterations(), KeySize, sha1.New))
	return k
}

// Scheme returns the scheme the key was derived for.
func (k Key) Scheme() Scheme { return k.scheme }

// Bytes returns a copy of the raw key.
func (k Key) Bytes() []byte {
	out := make([]byte, KeySize)
	copy(out, k.b[:])
	return out
}

// String hides the key material.
func (k Key) String() string {
	return "oscrypt.Key(" + k.scheme.String() + ")"
}
