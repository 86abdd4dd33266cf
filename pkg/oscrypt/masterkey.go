package oscrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
)

// MasterKeySize is the length of the unwrapped browser master key that is
// handed back to callers.
const MasterKeySize = 16

// UnwrapMasterKey opens the GCM-wrapped Local State key blob with key and
// returns the first 16 bytes of the plaintext. Authentication failure is a
// hard KindKeyUnwrapFailed error; no partial plaintext is ever returned.
func UnwrapMasterKey(blob []byte, key Key) ([MasterKeySize]byte, error) {
	const op = "unwrap master key"
	var master [MasterKeySize]byte
	if key.scheme != SchemeWrappedKey {
		return master, Errorf(KindKeyUnwrapFailed, op,
			"key derived for %s scheme cannot unwrap the master key", key.scheme)
	}
	wk, err := SplitWrappedKey(blob)
	if err != nil {
		return master, err
	}
	block, err := aes.NewCipher(key.b[:])
	if err != nil {
		return master, NewError(KindKeyUnwrapFailed, op, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return master, NewError(KindKeyUnwrapFailed, op, err)
	}
	plain, err := gcm.Open(nil, wk.Nonce, wk.Ciphertext, nil)
	if err != nil {
		return master, NewError(KindKeyUnwrapFailed, op, err)
	}
	if len(plain) < MasterKeySize {
		return master, NewError(KindKeyUnwrapFailed, op, errors.New("unwrapped key too short"))
	}
	copy(master[:], plain[:MasterKeySize])
	return master, nil
}

// WrapMasterKey seals master under key in the Local State layout, prefixed
// with the DPAPI marker and version tag "v10". nonce must be 12 bytes.
func WrapMasterKey(master []byte, key Key, nonce []byte) ([]byte, error) {
	const op = "wrap master key"
	if len(nonce) != gcmNonceLen {
		return nil, Errorf(KindKeyUnwrapFailed, op, "nonce must be %d bytes", gcmNonceLen)
	}
	block, err := aes.NewCipher(key.b[:])
	if err != nil {
		return nil, NewError(KindKeyUnwrapFailed, op, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, NewError(KindKeyUnwrapFailed, op, err)
	}
	out := make([]byte, 0, len(DPAPIPrefix)+gcmVersionLen+gcmNonceLen+len(master)+gcmTagLen)
	out = append(out, DPAPIPrefix...)
	out = append(out, prefixV10...)
	out = append(out, nonce...)
	return gcm.Seal(out, nonce, master, nil), nil
}
