package oscrypt

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// IV is the fixed CBC initialisation vector: sixteen ASCII spaces.
var IV = [aes.BlockSize]byte{' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' ', ' '}

var (
	errBlockAlignment = errors.New("ciphertext is not a multiple of the block size")
	errPadding        = errors.New("invalid PKCS7 padding")
)

// DecryptCBC decrypts an AES-128-CBC payload under key with the fixed IV and
// removes PKCS7 padding.
func DecryptCBC(key Key, payload []byte) ([]byte, error) {
	return decryptCBC(key, IV[:], payload)
}

func decryptCBC(key Key, iv, payload []byte) ([]byte, error) {
	const op = "decrypt cbc"
	if len(payload) == 0 || len(payload)%aes.BlockSize != 0 {
		return nil, NewError(KindCiphertextDecodeFailed, op, errBlockAlignment)
	}
	block, err := aes.NewCipher(key.b[:])
	if err != nil {
		return nil, NewError(KindCiphertextDecodeFailed, op, err)
	}
	out := make([]byte, len(payload))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, payload)
	out, err = unpad(out)
	if err != nil {
		return nil, NewError(KindCiphertextDecodeFailed, op, err)
	}
	return out, nil
}

// EncryptCBC encrypts plaintext with AES-128-CBC and PKCS7 padding. It is the
// inverse of DecryptCBC when iv is IV.
func EncryptCBC(key Key, iv [aes.BlockSize]byte, plaintext []byte) []byte {
	block, err := aes.NewCipher(key.b[:])
	if err != nil {
		// aes.NewCipher only fails on key length, which Key fixes.
		panic(err)
	}
	in := pad(plaintext)
	out := make([]byte, len(in))
	cipher.NewCBCEncrypter(block, iv[:]).CryptBlocks(out, in)
	return out
}

// GenerateIV returns a random 16-byte IV.
func GenerateIV() ([aes.BlockSize]byte, error) {
	var iv [aes.BlockSize]byte
	if _, err := io.ReadFull(rand.Reader, iv[:]); err != nil {
		return iv, fmt.Errorf("generate iv: %w", err)
	}
	return iv, nil
}

func pad(b []byte) []byte {
	n := aes.BlockSize - len(b)%aes.BlockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	for i := 0; i < n; i++ {
		out = append(out, byte(n))
	}
	return out
}

func unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, errPadding
	}
	n := int(b[len(b)-1])
	if n == 0 || n > aes.BlockSize || n > len(b) {
		return nil, errPadding
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, errPadding
		}
	}
	return b[:len(b)-n], nil
}

// Decrypt decrypts a classified envelope. ok is false with a nil error when
// there is nothing to decrypt: the envelope was unrecognized or decrypted to
// an empty value. The key must have been derived for a CBC scheme.
func Decrypt(env Envelope, key Key) (value string, ok bool, err error) {
	if env.Kind == KindUnrecognized {
		return "", false, nil
	}
	if key.scheme != SchemeLegacyCBC && key.scheme != SchemePortableCBC {
		return "", false, Errorf(KindCiphertextDecodeFailed, "decrypt",
			"key derived for %s scheme cannot decrypt cookies", key.scheme)
	}
	plain, err := DecryptCBC(key, env.Payload)
	if err != nil {
		return "", false, err
	}
	value = Lossy(plain)
	if env.Kind == KindV11 {
		value = strings.TrimRight(value, "\x00`")
	}
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Lossy decodes b as UTF-8, replacing each maximal invalid subpart with
// one U+FFFD: a truncated multi-byte sequence yields a single replacement,
// a stray continuation byte yields one of its own.
func Lossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b) + 8)
	for len(b) > 0 {
		r, n := utf8.DecodeRune(b)
		if r == utf8.RuneError && n <= 1 {
			sb.WriteRune(utf8.RuneError)
			b = b[invalidPrefix(b):]
			continue
		}
		sb.Write(b[:n])
		b = b[n:]
	}
	return sb.String()
}

// invalidPrefix returns the length of the maximal subpart of an ill-formed
// sequence at the start of b: the lead byte plus the continuation bytes
// that could still have completed it. b must not start with a valid rune.
func invalidPrefix(b []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var size int
	switch c := b[0]; {
	case c >= 0xC2 && c <= 0xDF:
		size = 2
	case c == 0xE0:
		size, lo = 3, 0xA0
	case c == 0xED:
		size, hi = 3, 0x9F
	case c >= 0xE1 && c <= 0xEF:
		size = 3
	case c == 0xF0:
		size, lo = 4, 0x90
	case c >= 0xF1 && c <= 0xF3:
		size = 4
	case c == 0xF4:
		size, hi = 4, 0x8F
	default:
		return 1
	}
	i := 1
	for ; i < size && i < len(b); i++ {
		if b[i] < lo || b[i] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return i
}
