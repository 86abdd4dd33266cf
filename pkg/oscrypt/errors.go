package oscrypt

import (
	"errors"
	"fmt"
)

// Kind classifies a failure of the cookie decryption pipeline.
type Kind int

const (
	// KindUnknown is reported by KindOf for errors that did not originate here.
	KindUnknown Kind = iota
	// KindPlatformUnsupported means no key material strategy exists for the OS.
	KindPlatformUnsupported
	// KindSecretRetrievalFailed means the OS secret store lookup failed.
	KindSecretRetrievalFailed
	// KindConfigReadFailed means the browser configuration file could not be read.
	KindConfigReadFailed
	// KindConfigParseFailed means the configuration was malformed, missing the
	// wrapped key field, or carried invalid base64.
	KindConfigParseFailed
	// KindKeyUnwrapFailed means GCM authentication of the wrapped master key failed.
	KindKeyUnwrapFailed
	// KindCiphertextDecodeFailed means CBC decryption hit bad alignment or padding.
	KindCiphertextDecodeFailed
	// KindStoreAccessFailed means the cookie database could not be opened or queried.
	KindStoreAccessFailed
	// KindEncodingFailed is reserved for strict decoding of plaintext.
	KindEncodingFailed
)

var kindNames = map[Kind]string{
	KindUnknown:                "unknown",
	KindPlatformUnsupported:    "platform unsupported",
	KindSecretRetrievalFailed:  "secret retrieval failed",
	KindConfigReadFailed:       "config read failed",
	KindConfigParseFailed:      "config parse failed",
	KindKeyUnwrapFailed:        "key unwrap failed",
	KindCiphertextDecodeFailed: "ciphertext decode failed",
	KindStoreAccessFailed:      "store access failed",
	KindEncodingFailed:         "encoding failed",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrPlatformUnsupported    = &Error{Kind: KindPlatformUnsupported}
	ErrSecretRetrievalFailed  = &Error{Kind: KindSecretRetrievalFailed}
	ErrConfigReadFailed       = &Error{Kind: KindConfigReadFailed}
	ErrConfigParseFailed      = &Error{Kind: KindConfigParseFailed}
	ErrKeyUnwrapFailed        = &Error{Kind: KindKeyUnwrapFailed}
	ErrCiphertextDecodeFailed = &Error{Kind: KindCiphertextDecodeFailed}
	ErrStoreAccessFailed      = &Error{Kind: KindStoreAccessFailed}
	ErrEncodingFailed         = &Error{Kind: KindEncodingFailed}
)

// Error is the single error type returned by the decryption pipeline.
// Op names the failing operation; Err is the underlying cause, if any.
// Messages never carry secret material or cookie values.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError builds an *Error. A nil cause is allowed.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an *Error whose cause is a formatted message.
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
