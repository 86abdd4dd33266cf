package oscrypt

import "bytes"

// EnvelopeKind is the classification of a stored encrypted value.
type EnvelopeKind int

const (
	// KindUnrecognized envelopes carry no known prefix; the bytes are
	// treated as plaintext already.
	KindUnrecognized EnvelopeKind = iota
	// KindV10 is the "v10" AES-128-CBC envelope.
	KindV10
	// KindV11 is the "v11" AES-128-CBC envelope whose plaintext may carry
	// trailing NUL or backtick bytes.
	KindV11
)

func (k EnvelopeKind) String() string {
	switch k {
	case KindV10:
		return "v10"
	case KindV11:
		return "v11"
	}
	return "unrecognized"
}

const (
	versionPrefixLen = 3

	// DPAPIPrefix marks a platform-wrapped key blob in Local State.
	DPAPIPrefix = "DPAPI"

	gcmVersionLen = 3
	gcmNonceLen   = 12
	gcmTagLen     = 16
)

var (
	prefixV10 = []byte("v10")
	prefixV11 = []byte("v11")
)

// Envelope is a classified cookie ciphertext. Payload aliases the input and
// must not be modified.
type Envelope struct {
	Kind    EnvelopeKind
	Raw     []byte
	Payload []byte
}

// Classify inspects the first three bytes of envelope. Values of three bytes
// or fewer, or with an unknown prefix, are KindUnrecognized.
func Classify(envelope []byte) Envelope {
	env := Envelope{Kind: KindUnrecognized, Raw: envelope}
	if len(envelope) <= versionPrefixLen {
		return env
	}
	switch prefix := envelope[:versionPrefixLen]; {
	case bytes.Equal(prefix, prefixV10):
		env.Kind = KindV10
	case bytes.Equal(prefix, prefixV11):
		env.Kind = KindV11
	default:
		return env
	}
	env.Payload = envelope[versionPrefixLen:]
	return env
}

// WrappedKey is the GCM layout of the Local State master key blob after the
// DPAPI marker has been removed.
type WrappedKey struct {
	Version    []byte
	Nonce      []byte
	Ciphertext []byte // includes the 16-byte tag
}

// StripDPAPI removes the DPAPI marker from a decoded Local State blob if
// present. The input is not modified.
func StripDPAPI(blob []byte) []byte {
	return bytes.TrimPrefix(blob, []byte(DPAPIPrefix))
}

// SplitWrappedKey strips the DPAPI marker and splits the remainder into
// [3-byte version][12-byte nonce][ciphertext+tag].
func SplitWrappedKey(blob []byte) (WrappedKey, error) {
	b := StripDPAPI(blob)
	if len(b) < gcmVersionLen+gcmNonceLen+gcmTagLen {
		return WrappedKey{}, Errorf(KindConfigParseFailed, "split wrapped key",
			"wrapped key too short (%d bytes)", len(b))
	}
	return WrappedKey{
		Version:    b[:gcmVersionLen],
		Nonce:      b[gcmVersionLen : gcmVersionLen+gcmNonceLen],
		Ciphertext: b[gcmVersionLen+gcmNonceLen:],
	}, nil
}
