package rpc

import (
	"encoding/json"
	"strconv"

	"github.com/creachadair/jrpc2"

	"github.com/warpdl/chromecookie/pkg/oscrypt"
)

// Custom JSON-RPC error codes, one per failure kind.
const (
	codePlatformUnsupported    = jrpc2.Code(-32010)
	codeSecretRetrievalFailed  = jrpc2.Code(-32011)
	codeConfigReadFailed       = jrpc2.Code(-32012)
	codeConfigParseFailed      = jrpc2.Code(-32013)
	codeKeyUnwrapFailed        = jrpc2.Code(-32014)
	codeCiphertextDecodeFailed = jrpc2.Code(-32015)
	codeStoreAccessFailed      = jrpc2.Code(-32016)
	codeEncodingFailed         = jrpc2.Code(-32017)
	codeInvalidParams          = jrpc2.Code(-32602)
	codeInternal               = jrpc2.Code(-32603)
)

var kindCodes = map[oscrypt.Kind]jrpc2.Code{
	oscrypt.KindPlatformUnsupported:    codePlatformUnsupported,
	oscrypt.KindSecretRetrievalFailed:  codeSecretRetrievalFailed,
	oscrypt.KindConfigReadFailed:       codeConfigReadFailed,
	oscrypt.KindConfigParseFailed:      codeConfigParseFailed,
	oscrypt.KindKeyUnwrapFailed:        codeKeyUnwrapFailed,
	oscrypt.KindCiphertextDecodeFailed: codeCiphertextDecodeFailed,
	oscrypt.KindStoreAccessFailed:      codeStoreAccessFailed,
	oscrypt.KindEncodingFailed:         codeEncodingFailed,
}

// toRPCError maps err to a *jrpc2.Error whose code identifies its kind.
// The kind name is carried in Data.
func toRPCError(err error) error {
	kind := oscrypt.KindOf(err)
	code, ok := kindCodes[kind]
	if !ok {
		code = codeInternal
	}
	return &jrpc2.Error{
		Code:    code,
		Message: err.Error(),
		Data:    json.RawMessage(strconv.Quote(kind.String())),
	}
}

func invalidParams(msg string) error {
	return &jrpc2.Error{Code: codeInvalidParams, Message: msg}
}
