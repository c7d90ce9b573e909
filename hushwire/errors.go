package hushwire

import (
	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/cipher"
	"github.com/hushwire/hushwire/hushwire/envelope"
	"github.com/hushwire/hushwire/hushwire/keys"
)

// Sentinels returned by the boundary operations, matched with errors.Is.
var (
	ErrRandomnessUnavailable = keys.ErrRandomnessUnavailable
	ErrInvalidPeerKey        = agreement.ErrInvalidPeerKey
	ErrKeyAgreementFailure   = agreement.ErrKeyAgreementFailure
	ErrEncryptionFailure     = cipher.ErrEncryptionFailure
	ErrDecryptionFailure     = cipher.ErrDecryptionFailure
	ErrMalformedEnvelope     = envelope.ErrMalformedEnvelope
	ErrUnsupportedVersion    = envelope.ErrUnsupportedVersion
)

// ErrorCode is a stable numeric classification of a boundary error, for
// callers that cannot inspect Go error values. Values never change meaning.
type ErrorCode int

const (
	CodeOK ErrorCode = iota
	CodeRandomnessUnavailable
	CodeInvalidPeerKey
	CodeKeyAgreementFailure
	CodeEncryptionFailure
	CodeDecryptionFailure
	CodeMalformedEnvelope
	CodeUnsupportedVersion
	CodeUnknown ErrorCode = 255
)

var codeNames = map[ErrorCode]string{
	CodeOK:                    "OK",
	CodeRandomnessUnavailable: "RandomnessUnavailable",
	CodeInvalidPeerKey:        "InvalidPeerKey",
	CodeKeyAgreementFailure:   "KeyAgreementFailure",
	CodeEncryptionFailure:     "EncryptionFailure",
	CodeDecryptionFailure:     "DecryptionFailure",
	CodeMalformedEnvelope:     "MalformedEnvelope",
	CodeUnsupportedVersion:    "UnsupportedVersion",
	CodeUnknown:               "Unknown",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return codeNames[CodeUnknown]
}

// codeOrder lists the sentinels from most to least specific. An encryption
// failure caused by the entropy source reports EncryptionFailure.
var codeOrder = []struct {
	sentinel error
	code     ErrorCode
}{
	{ErrUnsupportedVersion, CodeUnsupportedVersion},
	{ErrMalformedEnvelope, CodeMalformedEnvelope},
	{ErrDecryptionFailure, CodeDecryptionFailure},
	{ErrEncryptionFailure, CodeEncryptionFailure},
	{ErrInvalidPeerKey, CodeInvalidPeerKey},
	{ErrKeyAgreementFailure, CodeKeyAgreementFailure},
	{ErrRandomnessUnavailable, CodeRandomnessUnavailable},
}

// Code classifies err. A nil error is CodeOK; an error outside the taxonomy
// is CodeUnknown.
func Code(err error) ErrorCode {
	if err == nil {
		return CodeOK
	}
	for _, c := range codeOrder {
		if errors.Is(err, c.sentinel) {
			return c.code
		}
	}
	return CodeUnknown
}
