package envelope

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/keys"
)

var (
	ErrMalformedEnvelope  = errors.New("envelope: malformed envelope")
	ErrUnsupportedVersion = errors.New("envelope: unsupported version")
)

// Envelope is one sealed message.
// Format (version 1):
//
//	1 byte:  version
//	1 byte:  flags
//	24 bytes: nonce
//	N bytes: ciphertext || tag (N >= 16)
//
// The version fixes the nonce and tag sizes, so the layout carries no length
// fields. The first two bytes are authenticated as associated data.
type Envelope struct {
	Version Version
	Flags   Flags
	Nonce   []byte
	Sealed  []byte
}

// Header returns the bytes that precede the nonce on the wire.
func (e Envelope) Header() [HeaderSize]byte {
	return [HeaderSize]byte{byte(e.Version), byte(e.Flags)}
}

// MarshalBinary renders the layout above.
func (e Envelope) MarshalBinary() ([]byte, error) {
	l, ok := layouts[e.Version]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedVersion, "version %d", e.Version)
	}
	if len(e.Nonce) != l.nonceSize {
		return nil, errors.Wrapf(ErrMalformedEnvelope, "nonce is %d bytes, want %d", len(e.Nonce), l.nonceSize)
	}
	if len(e.Sealed) < l.tagSize {
		return nil, errors.Wrapf(ErrMalformedEnvelope, "sealed payload shorter than tag")
	}

	hdr := e.Header()
	out := make([]byte, 0, HeaderSize+len(e.Nonce)+len(e.Sealed))
	out = append(out, hdr[:]...)
	out = append(out, e.Nonce...)
	out = append(out, e.Sealed...)
	return out, nil
}

// Parse validates the version and structure of data. It does not need,
// and never touches, key material.
func Parse(data []byte) (Envelope, error) {
	if len(data) == 0 {
		return Envelope{}, errors.WithMessage(ErrMalformedEnvelope, "empty")
	}
	v := Version(data[0])
	l, ok := layouts[v]
	if !ok {
		return Envelope{}, errors.WithMessage(ErrUnsupportedVersion, fmt.Sprintf("version %d", v))
	}
	if len(data) < HeaderSize+l.nonceSize+l.tagSize {
		return Envelope{}, errors.WithMessage(ErrMalformedEnvelope,
			fmt.Sprintf("%d bytes, want at least %d", len(data), HeaderSize+l.nonceSize+l.tagSize))
	}

	body := data[HeaderSize:]
	return Envelope{
		Version: v,
		Flags:   Flags(data[1]),
		Nonce:   append([]byte(nil), body[:l.nonceSize]...),
		Sealed:  append([]byte(nil), body[l.nonceSize:]...),
	}, nil
}

// Encode renders e as a single base64 token.
func Encode(e Envelope) (string, error) {
	b, err := e.MarshalBinary()
	if err != nil {
		return "", err
	}
	return keys.Encoding.EncodeToString(b), nil
}

// Decode parses a token produced by Encode.
func Decode(s string) (Envelope, error) {
	b, err := keys.Encoding.DecodeString(s)
	if err != nil {
		return Envelope{}, errors.WithMessage(ErrMalformedEnvelope, "not base64")
	}
	return Parse(b)
}
