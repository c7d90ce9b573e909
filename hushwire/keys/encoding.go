package keys

import (
	"encoding/base64"

	"github.com/pkg/errors"
)

// Kind tags the first byte of every encoded key so that the two halves of a
// key pair, and the shared secrets derived from them, cannot be mistaken for
// one another at a text boundary.
type Kind byte

const (
	KindPrivateKey   Kind = 'S'
	KindPublicKey    Kind = 'P'
	KindSharedSecret Kind = 'K'
)

func (k Kind) String() string {
	switch k {
	case KindPrivateKey:
		return "private key"
	case KindPublicKey:
		return "public key"
	case KindSharedSecret:
		return "shared secret"
	default:
		return "unknown"
	}
}

var ErrInvalidKeyEncoding = errors.New("keys: invalid key encoding")

// Encoding is the text encoding used for every binary value that crosses
// the boundary: standard, padded base64 (RFC 4648 section 4).
var Encoding = base64.StdEncoding

// EncodeTagged renders kind || payload as one base64 token.
func EncodeTagged(kind Kind, payload []byte) string {
	buf := make([]byte, 1+len(payload))
	buf[0] = byte(kind)
	copy(buf[1:], payload)
	s := Encoding.EncodeToString(buf)
	Zero(buf)
	return s
}

// DecodeTagged parses a token produced by EncodeTagged, checking the kind
// and payload size. Error messages never echo the input.
func DecodeTagged(s string, kind Kind, size int) ([]byte, error) {
	raw, err := Encoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidKeyEncoding, "%s: not base64", kind)
	}
	if len(raw) != 1+size {
		Zero(raw)
		return nil, errors.Wrapf(ErrInvalidKeyEncoding, "%s: got %d bytes, want %d", kind, len(raw)-1, size)
	}
	if Kind(raw[0]) != kind {
		got := Kind(raw[0])
		Zero(raw)
		return nil, errors.Wrapf(ErrInvalidKeyEncoding, "expected %s, got %s", kind, got)
	}
	out := make([]byte, size)
	copy(out, raw[1:])
	Zero(raw)
	return out, nil
}

// EncodePrivateKey renders k for storage in the caller's keychain.
func EncodePrivateKey(k PrivateKey) string {
	defer Zero(k[:])
	return EncodeTagged(KindPrivateKey, k[:])
}

// ParsePrivateKey decodes a private key produced by EncodePrivateKey.
func ParsePrivateKey(s string) (PrivateKey, error) {
	b, err := DecodeTagged(s, KindPrivateKey, Size)
	if err != nil {
		return PrivateKey{}, err
	}
	var k PrivateKey
	copy(k[:], b)
	Zero(b)
	clamp(&k)
	return k, nil
}

// EncodePublicKey renders p for publication.
func EncodePublicKey(p PublicKey) string {
	return EncodeTagged(KindPublicKey, p[:])
}

// ParsePublicKey decodes a public key. It checks the encoding only; call
// Validate before using a key received from a peer.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := DecodeTagged(s, KindPublicKey, Size)
	if err != nil {
		return PublicKey{}, err
	}
	var p PublicKey
	copy(p[:], b)
	return p, nil
}

func (p PublicKey) String() string { return EncodePublicKey(p) }
