package agreement

import (
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/hushwire/hushwire/hushwire/keys"
)

// SecretSize is the length of a SharedSecret, sized for the message cipher.
const SecretSize = 32

// ErrInvalidSecretEncoding is returned when a shared secret token cannot be
// parsed. It matches keys.ErrInvalidKeyEncoding under errors.Is.
var ErrInvalidSecretEncoding = keys.ErrInvalidKeyEncoding

// SharedSecret is the symmetric key two parties derive independently.
// It redacts itself when formatted.
type SharedSecret [SecretSize]byte

// Equal compares in constant time.
func (s *SharedSecret) Equal(o *SharedSecret) bool {
	return subtle.ConstantTimeCompare(s[:], o[:]) == 1
}

// Bytes returns a copy. The caller should keys.Zero it when done.
func (s *SharedSecret) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}

// Destroy zeroes the secret in place.
func (s *SharedSecret) Destroy() { keys.Zero(s[:]) }

func (s *SharedSecret) IsZero() bool {
	var zero SharedSecret
	return s.Equal(&zero)
}

func (s SharedSecret) String() string { return "SharedSecret(redacted)" }

func (s SharedSecret) GoString() string { return "agreement.SharedSecret(redacted)" }

func (s SharedSecret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, s.String())
}

// EncodeSharedSecret renders s as a tagged base64 token.
func EncodeSharedSecret(s SharedSecret) string {
	defer s.Destroy()
	return keys.EncodeTagged(keys.KindSharedSecret, s[:])
}

// ParseSharedSecret decodes a token produced by EncodeSharedSecret.
func ParseSharedSecret(text string) (SharedSecret, error) {
	b, err := keys.DecodeTagged(text, keys.KindSharedSecret, SecretSize)
	if err != nil {
		return SharedSecret{}, err
	}
	var s SharedSecret
	copy(s[:], b)
	keys.Zero(b)
	return s, nil
}
