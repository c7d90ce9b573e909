package keys

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/crypto/curve25519"
)

const (
	// Size is the length in bytes of both halves of an X25519 key pair.
	Size = 32
)

var (
	ErrRandomnessUnavailable = errors.New("keys: randomness unavailable")
	ErrInvalidPublicKey      = errors.New("keys: invalid X25519 public key")
)

// PrivateKey is a clamped X25519 scalar. It redacts itself when formatted.
type PrivateKey [Size]byte

// PublicKey is an X25519 u-coordinate in little-endian form.
type PublicKey [Size]byte

// KeyPair holds an identity's X25519 key pair.
type KeyPair struct {
	Private PrivateKey
	Public  PublicKey
}

// GenerateKeyPair generates a new identity key pair from crypto/rand.
func GenerateKeyPair() (KeyPair, error) {
	return GenerateKeyPairFrom(rand.Reader)
}

// GenerateKeyPairFrom generates a key pair reading entropy from r.
// A failed read is returned as ErrRandomnessUnavailable and is not retried.
func GenerateKeyPairFrom(r io.Reader) (KeyPair, error) {
	var kp KeyPair
	if _, err := io.ReadFull(r, kp.Private[:]); err != nil {
		Zero(kp.Private[:])
		jww.WARN.Printf("[KEYS] entropy source failed: %v", err)
		return KeyPair{}, errors.Wrapf(ErrRandomnessUnavailable, "read %d bytes", Size)
	}
	clamp(&kp.Private)

	pub, err := kp.Private.computePublic()
	if err != nil {
		kp.Destroy()
		return KeyPair{}, err
	}
	kp.Public = pub
	return kp, nil
}

// clamp applies the RFC 7748 scalar clamping.
func clamp(k *PrivateKey) {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
}

func (k *PrivateKey) computePublic() (PublicKey, error) {
	out, err := curve25519.X25519(k[:], curve25519.Basepoint)
	if err != nil {
		return PublicKey{}, errors.Wrap(err, "keys: base point multiplication")
	}
	var pub PublicKey
	copy(pub[:], out)
	return pub, nil
}

// Public recomputes the public half of k.
func (k PrivateKey) Public() (PublicKey, error) {
	defer Zero(k[:])
	return k.computePublic()
}

// Bytes returns a copy of the scalar. The caller owns the copy and should
// Zero it when done.
func (k *PrivateKey) Bytes() []byte {
	return append([]byte(nil), k[:]...)
}

// Destroy zeroes the scalar in place.
func (k *PrivateKey) Destroy() { Zero(k[:]) }

// IsZero reports whether the key has been destroyed or never set.
func (k *PrivateKey) IsZero() bool {
	var zero PrivateKey
	return subtle.ConstantTimeCompare(k[:], zero[:]) == 1
}

func (k PrivateKey) String() string { return "PrivateKey(redacted)" }

func (k PrivateKey) GoString() string { return "keys.PrivateKey(redacted)" }

// Format keeps every fmt verb, including %x and %v, from printing the scalar.
func (k PrivateKey) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, k.String())
}

// Bytes returns a copy of the public key.
func (p PublicKey) Bytes() []byte {
	return append([]byte(nil), p[:]...)
}

// Equal reports whether p and o are the same key.
func (p PublicKey) Equal(o PublicKey) bool { return p == o }

// Destroy zeroes the private half. The public half is left intact.
func (kp *KeyPair) Destroy() { kp.Private.Destroy() }
