package cipher

import (
	stdcipher "crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

var (
	errNonceUnavailable = errors.New("cipher: nonce randomness unavailable")
	errAuthentication   = errors.New("cipher: message authentication failed")
)

// AEAD wraps XChaCha20-Poly1305 with random nonces.
// The 192-bit nonce is drawn fresh for every Seal, so no counter or nonce
// history is needed even when many goroutines seal under the same key.
type AEAD struct {
	aead stdcipher.AEAD
	rand io.Reader
}

// NewAEAD creates a new AEAD cipher from a 32-byte key. A nil rand selects
// crypto/rand.Reader.
func NewAEAD(key []byte, rand io.Reader) (*AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.New("cipher: invalid key size for XChaCha20-Poly1305")
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if rand == nil {
		rand = defaultRand
	}
	return &AEAD{aead: aead, rand: rand}, nil
}

var defaultRand io.Reader = rand.Reader

// Seal encrypts and authenticates plaintext under a fresh nonce.
// Returns the nonce and ciphertext || tag (16 bytes).
func (a *AEAD) Seal(plaintext, additionalData []byte) (nonce, sealed []byte, err error) {
	nonce = make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(a.rand, nonce); err != nil {
		return nil, nil, errNonceUnavailable
	}
	return nonce, a.aead.Seal(nil, nonce, plaintext, additionalData), nil
}

// Open decrypts and verifies ciphertext || tag.
func (a *AEAD) Open(nonce, sealed, additionalData []byte) ([]byte, error) {
	if len(nonce) != chacha20poly1305.NonceSizeX || len(sealed) < a.aead.Overhead() {
		return nil, errAuthentication
	}
	plaintext, err := a.aead.Open(nil, nonce, sealed, additionalData)
	if err != nil {
		return nil, errAuthentication
	}
	return plaintext, nil
}

// Overhead returns the authentication tag overhead.
func (a *AEAD) Overhead() int { return a.aead.Overhead() }

// NonceSize returns the nonce size.
func (a *AEAD) NonceSize() int { return chacha20poly1305.NonceSizeX }
