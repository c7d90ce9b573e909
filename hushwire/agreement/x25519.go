package agreement

import (
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"
	"golang.org/x/crypto/curve25519"

	"github.com/hushwire/hushwire/hushwire/keys"
)

var (
	ErrInvalidPeerKey      = errors.New("agreement: invalid peer public key")
	ErrKeyAgreementFailure = errors.New("agreement: key agreement failed")
)

// ECDH computes the raw X25519 output for a validated peer key.
// Returns 32 bytes of raw shared secret (must be passed through HKDF).
func ECDH(my keys.PrivateKey, peer keys.PublicKey) ([]byte, error) {
	defer my.Destroy()

	if err := peer.Validate(); err != nil {
		jww.DEBUG.Printf("[AGREEMENT] rejected peer key %s: %v", peer.Fingerprint().Short(), err)
		return nil, errors.WithMessage(ErrInvalidPeerKey, err.Error())
	}
	if my.IsZero() {
		return nil, errors.WithMessage(ErrKeyAgreementFailure, "private key destroyed")
	}

	shared, err := curve25519.X25519(my[:], peer[:])
	if err != nil {
		// X25519 only fails on an all-zero output, i.e. a point Validate
		// did not list.
		jww.DEBUG.Printf("[AGREEMENT] all-zero output for peer %s", peer.Fingerprint().Short())
		return nil, errors.WithMessage(ErrInvalidPeerKey, "degenerate agreement output")
	}
	return shared, nil
}

// DeriveSharedSecret derives the secret shared between the owner of my and
// the owner of peer. The result is deterministic and symmetric.
func DeriveSharedSecret(my keys.PrivateKey, peer keys.PublicKey) (SharedSecret, error) {
	defer my.Destroy()

	myPub, err := my.Public()
	if err != nil {
		return SharedSecret{}, errors.Wrap(ErrKeyAgreementFailure, "recompute own public key")
	}

	raw, err := ECDH(my, peer)
	if err != nil {
		return SharedSecret{}, err
	}
	defer keys.Zero(raw)

	okm, err := DeriveKey(raw, nil, sharedSecretInfo(myPub, peer), SecretSize)
	if err != nil {
		return SharedSecret{}, errors.Wrap(ErrKeyAgreementFailure, "hkdf expand")
	}
	defer keys.Zero(okm)

	var s SharedSecret
	copy(s[:], okm)
	jww.TRACE.Printf("[AGREEMENT] derived secret for %s <-> %s",
		myPub.Fingerprint().Short(), peer.Fingerprint().Short())
	return s, nil
}
