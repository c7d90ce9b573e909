package hushwire

import (
	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/keys"
)

var defaultEngine *Engine

func init() {
	e, err := NewEngine(DefaultConfig())
	if err != nil {
		panic(err)
	}
	defaultEngine = e
}

// GenerateKeyPair creates a new identity key pair.
//
// Fails with ErrRandomnessUnavailable if the system entropy source cannot
// be read. The call is not retried.
func GenerateKeyPair() (EncodedKeyPair, error) {
	return defaultEngine.GenerateKeyPair()
}

// DeriveSharedSecret returns the secret shared between the owner of
// myPrivateKey and the owner of peerPublicKey.
//
// Fails with ErrInvalidPeerKey if the peer key is malformed or of small
// order, and with ErrKeyAgreementFailure if the private key cannot be used.
func DeriveSharedSecret(myPrivateKey, peerPublicKey string) (string, error) {
	return defaultEngine.DeriveSharedSecret(myPrivateKey, peerPublicKey)
}

// EncryptMessage seals plaintext for chatID as sent by senderID.
//
// Fails with ErrEncryptionFailure.
func EncryptMessage(sharedSecret, chatID, senderID, plaintext string) (string, error) {
	return defaultEngine.EncryptMessage(sharedSecret, chatID, senderID, plaintext)
}

// DecryptMessage opens an envelope sealed by EncryptMessage. chatID and
// senderID must match the values used when sealing.
//
// Fails with ErrMalformedEnvelope, ErrUnsupportedVersion or
// ErrDecryptionFailure. A wrong secret, a wrong context and a tampered
// envelope all yield ErrDecryptionFailure.
func DecryptMessage(sharedSecret, chatID, senderID, envelope string) (string, error) {
	return defaultEngine.DecryptMessage(sharedSecret, chatID, senderID, envelope)
}

// Fingerprint returns the hex fingerprint of an encoded public key, for
// comparing keys out of band.
func Fingerprint(publicKey string) (string, error) {
	pub, err := keys.ParsePublicKey(publicKey)
	if err != nil {
		return "", errors.WithMessage(ErrInvalidPeerKey, err.Error())
	}
	return pub.Fingerprint().String(), nil
}
