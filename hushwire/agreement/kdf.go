package agreement

import (
	"bytes"
	"crypto/sha256"
	"io"

	"github.com/hushwire/hushwire/hushwire/keys"
	"golang.org/x/crypto/hkdf"
)

const sharedSecretLabel = "hushwire/v1 shared-secret"

// DeriveKey derives a key of the specified length using HKDF-SHA256.
// salt can be nil (uses zero salt), info provides context binding.
func DeriveKey(secret, salt, info []byte, length int) ([]byte, error) {
	hk := hkdf.New(sha256.New, secret, salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(hk, key); err != nil {
		keys.Zero(key)
		return nil, err
	}
	return key, nil
}

// sharedSecretInfo binds both public keys to the derived secret. The keys
// are ordered bytewise so both parties build the same info.
func sharedSecretInfo(a, b keys.PublicKey) []byte {
	if bytes.Compare(a[:], b[:]) > 0 {
		a, b = b, a
	}
	info := make([]byte, 0, len(sharedSecretLabel)+2*keys.Size)
	info = append(info, sharedSecretLabel...)
	info = append(info, a[:]...)
	info = append(info, b[:]...)
	return info
}
