package keys

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"
)

const fingerprintLabel = "hushwire/v1 fingerprint"

// Fingerprint identifies a public key in logs and in out-of-band key
// verification. It is SHA-256(label || PublicKey) and reveals nothing
// beyond the public key itself.
type Fingerprint [sha256.Size]byte

func (p PublicKey) Fingerprint() Fingerprint {
	h := sha256.New()
	h.Write([]byte(fingerprintLabel))
	h.Write(p[:])
	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

// ParseFingerprintHex parses the output of Fingerprint.String.
func ParseFingerprintHex(s string) (Fingerprint, error) {
	var fp Fingerprint
	b, err := hex.DecodeString(s)
	if err != nil {
		return fp, errors.Wrap(err, "keys: fingerprint")
	}
	if len(b) != len(fp) {
		return fp, errors.Errorf("keys: fingerprint is %d bytes, want %d", len(b), len(fp))
	}
	copy(fp[:], b)
	return fp, nil
}

func (fp Fingerprint) String() string {
	return hex.EncodeToString(fp[:])
}

// Short returns the first eight bytes, enough to tell keys apart in logs.
func (fp Fingerprint) Short() string {
	return hex.EncodeToString(fp[:8])
}
