package keys

import (
	"encoding/hex"

	"github.com/pkg/errors"
)

// lowOrderPoints lists the canonical u-coordinates whose order divides 8.
// Multiplying any of them by a clamped scalar yields the identity.
var lowOrderPoints = mustDecodePoints(
	"0000000000000000000000000000000000000000000000000000000000000000",
	"0100000000000000000000000000000000000000000000000000000000000000",
	"e0eb7a7c3b41b8ae1656e3faf19fc46ada098deb9c32b1fd866205165f49b800",
	"5f9c95bca3508c24b1d0b1559c83ef5b04445cc4581c8e86d8224eddd09f1157",
	"ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f",
)

func mustDecodePoints(hexes ...string) []PublicKey {
	out := make([]PublicKey, 0, len(hexes))
	for _, h := range hexes {
		b, err := hex.DecodeString(h)
		if err != nil || len(b) != Size {
			panic("keys: bad low-order point table")
		}
		var p PublicKey
		copy(p[:], b)
		out = append(out, p)
	}
	return out
}

// Validate checks that p is a canonical encoding of a point that is not of
// small order. The X25519 function itself accepts any 32 bytes, so this is
// the only place a malformed peer key is caught before agreement.
func (p PublicKey) Validate() error {
	if p[31]&0x80 != 0 {
		return errors.WithMessage(ErrInvalidPublicKey, "high bit set")
	}
	if !p.canonical() {
		return errors.WithMessage(ErrInvalidPublicKey, "non-canonical encoding")
	}
	for _, lo := range lowOrderPoints {
		if p == lo {
			return errors.WithMessage(ErrInvalidPublicKey, "small-order point")
		}
	}
	return nil
}

// canonical reports whether u < 2^255-19, assuming the high bit is clear.
func (p PublicKey) canonical() bool {
	if p[31] != 0x7f {
		return true
	}
	for i := 30; i >= 1; i-- {
		if p[i] != 0xff {
			return true
		}
	}
	return p[0] < 0xed
}
