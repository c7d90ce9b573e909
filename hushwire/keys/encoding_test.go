package keys

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestKeyEncodingRoundTrip(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	privText := EncodePrivateKey(kp.Private)
	pubText := EncodePublicKey(kp.Public)
	require.NotEqual(t, privText, pubText)

	priv, err := ParsePrivateKey(privText)
	require.NoError(t, err)
	require.Equal(t, kp.Private, priv)

	pub, err := ParsePublicKey(pubText)
	require.NoError(t, err)
	require.Equal(t, kp.Public, pub)
	require.Equal(t, pubText, pub.String())
}

func TestKeyEncodingKindsDoNotMix(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = ParsePublicKey(EncodePrivateKey(kp.Private))
	require.True(t, errors.Is(err, ErrInvalidKeyEncoding), "got %v", err)

	_, err = ParsePrivateKey(EncodePublicKey(kp.Public))
	require.True(t, errors.Is(err, ErrInvalidKeyEncoding), "got %v", err)

	_, err = ParsePrivateKey(EncodeTagged(KindSharedSecret, kp.Private[:]))
	require.True(t, errors.Is(err, ErrInvalidKeyEncoding), "got %v", err)
}

func TestKeyEncodingErrorsDoNotEchoInput(t *testing.T) {
	kp, err := GenerateKeyPair()
	require.NoError(t, err)
	privText := EncodePrivateKey(kp.Private)

	_, err = ParsePublicKey(privText)
	require.Error(t, err)
	require.NotContains(t, err.Error(), privText)
	require.NotContains(t, err.Error(), hex.EncodeToString(kp.Private[:]))
}

func TestKeyEncodingMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not base64", "!!!!"},
		{"truncated", EncodeTagged(KindPublicKey, make([]byte, Size-1))},
		{"too long", EncodeTagged(KindPublicKey, make([]byte, Size+1))},
		{"raw key without tag", Encoding.EncodeToString(make([]byte, Size))},
		{"url alphabet", strings.NewReplacer("+", "-", "/", "_").Replace(EncodeTagged(KindPublicKey, []byte(strings.Repeat("\xfb", Size))))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePublicKey(tc.input)
			require.True(t, errors.Is(err, ErrInvalidKeyEncoding), "got %v", err)
		})
	}
}

func TestValidate(t *testing.T) {
	hexKey := func(s string) PublicKey {
		b, err := hex.DecodeString(s)
		require.NoError(t, err)
		var p PublicKey
		copy(p[:], b)
		return p
	}

	rejected := map[string]PublicKey{
		"identity":        {},
		"order 4 (u=1)":   hexKey("0100000000000000000000000000000000000000000000000000000000000000"),
		"order 8 a":       hexKey("e0eb7a7c3b41b8ae1656e3faf19fc46ada098deb9c32b1fd866205165f49b800"),
		"order 8 b":       hexKey("5f9c95bca3508c24b1d0b1559c83ef5b04445cc4581c8e86d8224eddd09f1157"),
		"order 2 (p-1)":   hexKey("ecffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"),
		"p (non-canon 0)": hexKey("edffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"),
		"p+1":             hexKey("eeffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"),
		"high bit set":    hexKey("0900000000000000000000000000000000000000000000000000000000000080"),
	}
	for name, p := range rejected {
		t.Run(name, func(t *testing.T) {
			require.True(t, errors.Is(p.Validate(), ErrInvalidPublicKey))
		})
	}

	basepoint := hexKey("0900000000000000000000000000000000000000000000000000000000000000")
	require.NoError(t, basepoint.Validate())

	largestCanonical := hexKey("ebffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f")
	require.NoError(t, largestCanonical.Validate())
}
