package envelope

import (
	"bytes"
	"errors"
	"testing"

	"github.com/hushwire/hushwire/hushwire/keys"
)

func testEnvelope() Envelope {
	nonce := make([]byte, NonceSize(Version1))
	for i := range nonce {
		nonce[i] = byte(i)
	}
	return Envelope{
		Version: Version1,
		Flags:   FlagCompressed,
		Nonce:   nonce,
		Sealed:  []byte("ciphertext and a sixteen-byte tag"),
	}
}

func TestEnvelopeRoundTrip(t *testing.T) {
	in := testEnvelope()
	token, err := Encode(in)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out, err := Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if out.Version != in.Version || out.Flags != in.Flags {
		t.Fatalf("header mismatch")
	}
	if !bytes.Equal(out.Nonce, in.Nonce) || !bytes.Equal(out.Sealed, in.Sealed) {
		t.Fatalf("body mismatch")
	}
	if !out.Flags.Has(FlagCompressed) {
		t.Fatalf("flag lost")
	}
}

func TestParseDoesNotAlias(t *testing.T) {
	b, _ := testEnvelope().MarshalBinary()
	e, err := Parse(b)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	b[HeaderSize] ^= 0xff
	b[len(b)-1] ^= 0xff
	if e.Nonce[0] != 0 || e.Sealed[len(e.Sealed)-1] != 'g' {
		t.Fatalf("parsed envelope aliases input buffer")
	}
}

func TestDecodeMalformed(t *testing.T) {
	valid, _ := testEnvelope().MarshalBinary()
	minLen := HeaderSize + NonceSize(Version1) + TagSize(Version1)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not base64", "%%%"},
		{"truncated base64", encode64(valid)[:10]},
		{"version only", encode64([]byte{byte(Version1)})},
		{"short by one", encode64(valid[:minLen-1])},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(tc.token)
			if !errors.Is(err, ErrMalformedEnvelope) {
				t.Fatalf("expected ErrMalformedEnvelope, got %v", err)
			}
		})
	}

	if _, err := Parse(valid[:minLen]); err != nil {
		t.Fatalf("minimum-length envelope rejected: %v", err)
	}
}

func TestDecodeUnsupportedVersion(t *testing.T) {
	for _, v := range []byte{0, 2, 0x81, 0xff} {
		b, _ := testEnvelope().MarshalBinary()
		b[0] = v
		_, err := Parse(b)
		if !errors.Is(err, ErrUnsupportedVersion) {
			t.Fatalf("version %d: expected ErrUnsupportedVersion, got %v", v, err)
		}
		if Version(v).Supported() {
			t.Fatalf("version %d reported as supported", v)
		}
	}
}

func TestMarshalRejectsBadFields(t *testing.T) {
	e := testEnvelope()
	e.Nonce = e.Nonce[:12]
	if _, err := e.MarshalBinary(); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope for short nonce, got %v", err)
	}

	e = testEnvelope()
	e.Version = 9
	if _, err := Encode(e); !errors.Is(err, ErrUnsupportedVersion) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}

	e = testEnvelope()
	e.Sealed = e.Sealed[:TagSize(Version1)-1]
	if _, err := e.MarshalBinary(); !errors.Is(err, ErrMalformedEnvelope) {
		t.Fatalf("expected ErrMalformedEnvelope for short payload, got %v", err)
	}
}

func encode64(b []byte) string { return keys.Encoding.EncodeToString(b) }
