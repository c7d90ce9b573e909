package agreement

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/hushwire/hushwire/hushwire/keys"
)

func TestX25519ECDH(t *testing.T) {
	alice, err := keys.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	bob, err := keys.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	sharedAlice, err := ECDH(alice.Private, bob.Public)
	if err != nil {
		t.Fatalf("ECDH alice: %v", err)
	}
	sharedBob, err := ECDH(bob.Private, alice.Public)
	if err != nil {
		t.Fatalf("ECDH bob: %v", err)
	}

	if !bytes.Equal(sharedAlice, sharedBob) {
		t.Fatalf("shared secrets do not match")
	}
	if alice.Private.IsZero() {
		t.Fatalf("ECDH must not destroy the caller's key")
	}
}

func TestDeriveSharedSecretSymmetric(t *testing.T) {
	for i := 0; i < 32; i++ {
		a, _ := keys.GenerateKeyPair()
		b, _ := keys.GenerateKeyPair()

		sa, err := DeriveSharedSecret(a.Private, b.Public)
		if err != nil {
			t.Fatalf("DeriveSharedSecret a: %v", err)
		}
		sb, err := DeriveSharedSecret(b.Private, a.Public)
		if err != nil {
			t.Fatalf("DeriveSharedSecret b: %v", err)
		}
		if !sa.Equal(&sb) {
			t.Fatalf("iteration %d: secrets differ", i)
		}
	}
}

func TestDeriveSharedSecretDeterministic(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	s1, _ := DeriveSharedSecret(a.Private, b.Public)
	s2, _ := DeriveSharedSecret(a.Private, b.Public)
	if !s1.Equal(&s2) {
		t.Fatalf("derivation is not deterministic")
	}
}

func TestDeriveSharedSecretIsNotRawECDH(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	raw, _ := ECDH(a.Private, b.Public)
	s, _ := DeriveSharedSecret(a.Private, b.Public)
	if bytes.Equal(raw, s[:]) {
		t.Fatalf("raw agreement output used as key")
	}
}

func TestDeriveSharedSecretDistinctPeers(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	c, _ := keys.GenerateKeyPair()
	sab, _ := DeriveSharedSecret(a.Private, b.Public)
	sac, _ := DeriveSharedSecret(a.Private, c.Public)
	if sab.Equal(&sac) {
		t.Fatalf("different peers produced the same secret")
	}
}

func TestDeriveSharedSecretInvalidPeer(t *testing.T) {
	a, _ := keys.GenerateKeyPair()

	orderEight, _ := hex.DecodeString("e0eb7a7c3b41b8ae1656e3faf19fc46ada098deb9c32b1fd866205165f49b800")
	var lowOrder keys.PublicKey
	copy(lowOrder[:], orderEight)

	for name, peer := range map[string]keys.PublicKey{
		"identity":  {},
		"low order": lowOrder,
	} {
		t.Run(name, func(t *testing.T) {
			s, err := DeriveSharedSecret(a.Private, peer)
			if !errors.Is(err, ErrInvalidPeerKey) {
				t.Fatalf("expected ErrInvalidPeerKey, got %v", err)
			}
			if !s.IsZero() {
				t.Fatalf("secret returned alongside error")
			}
		})
	}
}

func TestDeriveSharedSecretDestroyedKey(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	a.Destroy()
	_, err := DeriveSharedSecret(a.Private, b.Public)
	if !errors.Is(err, ErrKeyAgreementFailure) {
		t.Fatalf("expected ErrKeyAgreementFailure, got %v", err)
	}
}

func TestSharedSecretEncoding(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	s, _ := DeriveSharedSecret(a.Private, b.Public)

	text := EncodeSharedSecret(s)
	parsed, err := ParseSharedSecret(text)
	if err != nil {
		t.Fatalf("ParseSharedSecret: %v", err)
	}
	if !parsed.Equal(&s) {
		t.Fatalf("secret mismatch after round trip")
	}

	if _, err := ParseSharedSecret(keys.EncodePublicKey(b.Public)); !errors.Is(err, ErrInvalidSecretEncoding) {
		t.Fatalf("public key accepted as secret: %v", err)
	}
	if _, err := ParseSharedSecret(keys.EncodePrivateKey(a.Private)); !errors.Is(err, ErrInvalidSecretEncoding) {
		t.Fatalf("private key accepted as secret: %v", err)
	}
}

func TestSharedSecretRedacted(t *testing.T) {
	a, _ := keys.GenerateKeyPair()
	b, _ := keys.GenerateKeyPair()
	s, _ := DeriveSharedSecret(a.Private, b.Public)
	secretHex := hex.EncodeToString(s[:])
	for _, verb := range []string{"%v", "%#v", "%x", "%s"} {
		if out := fmt.Sprintf(verb, s); strings.Contains(out, secretHex) {
			t.Fatalf("%s leaked the secret", verb)
		}
	}
}

func TestDeriveKeyLengths(t *testing.T) {
	for _, n := range []int{16, 32, 64} {
		k, err := DeriveKey([]byte("ikm"), []byte("salt"), []byte("info"), n)
		if err != nil {
			t.Fatalf("DeriveKey(%d): %v", n, err)
		}
		if len(k) != n {
			t.Fatalf("DeriveKey(%d) returned %d bytes", n, len(k))
		}
	}
}

func BenchmarkDeriveSharedSecret(b *testing.B) {
	alice, _ := keys.GenerateKeyPair()
	bob, _ := keys.GenerateKeyPair()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = DeriveSharedSecret(alice.Private, bob.Public)
	}
}
