package cipher

import (
	"io"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/envelope"
	"github.com/hushwire/hushwire/hushwire/keys"
)

var (
	ErrEncryptionFailure = errors.New("cipher: encryption failed")
	// ErrDecryptionFailure covers a wrong secret, a wrong context and
	// tampered bytes alike. Callers cannot tell these apart.
	ErrDecryptionFailure = errors.New("cipher: decryption failed")
)

const (
	DefaultCompressMinSize     = 256
	DefaultMaxDecompressedSize = 16 << 20 // 16 MiB
)

// Options configures a Cipher. The zero value is ready to use: crypto/rand,
// no compression.
type Options struct {
	// Rand is the nonce source. nil selects crypto/rand.Reader.
	Rand io.Reader

	// Compress enables LZ4 compression of plaintexts of at least
	// CompressMinSize bytes, kept only when it shrinks the message.
	// Compression before encryption reveals how compressible a message is,
	// so leave it off when an attacker can influence part of the plaintext.
	Compress        bool
	CompressMinSize int
	CompressLevel   CompressionLevel

	// MaxDecompressedSize caps the size of a decompressed plaintext.
	MaxDecompressedSize int
}

// Cipher seals and opens chat messages. It holds no keys and no per-call
// state, so one Cipher may be shared by any number of goroutines.
type Cipher struct {
	opts Options
}

// New creates a Cipher, filling unset options with defaults.
func New(opts Options) *Cipher {
	if opts.CompressMinSize <= 0 {
		opts.CompressMinSize = DefaultCompressMinSize
	}
	if opts.MaxDecompressedSize <= 0 {
		opts.MaxDecompressedSize = DefaultMaxDecompressedSize
	}
	return &Cipher{opts: opts}
}

var defaultCipher = New(Options{})

// Encrypt seals plaintext with the default options.
func Encrypt(secret agreement.SharedSecret, ctx Context, plaintext string) (envelope.Envelope, error) {
	return defaultCipher.Encrypt(secret, ctx, plaintext)
}

// Decrypt opens env with the default options.
func Decrypt(secret agreement.SharedSecret, ctx Context, env envelope.Envelope) (string, error) {
	return defaultCipher.Decrypt(secret, ctx, env)
}

// Encrypt seals plaintext for ctx under secret.
func (c *Cipher) Encrypt(secret agreement.SharedSecret, ctx Context, plaintext string) (envelope.Envelope, error) {
	defer secret.Destroy()

	if secret.IsZero() {
		return envelope.Envelope{}, errors.WithMessage(ErrEncryptionFailure, "secret destroyed")
	}

	body := []byte(plaintext)
	defer keys.Zero(body)

	var flags envelope.Flags
	if c.opts.Compress && len(body) >= c.opts.CompressMinSize {
		if compressed, ok := maybeCompress(body, c.opts.CompressLevel); ok {
			defer keys.Zero(compressed)
			body = compressed
			flags |= envelope.FlagCompressed
		}
	}

	key, err := chatKey(&secret, ctx.ChatID)
	if err != nil {
		return envelope.Envelope{}, errors.Wrap(ErrEncryptionFailure, "derive chat key")
	}
	defer keys.Zero(key)

	aead, err := NewAEAD(key, c.opts.Rand)
	if err != nil {
		return envelope.Envelope{}, errors.Wrap(ErrEncryptionFailure, "init aead")
	}

	env := envelope.Envelope{Version: envelope.Current, Flags: flags}
	nonce, sealed, err := aead.Seal(body, associatedData(env.Header(), ctx))
	if err != nil {
		jww.WARN.Printf("[CIPHER] encrypt for chat %q: %v", ctx.ChatID, err)
		return envelope.Envelope{}, errors.Wrap(ErrEncryptionFailure, keys.ErrRandomnessUnavailable.Error())
	}
	env.Nonce = nonce
	env.Sealed = sealed
	return env, nil
}

// Decrypt opens env for ctx under secret. The envelope's version and
// structure are checked before the secret is used. Every authentication or
// payload failure is reported as ErrDecryptionFailure.
func (c *Cipher) Decrypt(secret agreement.SharedSecret, ctx Context, env envelope.Envelope) (string, error) {
	defer secret.Destroy()

	if !env.Version.Supported() {
		return "", errors.Wrapf(envelope.ErrUnsupportedVersion, "version %d", env.Version)
	}
	if len(env.Nonce) != envelope.NonceSize(env.Version) || len(env.Sealed) < envelope.TagSize(env.Version) {
		return "", errors.WithMessage(envelope.ErrMalformedEnvelope, "field sizes do not match version")
	}
	if secret.IsZero() {
		jww.DEBUG.Printf("[CIPHER] decrypt for chat %q: secret destroyed", ctx.ChatID)
		return "", ErrDecryptionFailure
	}

	key, err := chatKey(&secret, ctx.ChatID)
	if err != nil {
		jww.DEBUG.Printf("[CIPHER] decrypt for chat %q: chat key: %v", ctx.ChatID, err)
		return "", ErrDecryptionFailure
	}
	defer keys.Zero(key)

	aead, err := NewAEAD(key, c.opts.Rand)
	if err != nil {
		jww.DEBUG.Printf("[CIPHER] decrypt for chat %q: init aead: %v", ctx.ChatID, err)
		return "", ErrDecryptionFailure
	}

	body, err := aead.Open(env.Nonce, env.Sealed, associatedData(env.Header(), ctx))
	if err != nil {
		jww.DEBUG.Printf("[CIPHER] decrypt for chat %q sender %q: %v",
			ctx.ChatID, ctx.SenderID, err)
		return "", ErrDecryptionFailure
	}
	defer keys.Zero(body)

	if env.Flags.Has(envelope.FlagCompressed) {
		inflated, err := decompress(body, c.opts.MaxDecompressedSize)
		if err != nil {
			jww.DEBUG.Printf("[CIPHER] decrypt for chat %q: %v", ctx.ChatID, err)
			return "", ErrDecryptionFailure
		}
		defer keys.Zero(inflated)
		body = inflated
	}
	return string(body), nil
}
