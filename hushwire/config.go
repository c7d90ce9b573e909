package hushwire

import (
	"io"

	"github.com/pkg/errors"

	"github.com/hushwire/hushwire/hushwire/cipher"
)

// Config controls optional behaviour of an Engine. The zero value is not
// valid; start from DefaultConfig.
type Config struct {
	// Compress enables LZ4 compression of long messages before sealing.
	// Compressed length is visible to an observer; leave off unless the
	// plaintext is entirely under the sender's control.
	Compress        bool   `mapstructure:"compress"`
	CompressMinSize int    `mapstructure:"compressMinSize"`
	CompressLevel   string `mapstructure:"compressLevel"`

	// MaxMessageSize caps the plaintext length accepted on decryption of a
	// compressed envelope.
	MaxMessageSize int `mapstructure:"maxMessageSize"`

	// Rand overrides the entropy source for keys and nonces. nil selects
	// crypto/rand.
	Rand io.Reader `mapstructure:"-"`
}

// DefaultConfig returns the configuration used by the package-level
// functions.
func DefaultConfig() Config {
	return Config{
		Compress:        false,
		CompressMinSize: cipher.DefaultCompressMinSize,
		CompressLevel:   "default",
		MaxMessageSize:  cipher.DefaultMaxDecompressedSize,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.CompressMinSize < 0 {
		return errors.Errorf("hushwire: compressMinSize must not be negative, got %d", c.CompressMinSize)
	}
	if c.MaxMessageSize < 0 {
		return errors.Errorf("hushwire: maxMessageSize must not be negative, got %d", c.MaxMessageSize)
	}
	if _, err := cipher.ParseCompressionLevel(c.CompressLevel); err != nil {
		return errors.WithMessage(err, "hushwire")
	}
	return nil
}

func (c Config) cipherOptions() cipher.Options {
	level, _ := cipher.ParseCompressionLevel(c.CompressLevel)
	return cipher.Options{
		Rand:                c.Rand,
		Compress:            c.Compress,
		CompressMinSize:     c.CompressMinSize,
		CompressLevel:       level,
		MaxDecompressedSize: c.MaxMessageSize,
	}
}
