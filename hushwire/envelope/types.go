package envelope

// HeaderSize is the number of bytes before the nonce.
const HeaderSize = 2

type Version uint8

const (
	// Version1 seals with XChaCha20-Poly1305 under a per-chat HKDF key.
	Version1 Version = 1

	Current = Version1
)

func (v Version) String() string {
	switch v {
	case Version1:
		return "v1"
	default:
		return "unknown"
	}
}

// Supported reports whether this build can parse v.
func (v Version) Supported() bool {
	_, ok := layouts[v]
	return ok
}

type Flags uint8

const (
	// FlagCompressed marks an LZ4-compressed plaintext.
	FlagCompressed Flags = 1 << 0
)

func (f Flags) Has(flag Flags) bool { return f&flag != 0 }

type layout struct {
	nonceSize int
	tagSize   int
}

var layouts = map[Version]layout{
	Version1: {nonceSize: 24, tagSize: 16},
}

// NonceSize returns the nonce length for v, or 0 if v is unknown.
func NonceSize(v Version) int { return layouts[v].nonceSize }

// TagSize returns the authentication tag length for v, or 0 if v is unknown.
func TagSize(v Version) int { return layouts[v].tagSize }
