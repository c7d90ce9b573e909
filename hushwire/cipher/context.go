package cipher

import (
	"encoding/binary"

	"github.com/hushwire/hushwire/hushwire/agreement"
	"github.com/hushwire/hushwire/hushwire/envelope"
)

const (
	adLabel      = "hushwire/v1"
	chatKeyLabel = "hushwire/v1 chat-key"
	chatKeySize  = 32
)

// Context identifies the conversation and the claimed sender of a message.
// Neither field is secret, but both are authenticated: a ciphertext sealed
// for one Context does not open under another.
type Context struct {
	ChatID   string
	SenderID string
}

// associatedData serialises the envelope header and ctx. Each identifier is
// length-prefixed so that no two contexts share an encoding.
func associatedData(hdr [envelope.HeaderSize]byte, ctx Context) []byte {
	ad := make([]byte, 0, len(adLabel)+len(hdr)+8+len(ctx.ChatID)+len(ctx.SenderID))
	ad = append(ad, adLabel...)
	ad = append(ad, hdr[:]...)
	ad = appendString(ad, ctx.ChatID)
	ad = appendString(ad, ctx.SenderID)
	return ad
}

func appendString(b []byte, s string) []byte {
	var l [4]byte
	binary.BigEndian.PutUint32(l[:], uint32(len(s)))
	b = append(b, l[:]...)
	return append(b, s...)
}

// chatKey derives the AEAD key for one chat from the shared secret, so that
// each conversation between the same two parties uses its own key.
func chatKey(secret *agreement.SharedSecret, chatID string) ([]byte, error) {
	return agreement.DeriveKey(secret[:], []byte(chatID), []byte(chatKeyLabel), chatKeySize)
}
