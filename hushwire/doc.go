// Package hushwire is the cryptographic core of a secure messenger.
//
// It generates X25519 identity key pairs, derives a symmetric secret shared
// by two identities, and seals chat messages into versioned envelopes bound
// to a chat and a sender. Every value that crosses the package boundary is
// a base64 token, so the API can be exposed across a string-only bridge.
//
// The building blocks live in subpackages (keys, agreement, cipher,
// envelope); this package ties them together and maps their failures to a
// stable ErrorCode.
package hushwire
