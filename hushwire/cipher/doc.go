// Package cipher seals chat messages under a shared secret.
//
// Design goals:
//   - XChaCha20-Poly1305 AEAD with a random 192-bit nonce per message
//   - A per-chat key derived from the shared secret via HKDF-SHA256
//   - Chat and sender identifiers bound as associated data, so a message
//     replayed into another chat or under another sender fails to open
//   - One opaque ErrDecryptionFailure for every authentication failure
//   - No state between calls; safe for concurrent use with one secret
package cipher
