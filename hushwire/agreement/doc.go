// Package agreement derives the symmetric secret two identities share.
//
// Design:
//   - X25519 over validated peer keys (small-order and non-canonical points rejected)
//   - HKDF-SHA256 over the raw agreement output; the raw output is never a key
//   - Both public keys bound into the derivation in a canonical order, so
//     DeriveSharedSecret(a, B) == DeriveSharedSecret(b, A)
package agreement
