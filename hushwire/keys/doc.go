// Package keys generates and encodes X25519 identity key pairs.
//
// Private and public keys are distinct types with distinct text encodings:
// a private key can never be parsed where a public key is expected, and a
// private key never renders its bytes through fmt.
package keys
