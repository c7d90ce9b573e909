// Package envelope defines the versioned wire form of a sealed message and
// its single-token text rendering.
//
// Parsing validates version and structure only. An unknown version is
// reported as ErrUnsupportedVersion so callers can ask the user to update
// instead of reporting a corrupted message.
package envelope
