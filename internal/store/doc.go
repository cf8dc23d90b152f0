// Package store provides file-based persistence for a single payload.
//
// A Store is bound to one location on disk. Send serialises a string-keyed
// map to that location, truncating whatever was there, and Receive decodes
// it back. Every failure is reported as *Error, whatever its cause.
//
// Stores take no locks. Concurrent senders race and the last writer wins;
// a reader racing a writer may see a partially written file.
//
// The on-disk format is chosen by the Codec:
//   - JSONCodec writes a plain JSON object (the default)
//   - SealedCodec encrypts that object under a passphrase
package store
