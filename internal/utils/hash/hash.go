// Package hash provides the one-way password digest used everywhere a
// password is stored or checked.
//
// Credentials are verified by hash equality: the digest of the
// submitted password is compared against the stored digest. Plaintext
// is never persisted, and a parent account is seeded with the same
// digest as its student, so the digest must be deterministic —
// a salted scheme would break that contract.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// Password returns the sha256 hex digest of the given plaintext.
func Password(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
