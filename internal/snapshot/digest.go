package snapshot

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Digest returns the hex SHA3-256 fingerprint of content.
// Run history stores fingerprints instead of document text.
func Digest(content string) string {
	sum := sha3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}
