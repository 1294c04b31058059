package ingest

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent computes the SHA-256 hash of a chunk and returns it as a
// hex-encoded string. It is the primary key of the document store, so
// identical content hashes to the same row regardless of which file it
// came from.
//
// Returns an empty string if content is empty.
func HashContent(content string) string {
	if len(content) == 0 {
		return ""
	}
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
