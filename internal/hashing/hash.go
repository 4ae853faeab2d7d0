package hashing

import (
	"crypto/sha256"
	"encoding/hex"
)

// Generate computes the fingerprint binding a claim's text, its content
// identifier and the timestamp of hashing. The same triple always produces
// the same digest, so a record can be re-verified by recomputing it.
func Generate(text, cid, timestamp string) string {
	sum := sha256.Sum256([]byte(text + "|" + cid + "|" + timestamp))
	return hex.EncodeToString(sum[:])
}
