package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
)

// Fingerprint hashes a canonical serialization of the given fields for
// within-run duplicate detection. encoding/json writes map keys in sorted
// order, so the result does not depend on field order.
func Fingerprint(fields map[string]string) string {
	blob, err := json.Marshal(fields)
	if err != nil {
		// map[string]string cannot fail to marshal
		return ""
	}
	sum := sha1.Sum(blob)
	return hex.EncodeToString(sum[:])
}
