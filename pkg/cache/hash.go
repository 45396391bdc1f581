package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ArtifactKey returns the cache key of an image rendered from dot. target
// names the backend instance, such as a dot binary path or a service URL,
// and may be empty.
func ArtifactKey(renderer, target, format string, dot []byte) string {
	h := sha256.New()
	for _, part := range []string{renderer, target, format} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write(dot)
	return "artifact:" + renderer + ":" + format + ":" + hex.EncodeToString(h.Sum(nil))
}
