// Package uploads generates names for uploaded assets.
package uploads

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

const nameEntropyBytes = 16

// GenerateName returns a filename made of freshly drawn random bytes, hex
// encoded, followed by the original file's extension. The entropy makes
// collisions negligible, so callers may treat names as unique without
// checking the destination. It fails only when the secure random source is
// unavailable.
func GenerateName(originalExt string) (string, error) {
	var buf [nameEntropyBytes]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	ext := strings.TrimSpace(originalExt)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return hex.EncodeToString(buf[:]) + ext, nil
}
