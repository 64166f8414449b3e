// Package verify checks file integrity (SHA-256) and authenticity (detached
// and clearsigned OpenPGP signatures) before any fetched artifact is trusted.
package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// SHA256 computes the SHA-256 of r and compares it case-insensitively
// against expectedHex. A mismatch is returned as an error carrying both
// the computed and the expected digest; the caller names the artifact.
func SHA256(r io.Reader, expectedHex string) error {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return fmt.Errorf("hashing: %w", err)
	}
	got := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(got, expectedHex) {
		return fmt.Errorf("sha256 mismatch: got %s, want %s", got, expectedHex)
	}
	return nil
}
