// Package hashing computes content digests for document identity
// and duplicate detection.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// chunkSize bounds each read so memory use is independent of content size.
const chunkSize = 4096

// Sum streams r to completion and returns the hex-encoded SHA-256
// digest of its content. Identical bytes always yield identical digests.
func Sum(r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, chunkSize)

	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", fmt.Errorf("hash content: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumFile returns the hex-encoded SHA-256 digest of the file at path.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return Sum(f)
}
