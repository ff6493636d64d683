// Package digest computes the content digests recorded in wheel
// manifests and verifies release checksum files.
package digest

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// sum streams the file through SHA-256 without buffering it whole.
func sum(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return h.Sum(nil), nil
}

// SHA256Hex returns the lowercase hex SHA-256 digest of the file.
func SHA256Hex(path string) (string, error) {
	d, err := sum(path)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(d), nil
}

// RecordHash returns the digest in wheel RECORD form:
// "sha256=" followed by the unpadded URL-safe base64 of the raw digest.
func RecordHash(path string) (string, error) {
	d, err := sum(path)
	if err != nil {
		return "", err
	}
	return "sha256=" + base64.RawURLEncoding.EncodeToString(d), nil
}
