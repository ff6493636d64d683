package digest

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// VerifyChecksumFile checks archivePath against a GoReleaser-style
// checksums file: one "<hex sha256>  <filename>" line per artifact.
// The entry is matched by the archive's base filename.
func VerifyChecksumFile(archivePath, checksumPath string) error {
	want, err := findChecksum(checksumPath, filepath.Base(archivePath))
	if err != nil {
		return err
	}

	got, err := SHA256Hex(archivePath)
	if err != nil {
		return err
	}

	if got != want {
		return fmt.Errorf("checksum mismatch for %s: expected %s, got %s",
			filepath.Base(archivePath), want, got)
	}
	return nil
}

// findChecksum returns the hex digest listed for filename.
func findChecksum(checksumPath, filename string) (string, error) {
	f, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		// sha256sum marks binary-mode entries with a leading '*'.
		name := strings.TrimPrefix(fields[1], "*")
		if name == filename {
			return strings.ToLower(fields[0]), nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read checksum file: %w", err)
	}
	return "", fmt.Errorf("no checksum entry for %s in %s", filename, checksumPath)
}
