package acquire

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shantoislamdev/wheelbuild/internal/target"
)

// locate finds a prebuilt binary under a local GoReleaser dist
// directory and copies it into destDir. The candidate paths mirror
// GoReleaser's output layout; the first existing one wins.
func (a *Acquirer) locate(t target.Target, binariesDir, destDir string) (string, error) {
	binaryName := a.project.BinaryName(t.OS)
	candidates := searchCandidates(binariesDir, a.project.Name, t, binaryName)

	for _, src := range candidates {
		info, err := os.Stat(src)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		dest := filepath.Join(destDir, binaryName)
		if err := copyFile(src, dest); err != nil {
			return "", fmt.Errorf("copy %s: %w", src, err)
		}
		if err := os.Chmod(dest, info.Mode().Perm()|0100); err != nil {
			return "", fmt.Errorf("set executable: %w", err)
		}
		a.log.Infof("  using local binary %s", src)
		return dest, nil
	}

	return "", &AcquisitionError{Target: t.Label(), Op: "locate", Searched: candidates}
}

// searchCandidates lists the paths tried, in order, when resolving a
// binary from a local dist directory.
func searchCandidates(binariesDir, name string, t target.Target, binaryName string) []string {
	prefix := fmt.Sprintf("%s_%s_%s", name, t.OS, t.Arch)
	return []string{
		filepath.Join(binariesDir, prefix, binaryName),
		filepath.Join(binariesDir, prefix+"_v1", binaryName),
		filepath.Join(binariesDir, binaryName),
	}
}

// copyFile copies src to dest, preserving the source's permission
// bits and modification time.
func copyFile(src, dest string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dest, info.ModTime(), info.ModTime())
}
