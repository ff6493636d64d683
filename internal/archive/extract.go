package archive

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// MemberNotFoundError reports that no member of the archive matched
// the sought base filename.
type MemberNotFoundError struct {
	Archive string
	Member  string
}

func (e *MemberNotFoundError) Error() string {
	return fmt.Sprintf("%s not found in %s", e.Member, e.Archive)
}

// ExtractMember extracts the first archive member whose base filename
// equals member (case-sensitive) to destDir/member, and marks the
// result executable. Members are scanned in the archive's native
// enumeration order; when several members share a base filename the
// first one wins.
func ExtractMember(archivePath string, format Format, member, destDir string) (string, error) {
	var err error
	switch format {
	case TarGz:
		err = extractTarGz(archivePath, member, destDir)
	case Zip:
		err = extractZip(archivePath, member, destDir)
	default:
		return "", fmt.Errorf("unsupported archive format: %s", format)
	}
	if err != nil {
		return "", err
	}

	dest := filepath.Join(destDir, member)
	if err := addExecute(dest); err != nil {
		return "", err
	}
	return dest, nil
}

func extractTarGz(archivePath, member, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return fmt.Errorf("read gzip header: %w", err)
	}
	defer gz.Close()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			return &MemberNotFoundError{Archive: archivePath, Member: member}
		}
		if err != nil {
			return fmt.Errorf("read tar header: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}
		if path.Base(header.Name) == member {
			return writeMember(destDir, member, tr)
		}
	}
}

func extractZip(archivePath, member, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if path.Base(f.Name) != member {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("open member %s: %w", f.Name, err)
		}
		err = writeMember(destDir, member, rc)
		rc.Close()
		return err
	}
	return &MemberNotFoundError{Archive: archivePath, Member: member}
}

func writeMember(destDir, member string, src io.Reader) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create dest dir: %w", err)
	}

	dest := filepath.Join(destDir, member)
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return out.Close()
}

// addExecute adds owner/group/other execute bits to a file.
func addExecute(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.Chmod(path, info.Mode()|0111); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
