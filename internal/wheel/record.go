package wheel

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/shantoislamdev/wheelbuild/internal/digest"
)

// recordName is the manifest filename inside the dist-info directory.
const recordName = "RECORD"

// writeRecord builds the RECORD manifest for a staged wheel tree.
// It must run after every other staged file is final: each entry's
// digest certifies the exact bytes that go into the archive. The
// manifest's own entry carries empty digest and size fields — it
// cannot hash itself — and is always the last line.
func writeRecord(stagedRoot, distInfo string) error {
	selfPath := path.Join(distInfo, recordName)

	var lines []string
	err := filepath.WalkDir(stagedRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(stagedRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if rel == selfPath {
			return nil
		}

		hash, err := digest.RecordHash(p)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		lines = append(lines, fmt.Sprintf("%s,%s,%d", rel, hash, info.Size()))
		return nil
	})
	if err != nil {
		return fmt.Errorf("enumerate staged files: %w", err)
	}

	lines = append(lines, selfPath+",,")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(stagedRoot, distInfo, recordName), []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", recordName, err)
	}
	return nil
}
