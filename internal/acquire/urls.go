package acquire

import (
	"fmt"

	"github.com/shantoislamdev/wheelbuild/internal/target"
)

// archiveFileName returns the GoReleaser archive name for a target:
// <name>_<version>_<os>_<arch>.<ext>.
func archiveFileName(name, version string, t target.Target) string {
	return fmt.Sprintf("%s_%s_%s_%s.%s", name, version, t.OS, t.Arch, t.Format.Ext())
}

// checksumFileName returns the GoReleaser checksums filename for a
// release: <name>_<version>_checksums.txt.
func checksumFileName(name, version string) string {
	return fmt.Sprintf("%s_%s_checksums.txt", name, version)
}

// releaseURL returns the download URL for one release asset.
func (a *Acquirer) releaseURL(version, filename string) string {
	return fmt.Sprintf("%s/%s/releases/download/v%s/%s", a.baseURL, a.project.Repo, version, filename)
}
