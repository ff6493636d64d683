package wheel

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// The Python launcher shipped inside every wheel. Embedded at compile
// time so the builder is a single self-contained binary, the same way
// the launcher binary itself travels inside the wheel.
//
//go:embed all:pysrc
var launcherFS embed.FS

// versionFile is the launcher source file carrying the version
// declaration rewritten at build time.
const versionFile = "__init__.py"

var versionLine = regexp.MustCompile(`__version__\s*=\s*"[^"]*".*`)

// stageSource writes the embedded launcher source files into pkgDir
// and stamps the build version into the version declaration.
func stageSource(pkgDir, version string) error {
	entries, err := launcherFS.ReadDir("pysrc")
	if err != nil {
		return fmt.Errorf("read embedded source: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".py") {
			continue
		}
		data, err := launcherFS.ReadFile(path.Join("pysrc", entry.Name()))
		if err != nil {
			return fmt.Errorf("read embedded %s: %w", entry.Name(), err)
		}
		if err := os.WriteFile(filepath.Join(pkgDir, entry.Name()), data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", entry.Name(), err)
		}
	}

	return RewriteVersion(filepath.Join(pkgDir, versionFile), version)
}

// RewriteVersion replaces the __version__ assignment line in a Python
// source file with the build version. Only the matching line changes;
// every other byte passes through untouched.
func RewriteVersion(filePath, version string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read version file: %w", err)
	}
	if !versionLine.Match(data) {
		return fmt.Errorf("no __version__ assignment in %s", filePath)
	}

	replacement := fmt.Sprintf("__version__ = %q", version)
	out := versionLine.ReplaceAllLiteral(data, []byte(replacement))
	if err := os.WriteFile(filePath, out, 0644); err != nil {
		return fmt.Errorf("write version file: %w", err)
	}
	return nil
}
