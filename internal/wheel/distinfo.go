package wheel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shantoislamdev/wheelbuild/internal/config"
)

// generator is the tag written into the WHEEL file.
const generator = "wheelbuild"

// abiTag is the python/abi prefix of the wheel compatibility tag. The
// launcher is plain Python 3 and the binary needs no Python ABI, so
// this never varies per target.
const abiTag = "py3-none"

// distInfoName returns the dist-info directory name for a release.
func distInfoName(name, version string) string {
	return fmt.Sprintf("%s-%s.dist-info", name, version)
}

// writeDistInfo writes the METADATA, WHEEL, entry_points.txt, and
// top_level.txt files. RECORD is written separately, last, once the
// rest of the staged tree is final.
func writeDistInfo(dir string, project config.Project, version, platformTag string) error {
	files := map[string]string{
		"METADATA":         metadataContent(project, version),
		"WHEEL":            wheelContent(platformTag),
		"entry_points.txt": entryPointsContent(project),
		"top_level.txt":    project.Name + "\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

func metadataContent(project config.Project, version string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Metadata-Version: 2.1\n")
	fmt.Fprintf(&b, "Name: %s\n", project.Name)
	fmt.Fprintf(&b, "Version: %s\n", version)
	fmt.Fprintf(&b, "Summary: %s\n", project.Summary)
	fmt.Fprintf(&b, "Home-page: %s\n", project.HomePage())
	fmt.Fprintf(&b, "Author: %s\n", project.Author)
	fmt.Fprintf(&b, "Author-email: %s\n", project.AuthorEmail)
	fmt.Fprintf(&b, "License: %s\n", project.License)
	fmt.Fprintf(&b, "Requires-Python: %s\n", project.RequiresPython)
	for _, classifier := range project.Classifiers {
		fmt.Fprintf(&b, "Classifier: %s\n", classifier)
	}
	return b.String()
}

func wheelContent(platformTag string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Wheel-Version: 1.0\n")
	fmt.Fprintf(&b, "Generator: %s\n", generator)
	fmt.Fprintf(&b, "Root-Is-Purelib: false\n")
	fmt.Fprintf(&b, "Tag: %s-%s\n", abiTag, platformTag)
	return b.String()
}

func entryPointsContent(project config.Project) string {
	return fmt.Sprintf("[console_scripts]\n%s = %s.%s:%s\n",
		project.Command, project.Name, project.EntryModule, project.EntryFunction)
}
