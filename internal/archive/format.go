// Package archive extracts single members from the compressed release
// archives GoReleaser publishes: gzipped tarballs for Unix targets and
// zip files for Windows.
package archive

import "fmt"

// Format identifies the container format of a release archive.
// The set is closed; adding a format means adding a constant and an
// extraction branch, not touching callers.
type Format int

const (
	// TarGz is a gzip-compressed tar archive.
	TarGz Format = iota
	// Zip is a zip archive.
	Zip
)

// Ext returns the filename extension used in release archive names.
func (f Format) Ext() string {
	switch f {
	case TarGz:
		return "tar.gz"
	case Zip:
		return "zip"
	default:
		return fmt.Sprintf("unknown(%d)", int(f))
	}
}

// String returns the human-readable format name.
func (f Format) String() string {
	return f.Ext()
}
