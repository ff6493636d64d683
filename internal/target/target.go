// Package target defines the fixed matrix of OS/architecture pairs
// wheels are built for, mapping each GoReleaser target to its archive
// format and Python wheel platform tag.
package target

import (
	"fmt"
	"strings"

	"github.com/shantoislamdev/wheelbuild/internal/archive"
)

// Target is one supported build target. The per-platform differences
// are pure data; the pipeline never branches on OS or architecture
// beyond what these fields carry.
type Target struct {
	// OS and Arch are GOOS/GOARCH values as used in release
	// archive names.
	OS   string
	Arch string

	// Format is the container format of the release archive.
	Format archive.Format

	// WheelTag is the platform tag embedded in the wheel filename
	// and the dist-info WHEEL file.
	WheelTag string
}

// Label returns the "os/arch" form used in progress output and errors.
func (t Target) Label() string {
	return t.OS + "/" + t.Arch
}

// Pair returns the "os-arch" form accepted by the --platforms flag.
func (t Target) Pair() string {
	return t.OS + "-" + t.Arch
}

// registry is the ordered list of supported targets. Builds iterate
// it in this order.
var registry = []Target{
	{
		OS:       "linux",
		Arch:     "amd64",
		Format:   archive.TarGz,
		WheelTag: "manylinux_2_17_x86_64.manylinux2014_x86_64",
	},
	{
		OS:       "linux",
		Arch:     "arm64",
		Format:   archive.TarGz,
		WheelTag: "manylinux_2_17_aarch64.manylinux2014_aarch64",
	},
	{
		OS:       "darwin",
		Arch:     "amd64",
		Format:   archive.TarGz,
		WheelTag: "macosx_10_12_x86_64",
	},
	{
		OS:       "darwin",
		Arch:     "arm64",
		Format:   archive.TarGz,
		WheelTag: "macosx_11_0_arm64",
	},
	{
		OS:       "windows",
		Arch:     "amd64",
		Format:   archive.Zip,
		WheelTag: "win_amd64",
	},
}

// All returns the full target matrix in build order.
func All() []Target {
	out := make([]Target, len(registry))
	copy(out, registry)
	return out
}

// Filter returns the targets matching the requested "os-arch" pairs,
// preserving registry order. A nil or empty request returns every
// target. A request matching nothing is an error: it would silently
// build no wheels.
func Filter(targets []Target, pairs []string) ([]Target, error) {
	if len(pairs) == 0 {
		return targets, nil
	}

	requested := make(map[string]bool, len(pairs))
	for _, p := range pairs {
		requested[strings.TrimSpace(p)] = true
	}

	var out []Target
	for _, t := range targets {
		if requested[t.Pair()] {
			out = append(out, t)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching platforms for %s", strings.Join(pairs, ", "))
	}
	return out, nil
}
