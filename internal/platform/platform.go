// Package platform reports the host platform a build runs on. The
// target matrix never depends on the host — every wheel is
// cross-packaged — so this is context for the run header, not an
// input to the pipeline.
package platform

import (
	"context"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// Info describes the build host.
type Info struct {
	OS   string // "linux", "darwin", "windows"
	Arch string // GOARCH value

	// Platform and Version carry distribution details on Linux
	// ("ubuntu", "22.04") and OS details elsewhere when gopsutil
	// can provide them; empty when detection fails.
	Platform string
	Version  string
}

// Detect returns host platform information. Distribution detection is
// best-effort: a failure falls back to OS and architecture alone
// rather than failing the run.
func Detect(ctx context.Context) *Info {
	info := &Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	platform, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return info
	}
	info.Platform = platform
	info.Version = version
	return info
}

// String renders "os/arch" with distribution details when known,
// e.g. "linux/amd64 (ubuntu 22.04)".
func (i *Info) String() string {
	s := i.OS + "/" + i.Arch
	switch {
	case i.Platform != "" && i.Version != "":
		s += " (" + i.Platform + " " + i.Version + ")"
	case i.Platform != "":
		s += " (" + i.Platform + ")"
	}
	return s
}
