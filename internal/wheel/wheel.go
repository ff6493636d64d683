// Package wheel stages and serializes platform-specific Python wheel
// archives embedding a precompiled native binary.
//
// Assembly is an explicit ordered pipeline: launcher source, version
// stamp, binary, dist-info metadata, then the RECORD manifest — which
// is structurally last because it certifies the final bytes of every
// other file — and finally the zip serialization. Everything up to the
// finished archive happens in scratch space; the output directory only
// ever receives complete wheels.
package wheel

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/shantoislamdev/wheelbuild/internal/config"
)

// AssemblyError is an unexpected I/O failure while staging or
// serializing a wheel. It is fatal to the build; nothing retries it.
type AssemblyError struct {
	Op  string
	Err error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly: %s: %v", e.Op, e.Err)
}

func (e *AssemblyError) Unwrap() error { return e.Err }

// Options configures one wheel build.
type Options struct {
	// Version is the release version stamped into the launcher
	// source and the wheel filename.
	Version string

	// PlatformTag is the wheel platform tag for the target.
	PlatformTag string

	// BinaryPath is the acquired native binary to embed.
	BinaryPath string

	// BinaryName is the filename the binary takes inside the
	// package (e.g. "kothaset" or "kothaset.exe").
	BinaryName string

	// OutputDir receives the finished wheel.
	OutputDir string

	// ScratchDir hosts the staging tree. Empty uses the system
	// temporary directory.
	ScratchDir string

	// DryRun computes and returns the wheel path without writing
	// anything outside of reporting the binary's size.
	DryRun bool
}

// Assembler builds wheels for one project.
type Assembler struct {
	project config.Project
	log     config.Logger
}

// NewAssembler creates an Assembler.
func NewAssembler(project config.Project, log config.Logger) *Assembler {
	if log == nil {
		log = config.NopLogger()
	}
	return &Assembler{project: project, log: log}
}

// WheelName returns the output filename for a version and platform
// tag: <name>-<version>-py3-none-<tag>.whl.
func (a *Assembler) WheelName(version, platformTag string) string {
	return fmt.Sprintf("%s-%s-%s-%s.whl", a.project.Name, version, abiTag, platformTag)
}

// Assemble builds one wheel and returns its path. The staged tree and
// intermediate archive live under ScratchDir; only the finished wheel
// is moved into OutputDir.
func (a *Assembler) Assemble(opts Options) (string, error) {
	wheelName := a.WheelName(opts.Version, opts.PlatformTag)
	outPath := filepath.Join(opts.OutputDir, wheelName)

	binaryInfo, err := os.Stat(opts.BinaryPath)
	if err != nil {
		return "", &AssemblyError{Op: "stat binary", Err: err}
	}

	if opts.DryRun {
		a.log.Infof("  [dry-run] would create %s (binary: %d bytes)", wheelName, binaryInfo.Size())
		return outPath, nil
	}

	stagedRoot, err := os.MkdirTemp(opts.ScratchDir, "stage-")
	if err != nil {
		return "", &AssemblyError{Op: "create staging dir", Err: err}
	}
	defer os.RemoveAll(stagedRoot)

	// 1. Launcher source, with the version stamped in.
	pkgDir := filepath.Join(stagedRoot, a.project.Name)
	if err := os.Mkdir(pkgDir, 0755); err != nil {
		return "", &AssemblyError{Op: "create package dir", Err: err}
	}
	if err := stageSource(pkgDir, opts.Version); err != nil {
		return "", &AssemblyError{Op: "stage launcher source", Err: err}
	}

	// 2. The native binary, executable.
	if err := stageBinary(opts.BinaryPath, filepath.Join(pkgDir, opts.BinaryName)); err != nil {
		return "", &AssemblyError{Op: "stage binary", Err: err}
	}

	// 3. dist-info metadata.
	distInfo := distInfoName(a.project.Name, opts.Version)
	infoDir := filepath.Join(stagedRoot, distInfo)
	if err := os.Mkdir(infoDir, 0755); err != nil {
		return "", &AssemblyError{Op: "create dist-info dir", Err: err}
	}
	if err := writeDistInfo(infoDir, a.project, opts.Version, opts.PlatformTag); err != nil {
		return "", &AssemblyError{Op: "write dist-info", Err: err}
	}

	// 4. RECORD, strictly after everything above is final.
	if err := writeRecord(stagedRoot, distInfo); err != nil {
		return "", &AssemblyError{Op: "write manifest", Err: err}
	}

	// 5. Serialize in scratch, then move the finished wheel out.
	a.log.Infof("  building %s", wheelName)
	scratchWheel := stagedRoot + ".whl"
	if err := writeZip(stagedRoot, scratchWheel); err != nil {
		return "", &AssemblyError{Op: "write archive", Err: err}
	}
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", &AssemblyError{Op: "create output dir", Err: err}
	}
	if err := moveFile(scratchWheel, outPath); err != nil {
		return "", &AssemblyError{Op: "move archive", Err: err}
	}

	outInfo, err := os.Stat(outPath)
	if err != nil {
		return "", &AssemblyError{Op: "stat archive", Err: err}
	}
	if outInfo.Size() == 0 {
		return "", &AssemblyError{Op: "stat archive", Err: fmt.Errorf("empty archive %s", outPath)}
	}
	return outPath, nil
}

// stageBinary copies the acquired binary into the package directory
// and marks it executable for owner, group, and other.
func stageBinary(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
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

	info, err := os.Stat(dest)
	if err != nil {
		return err
	}
	return os.Chmod(dest, info.Mode()|0111)
}

// moveFile renames src to dest, falling back to copy-and-remove when
// scratch and output live on different filesystems.
func moveFile(src, dest string) error {
	if err := os.Rename(src, dest); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dest)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
