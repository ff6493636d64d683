// Package build orchestrates the wheel pipeline: it resolves the
// target matrix, drives acquisition and assembly per target in
// registry order, and owns the process-scoped scratch directory that
// all intermediate state lives under.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shantoislamdev/wheelbuild/internal/acquire"
	"github.com/shantoislamdev/wheelbuild/internal/config"
	"github.com/shantoislamdev/wheelbuild/internal/target"
	"github.com/shantoislamdev/wheelbuild/internal/wheel"
)

// Options configures one run.
type Options struct {
	// Version is the release version to package. Required.
	Version string

	// DryRun computes names and sizes without producing wheels.
	DryRun bool

	// BinariesDir switches acquisition to local mode when non-empty.
	BinariesDir string

	// OutputDir receives finished wheels.
	OutputDir string

	// Platforms filters the target matrix by "os-arch" pairs;
	// empty builds everything.
	Platforms []string

	// SkipChecksums disables release checksum verification in
	// remote mode.
	SkipChecksums bool

	// BaseURL overrides the release host (tests only).
	BaseURL string
}

// Runner executes builds for one project.
type Runner struct {
	project config.Project
	log     config.Logger
}

// NewRunner creates a Runner.
func NewRunner(project config.Project, log config.Logger) *Runner {
	if log == nil {
		log = config.NopLogger()
	}
	return &Runner{project: project, log: log}
}

// Run builds a wheel for every selected target, sequentially and
// fail-fast: the first target that fails aborts the run. On success
// it returns the produced wheel paths in build order (empty for a
// dry run).
func (r *Runner) Run(ctx context.Context, opts Options) ([]string, error) {
	if opts.Version == "" {
		return nil, fmt.Errorf("version is required")
	}

	targets, err := target.Filter(target.All(), opts.Platforms)
	if err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp("", "wheelbuild-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	acquirer := acquire.New(acquire.Options{
		Project:       r.project,
		Logger:        r.log,
		BaseURL:       opts.BaseURL,
		SkipChecksums: opts.SkipChecksums,
	})
	assembler := wheel.NewAssembler(r.project, r.log)

	r.log.Infof("building %s v%s wheels (%d targets)", r.project.Name, opts.Version, len(targets))

	var built []string
	for _, t := range targets {
		r.log.Infof("%s -> %s", t.Label(), t.WheelTag)

		wheelPath, err := r.buildTarget(ctx, t, opts, scratch, acquirer, assembler)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", t.Label(), err)
		}
		if !opts.DryRun {
			built = append(built, wheelPath)
		}
	}

	r.summarize(opts, built)
	return built, nil
}

// buildTarget acquires the binary for one target and assembles its
// wheel. Each target works in a disjoint subdirectory of the scratch
// tree.
func (r *Runner) buildTarget(ctx context.Context, t target.Target, opts Options, scratch string,
	acquirer *acquire.Acquirer, assembler *wheel.Assembler) (string, error) {

	targetScratch := filepath.Join(scratch, t.OS+"_"+t.Arch)
	if err := os.MkdirAll(targetScratch, 0755); err != nil {
		return "", fmt.Errorf("create target scratch dir: %w", err)
	}

	binaryName := r.project.BinaryName(t.OS)

	var binaryPath string
	if opts.DryRun {
		// A synthetic placeholder stands in for the real binary so
		// naming and staging logic still runs end to end.
		binaryPath = filepath.Join(targetScratch, binaryName)
		if err := os.WriteFile(binaryPath, make([]byte, 100), 0755); err != nil {
			return "", fmt.Errorf("write placeholder binary: %w", err)
		}
	} else {
		var err error
		binaryPath, err = acquirer.Acquire(ctx, t, opts.Version, opts.BinariesDir, targetScratch)
		if err != nil {
			return "", err
		}
	}

	return assembler.Assemble(wheel.Options{
		Version:     opts.Version,
		PlatformTag: t.WheelTag,
		BinaryPath:  binaryPath,
		BinaryName:  binaryName,
		OutputDir:   opts.OutputDir,
		ScratchDir:  targetScratch,
		DryRun:      opts.DryRun,
	})
}

func (r *Runner) summarize(opts Options, built []string) {
	if opts.DryRun {
		r.log.Infof("dry run complete, no files were created")
		return
	}
	r.log.Infof("built %d wheels:", len(built))
	for _, path := range built {
		r.log.Infof("  %s", path)
	}
	r.log.Infof("upload with: twine upload %s", filepath.Join(opts.OutputDir, "*.whl"))
}
