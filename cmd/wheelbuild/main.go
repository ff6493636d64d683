// Command wheelbuild assembles platform-specific Python wheel
// packages around prebuilt release binaries.
//
// For every supported OS/architecture pair it obtains the native
// binary — downloaded from a GitHub release or copied from a local
// GoReleaser dist directory — and packages it with a thin Python
// launcher into an installable .whl.
//
// Usage:
//
//	wheelbuild --version 1.2.3
//	wheelbuild --version 1.2.3 --dry-run
//	wheelbuild --version 1.2.3 --binaries-dir ./dist --platforms linux-amd64,darwin-arm64
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/pflag"

	"github.com/shantoislamdev/wheelbuild/internal/build"
	"github.com/shantoislamdev/wheelbuild/internal/config"
	"github.com/shantoislamdev/wheelbuild/internal/platform"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("wheelbuild", pflag.ContinueOnError)
	version := flags.String("version", "", "release version to package (required)")
	dryRun := flags.Bool("dry-run", false, "show what would be built without creating wheels")
	binariesDir := flags.String("binaries-dir", "", "local directory with prebuilt binaries (GoReleaser dist/); skips downloading")
	outputDir := flags.String("output-dir", "dist", "directory for produced wheels")
	platforms := flags.StringSlice("platforms", nil, "build only these os-arch pairs (e.g. linux-amd64,darwin-arm64)")
	configPath := flags.String("config", "", "YAML project file overriding the built-in package identity")
	skipChecksums := flags.Bool("skip-checksums", false, "do not verify downloads against the release checksums file")
	quiet := flags.Bool("quiet", false, "suppress progress output")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args())
	}
	if *version == "" {
		return fmt.Errorf("--version is required")
	}

	project, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	log := config.NewLogger(os.Stdout)
	if *quiet {
		log = config.NopLogger()
	}

	// Interrupting the process aborts the whole run; the scratch
	// tree is cleaned up on the way out.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Infof("host: %s", platform.Detect(ctx))

	runner := build.NewRunner(project, log)
	_, err = runner.Run(ctx, build.Options{
		Version:       *version,
		DryRun:        *dryRun,
		BinariesDir:   *binariesDir,
		OutputDir:     *outputDir,
		Platforms:     *platforms,
		SkipChecksums: *skipChecksums,
	})
	return err
}
