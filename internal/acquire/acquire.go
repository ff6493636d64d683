// Package acquire obtains the native binary for a build target, either
// by downloading and extracting a release archive or by locating a
// prebuilt binary under a local GoReleaser dist directory.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shantoislamdev/wheelbuild/internal/archive"
	"github.com/shantoislamdev/wheelbuild/internal/config"
	"github.com/shantoislamdev/wheelbuild/internal/digest"
	"github.com/shantoislamdev/wheelbuild/internal/target"
)

// DefaultBaseURL is the release host archives are fetched from.
const DefaultBaseURL = "https://github.com"

// AcquisitionError reports a failure to obtain a binary for a target.
type AcquisitionError struct {
	// Target is the "os/arch" label of the failing target.
	Target string
	// Op names the failing operation ("download", "verify", "locate").
	Op string
	// URL is set for remote failures.
	URL string
	// Searched lists every local candidate path tried, for locate
	// failures.
	Searched []string
	Err      error
}

func (e *AcquisitionError) Error() string {
	if len(e.Searched) > 0 {
		return fmt.Sprintf("binary not found for %s, searched:\n  %s",
			e.Target, strings.Join(e.Searched, "\n  "))
	}
	if e.URL != "" {
		return fmt.Sprintf("%s %s for %s: %v", e.Op, e.URL, e.Target, e.Err)
	}
	return fmt.Sprintf("%s for %s: %v", e.Op, e.Target, e.Err)
}

func (e *AcquisitionError) Unwrap() error { return e.Err }

// Options configures an Acquirer.
type Options struct {
	Project config.Project
	Logger  config.Logger

	// BaseURL overrides the release host. Tests point it at a local
	// server; empty means DefaultBaseURL.
	BaseURL string

	// SkipChecksums disables fetching and checking the release
	// checksums file in remote mode.
	SkipChecksums bool
}

// Acquirer resolves binaries for build targets.
type Acquirer struct {
	project       config.Project
	log           config.Logger
	client        *http.Client
	baseURL       string
	skipChecksums bool
}

// New creates an Acquirer. The HTTP client carries no timeout: a build
// is an attended foreground run, and a stalled fetch is aborted by
// interrupting the process.
func New(opts Options) *Acquirer {
	log := opts.Logger
	if log == nil {
		log = config.NopLogger()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Acquirer{
		project:       opts.Project,
		log:           log,
		client:        &http.Client{},
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		skipChecksums: opts.SkipChecksums,
	}
}

// Acquire obtains the binary for a target and returns its path,
// guaranteed readable and executable. When binariesDir is non-empty
// the binary is copied from the local directory; otherwise the release
// archive is downloaded and the binary extracted from it. All scratch
// files land under destDir.
func (a *Acquirer) Acquire(ctx context.Context, t target.Target, version, binariesDir, destDir string) (string, error) {
	if binariesDir != "" {
		return a.locate(t, binariesDir, destDir)
	}
	return a.fetch(ctx, t, version, destDir)
}

// fetch downloads the release archive for a target, optionally checks
// it against the release checksums file, and extracts the binary.
func (a *Acquirer) fetch(ctx context.Context, t target.Target, version, destDir string) (string, error) {
	filename := archiveFileName(a.project.Name, version, t)
	url := a.releaseURL(version, filename)
	archivePath := filepath.Join(destDir, filename)

	a.log.Infof("  downloading %s", url)
	if err := a.downloadTo(ctx, url, archivePath); err != nil {
		return "", &AcquisitionError{Target: t.Label(), Op: "download", URL: url, Err: err}
	}

	if !a.skipChecksums {
		if err := a.verifyArchive(ctx, t, version, archivePath, destDir); err != nil {
			return "", err
		}
	}

	binaryName := a.project.BinaryName(t.OS)
	return archive.ExtractMember(archivePath, t.Format, binaryName, destDir)
}

// verifyArchive fetches the release checksums file and checks the
// archive against it. A missing checksums file (404) is tolerated:
// not every release publishes one.
func (a *Acquirer) verifyArchive(ctx context.Context, t target.Target, version, archivePath, destDir string) error {
	filename := checksumFileName(a.project.Name, version)
	url := a.releaseURL(version, filename)
	checksumPath := filepath.Join(destDir, filename)

	if err := a.downloadTo(ctx, url, checksumPath); err != nil {
		var status *statusError
		if errors.As(err, &status) && status.code == http.StatusNotFound {
			a.log.Warnf("no checksums file published for v%s, skipping verification", version)
			return nil
		}
		return &AcquisitionError{Target: t.Label(), Op: "download checksums", URL: url, Err: err}
	}

	if err := digest.VerifyChecksumFile(archivePath, checksumPath); err != nil {
		return &AcquisitionError{Target: t.Label(), Op: "verify", URL: url, Err: err}
	}
	a.log.Infof("  checksum verified: %s", filepath.Base(archivePath))
	return nil
}
