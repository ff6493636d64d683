package archive

import (
	"archive/tar"
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// archiveEntry is one member to place in a synthetic test archive.
// A slice preserves insertion order, which the duplicate-member
// tie-break tests depend on.
type archiveEntry struct {
	name    string
	content string
}

func createTarGz(t *testing.T, entries []archiveEntry) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "test.tar.gz")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer func() { _ = f.Close() }()

	gz := gzip.NewWriter(f)
	defer func() { _ = gz.Close() }()

	tw := tar.NewWriter(gz)
	defer func() { _ = tw.Close() }()

	for _, e := range entries {
		header := &tar.Header{
			Name: e.name,
			Mode: 0644,
			Size: int64(len(e.content)),
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write header %s: %v", e.name, err)
		}
		if _, err := tw.Write([]byte(e.content)); err != nil {
			t.Fatalf("write content %s: %v", e.name, err)
		}
	}
	return archivePath
}

func createZip(t *testing.T, entries []archiveEntry) string {
	t.Helper()

	archivePath := filepath.Join(t.TempDir(), "test.zip")
	f, err := os.Create(archivePath)
	if err != nil {
		t.Fatalf("create archive: %v", err)
	}
	defer func() { _ = f.Close() }()

	zw := zip.NewWriter(f)
	defer func() { _ = zw.Close() }()

	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("create member %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.content)); err != nil {
			t.Fatalf("write member %s: %v", e.name, err)
		}
	}
	return archivePath
}

func TestFormatExt(t *testing.T) {
	if got := TarGz.Ext(); got != "tar.gz" {
		t.Errorf("TarGz.Ext() = %q", got)
	}
	if got := Zip.Ext(); got != "zip" {
		t.Errorf("Zip.Ext() = %q", got)
	}
}

func TestExtractMember(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		entries     []archiveEntry
		member      string
		wantContent string
	}{
		{
			name:   "targz_top_level",
			format: TarGz,
			entries: []archiveEntry{
				{"tool", "binary-content"},
			},
			member:      "tool",
			wantContent: "binary-content",
		},
		{
			name:   "targz_nested",
			format: TarGz,
			entries: []archiveEntry{
				{"README.md", "docs"},
				{"dist/bin/tool", "nested-binary"},
			},
			member:      "tool",
			wantContent: "nested-binary",
		},
		{
			name:   "zip_top_level",
			format: Zip,
			entries: []archiveEntry{
				{"tool.exe", "pe-content"},
			},
			member:      "tool.exe",
			wantContent: "pe-content",
		},
		{
			name:   "zip_nested",
			format: Zip,
			entries: []archiveEntry{
				{"LICENSE", "license text"},
				{"bin/tool.exe", "nested-pe"},
			},
			member:      "tool.exe",
			wantContent: "nested-pe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var archivePath string
			if tt.format == TarGz {
				archivePath = createTarGz(t, tt.entries)
			} else {
				archivePath = createZip(t, tt.entries)
			}

			destDir := t.TempDir()
			got, err := ExtractMember(archivePath, tt.format, tt.member, destDir)
			if err != nil {
				t.Fatalf("ExtractMember failed: %v", err)
			}
			if got != filepath.Join(destDir, tt.member) {
				t.Errorf("returned path = %s", got)
			}

			content, err := os.ReadFile(got)
			if err != nil {
				t.Fatal(err)
			}
			if string(content) != tt.wantContent {
				t.Errorf("content = %q, want %q", content, tt.wantContent)
			}
		})
	}
}

func TestExtractMemberSetsExecuteBits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on windows")
	}

	archivePath := createTarGz(t, []archiveEntry{{"tool", "x"}})
	got, err := ExtractMember(archivePath, TarGz, "tool", t.TempDir())
	if err != nil {
		t.Fatalf("ExtractMember failed: %v", err)
	}

	info, err := os.Stat(got)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0111 != 0111 {
		t.Errorf("mode = %v, want owner/group/other execute bits", info.Mode())
	}
}

func TestExtractMemberDuplicateFirstWins(t *testing.T) {
	// Two members share the base filename; the archive's native
	// enumeration order decides, not alphabetical order of the full
	// paths. "other/tool" is written first and must win even though
	// "bin/tool" sorts before it.
	entries := []archiveEntry{
		{"other/tool", "first"},
		{"bin/tool", "second"},
	}

	for _, format := range []Format{TarGz, Zip} {
		t.Run(format.String(), func(t *testing.T) {
			var archivePath string
			if format == TarGz {
				archivePath = createTarGz(t, entries)
			} else {
				archivePath = createZip(t, entries)
			}

			got, err := ExtractMember(archivePath, format, "tool", t.TempDir())
			if err != nil {
				t.Fatalf("ExtractMember failed: %v", err)
			}
			content, err := os.ReadFile(got)
			if err != nil {
				t.Fatal(err)
			}
			if string(content) != "first" {
				t.Errorf("content = %q, want first-enumerated member", content)
			}
		})
	}
}

func TestExtractMemberNotFound(t *testing.T) {
	for _, format := range []Format{TarGz, Zip} {
		t.Run(format.String(), func(t *testing.T) {
			entries := []archiveEntry{{"README.md", "docs"}}
			var archivePath string
			if format == TarGz {
				archivePath = createTarGz(t, entries)
			} else {
				archivePath = createZip(t, entries)
			}

			_, err := ExtractMember(archivePath, format, "tool", t.TempDir())
			if err == nil {
				t.Fatal("expected error")
			}

			var notFound *MemberNotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("error type = %T, want *MemberNotFoundError", err)
			}
			if notFound.Member != "tool" || notFound.Archive != archivePath {
				t.Errorf("error fields = %+v", notFound)
			}
			if !strings.Contains(err.Error(), "tool") || !strings.Contains(err.Error(), archivePath) {
				t.Errorf("error message %q should name member and archive", err)
			}
		})
	}
}

func TestExtractMemberMissingArchive(t *testing.T) {
	_, err := ExtractMember(filepath.Join(t.TempDir(), "absent.tar.gz"), TarGz, "tool", t.TempDir())
	if err == nil {
		t.Fatal("expected error for missing archive")
	}
}
