package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	project := Default()

	if project.Name != "kothaset" {
		t.Errorf("Name = %q, want %q", project.Name, "kothaset")
	}
	if project.Repo != "shantoislamdev/kothaset" {
		t.Errorf("Repo = %q, want %q", project.Repo, "shantoislamdev/kothaset")
	}
	if len(project.Classifiers) == 0 {
		t.Error("expected default classifiers")
	}
	if err := project.Validate(); err != nil {
		t.Errorf("default project failed validation: %v", err)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	project, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if project.Name != Default().Name {
		t.Errorf("Name = %q, want default", project.Name)
	}
}

func TestLoadOverrides(t *testing.T) {
	content := `
name: mytool
repo: example/mytool
summary: Example tool
license: MIT
classifiers:
  - "Environment :: Console"
`
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	project, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if project.Name != "mytool" {
		t.Errorf("Name = %q, want %q", project.Name, "mytool")
	}
	if project.Command != "mytool" {
		t.Errorf("Command = %q, want %q (follows renamed package)", project.Command, "mytool")
	}
	if project.Repo != "example/mytool" {
		t.Errorf("Repo = %q, want %q", project.Repo, "example/mytool")
	}
	if project.License != "MIT" {
		t.Errorf("License = %q, want %q", project.License, "MIT")
	}
	if len(project.Classifiers) != 1 {
		t.Errorf("Classifiers = %v, want single override entry", project.Classifiers)
	}

	// Fields not present in the file keep their defaults.
	if project.Author != Default().Author {
		t.Errorf("Author = %q, want default", project.Author)
	}
	if project.EntryModule != "_main" {
		t.Errorf("EntryModule = %q, want %q", project.EntryModule, "_main")
	}
}

func TestLoadExplicitCommandWins(t *testing.T) {
	content := "name: mytool\nrepo: example/mytool\ncommand: mt\n"
	path := filepath.Join(t.TempDir(), "project.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	project, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if project.Command != "mt" {
		t.Errorf("Command = %q, want %q", project.Command, "mt")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Project)
		wantErr string
	}{
		{
			name:    "empty_name",
			mutate:  func(p *Project) { p.Name = "" },
			wantErr: "package name",
		},
		{
			name:    "name_with_slash",
			mutate:  func(p *Project) { p.Name = "a/b" },
			wantErr: "invalid package name",
		},
		{
			name:    "empty_repo",
			mutate:  func(p *Project) { p.Repo = "" },
			wantErr: "repo is required",
		},
		{
			name:    "repo_without_owner",
			mutate:  func(p *Project) { p.Repo = "kothaset" },
			wantErr: "owner/name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := Default()
			tt.mutate(&project)
			err := project.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestBinaryName(t *testing.T) {
	project := Default()
	if got := project.BinaryName("linux"); got != "kothaset" {
		t.Errorf("BinaryName(linux) = %q", got)
	}
	if got := project.BinaryName("windows"); got != "kothaset.exe" {
		t.Errorf("BinaryName(windows) = %q", got)
	}
}

func TestHomePage(t *testing.T) {
	project := Default()
	want := "https://github.com/shantoislamdev/kothaset"
	if got := project.HomePage(); got != want {
		t.Errorf("HomePage() = %q, want %q", got, want)
	}
}
