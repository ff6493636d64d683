// Package config holds the project identity and wheel metadata used to
// name, fetch, and describe the packages this tool produces.
//
// The compiled-in defaults describe kothaset. A YAML project file can
// override any field; fields left empty in the file keep their default.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Project describes the package being wheeled: where its release
// archives live, what the installable package is called, and the
// metadata written into the wheel's dist-info directory.
type Project struct {
	// Name is the Python package name and the base name of the
	// release archives (e.g. "kothaset").
	Name string `yaml:"name"`

	// Repo is the GitHub "owner/repo" the release archives are
	// downloaded from.
	Repo string `yaml:"repo"`

	Summary        string   `yaml:"summary"`
	Author         string   `yaml:"author"`
	AuthorEmail    string   `yaml:"authorEmail"`
	License        string   `yaml:"license"`
	RequiresPython string   `yaml:"requiresPython"`
	Classifiers    []string `yaml:"classifiers"`

	// Command is the console script name registered in
	// entry_points.txt. Defaults to Name.
	Command string `yaml:"command"`

	// EntryModule and EntryFunction identify the launcher inside the
	// embedded Python source ("<Name>.<EntryModule>:<EntryFunction>").
	EntryModule   string `yaml:"entryModule"`
	EntryFunction string `yaml:"entryFunction"`
}

// Default returns the compiled-in kothaset project identity.
func Default() Project {
	return Project{
		Name:           "kothaset",
		Repo:           "shantoislamdev/kothaset",
		Summary:        "High-quality dataset generation CLI for LLM training",
		Author:         "Shanto Islam",
		AuthorEmail:    "shantoislamdev@gmail.com",
		License:        "Apache-2.0",
		RequiresPython: ">=3.8",
		Classifiers: []string{
			"Development Status :: 5 - Production/Stable",
			"Environment :: Console",
			"Intended Audience :: Developers",
			"Intended Audience :: Science/Research",
			"License :: OSI Approved :: Apache Software License",
			"Topic :: Scientific/Engineering :: Artificial Intelligence",
		},
		Command:       "kothaset",
		EntryModule:   "_main",
		EntryFunction: "main",
	}
}

// Load reads a YAML project file and merges it over the defaults.
// An empty path returns the defaults unchanged.
func Load(path string) (Project, error) {
	project := Default()
	if path == "" {
		return project, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Project{}, fmt.Errorf("read project file: %w", err)
	}

	var overrides Project
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Project{}, fmt.Errorf("parse project file %s: %w", path, err)
	}

	project.merge(overrides)
	if err := project.Validate(); err != nil {
		return Project{}, fmt.Errorf("project file %s: %w", path, err)
	}
	return project, nil
}

// merge overlays non-empty fields from other onto p.
func (p *Project) merge(other Project) {
	if other.Name != "" {
		p.Name = other.Name
		// A renamed package renames its console command too, unless
		// the file sets one explicitly below.
		p.Command = other.Name
	}
	if other.Repo != "" {
		p.Repo = other.Repo
	}
	if other.Summary != "" {
		p.Summary = other.Summary
	}
	if other.Author != "" {
		p.Author = other.Author
	}
	if other.AuthorEmail != "" {
		p.AuthorEmail = other.AuthorEmail
	}
	if other.License != "" {
		p.License = other.License
	}
	if other.RequiresPython != "" {
		p.RequiresPython = other.RequiresPython
	}
	if len(other.Classifiers) > 0 {
		p.Classifiers = other.Classifiers
	}
	if other.Command != "" {
		p.Command = other.Command
	}
	if other.EntryModule != "" {
		p.EntryModule = other.EntryModule
	}
	if other.EntryFunction != "" {
		p.EntryFunction = other.EntryFunction
	}
}

// Validate checks the fields every pipeline stage depends on.
func (p Project) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("package name is required")
	}
	if strings.Contains(p.Name, "/") || strings.Contains(p.Name, " ") {
		return fmt.Errorf("invalid package name: %q", p.Name)
	}
	if p.Repo == "" {
		return fmt.Errorf("repo is required")
	}
	if strings.Count(p.Repo, "/") != 1 {
		return fmt.Errorf("repo must be \"owner/name\", got %q", p.Repo)
	}
	return nil
}

// HomePage returns the project home page URL derived from Repo.
func (p Project) HomePage() string {
	return "https://github.com/" + p.Repo
}

// BinaryName returns the release binary filename for an OS.
func (p Project) BinaryName(goos string) string {
	if goos == "windows" {
		return p.Name + ".exe"
	}
	return p.Name
}
