// Package project describes the on-disk layout of the workspace the
// orchestrator builds: where declared headers and sources live, where
// tests are discovered, and where artifacts are written.
package project

import "path/filepath"

// Layout holds the workspace directories. All non-root fields are
// relative to Root.
type Layout struct {
	Root       string
	IncludeDir string
	SourceDir  string
	TestsDir   string
	BuildDir   string
}

// DefaultLayout returns the conventional directory names rooted at root.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:       root,
		IncludeDir: "include",
		SourceDir:  "src",
		TestsDir:   "tests",
		BuildDir:   "build",
	}
}

// IncludePath returns the absolute header root passed to the compiler.
func (l Layout) IncludePath() string {
	return filepath.Join(l.Root, l.IncludeDir)
}

// SourcePath resolves a module-declared source path to a full path.
func (l Layout) SourcePath(rel string) string {
	return filepath.Join(l.Root, l.SourceDir, rel)
}

// TestPath resolves a test file name to a full path under the tests dir.
func (l Layout) TestPath(rel string) string {
	return filepath.Join(l.Root, l.TestsDir, rel)
}

// BuildPath resolves an artifact file name to a full path under the
// build dir.
func (l Layout) BuildPath(name string) string {
	return filepath.Join(l.Root, l.BuildDir, name)
}

// Project is the workspace-level configuration loaded from the `library`
// manifest block: the library's name plus layout and the module presets
// the CLI exposes.
type Project struct {
	// Name is the base name of the produced archive (lib<Name>.a or
	// <Name>.lib depending on toolchain).
	Name string

	Layout Layout

	// MinimalModules is the request set behind the --minimal preset.
	// The mandatory module is always added on top during resolution.
	MinimalModules []string

	// TestModule names the module providing the in-tree test harness.
	// When set, it is added to the resolved set before tests are
	// compiled. Empty means no augmentation.
	TestModule string
}
