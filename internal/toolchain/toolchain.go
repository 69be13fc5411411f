// Package toolchain abstracts the flag-syntax differences between the
// supported compiler families.
//
// Two families exist: POSIX-style drivers (g++, clang++) and the vendor
// cl driver. They differ only in how defines, include paths and output
// locations are spelled on the command line; the build pipeline and the
// test orchestrator drive both through the same Profile contract and
// never branch on a compiler id themselves.
package toolchain

import "fmt"

// Variant selects the optimization/symbol flag set of a build.
type Variant string

const (
	Debug   Variant = "debug"
	Release Variant = "release"
)

// ParseVariant validates a user-supplied build variant string.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case Debug, Release:
		return Variant(s), nil
	}
	return "", fmt.Errorf("invalid build variant %q: must be %q or %q", s, Debug, Release)
}

// ArtifactKind names the kind of file a compiler or archiver invocation
// produces, which determines how the output flag is spelled.
type ArtifactKind int

const (
	Object ArtifactKind = iota
	Archive
	Executable
)

// Profile is the flag/syntax mapping for one toolchain. Implementations
// are stateless; the same Profile value is shared by every invocation of
// a build.
type Profile interface {
	// ID returns the identifier the profile was selected by (e.g. "g++").
	ID() string

	// Command returns the compiler executable to invoke.
	Command() string

	// BaseFlags returns the always-on warning/standard flags plus the
	// per-variant optimization and symbol flags.
	BaseFlags(v Variant) []string

	// DefineFlag formats a preprocessor define token.
	DefineFlag(name string) string

	// IncludeFlag formats an include-path flag.
	IncludeFlag(path string) string

	// CompileOnlyFlag returns the compile-without-linking flag.
	CompileOnlyFlag() string

	// OutputFlags formats the output-location flags for the given kind.
	OutputFlags(kind ArtifactKind, path string) []string

	// ObjectFileName returns the object file name for a source stem.
	ObjectFileName(stem string) string

	// ArchiveFileName returns the static library file name for a base name.
	ArchiveFileName(base string) string

	// ExecutableFileName returns the executable file name for a stem.
	ExecutableFileName(stem string) string

	// ArchiverCommand returns the full archiver command line (program
	// first) bundling the given objects into archive.
	ArchiverCommand(archive string, objects []string) []string
}

// UnknownCompilerError reports a compiler id with no registered profile.
type UnknownCompilerError struct {
	ID string
}

func (e *UnknownCompilerError) Error() string {
	return fmt.Sprintf("unknown compiler %q (supported: %s)", e.ID, supportedIDs())
}

// ForID returns the profile registered for the given compiler id.
func ForID(id string) (Profile, error) {
	p, ok := profiles[id]
	if !ok {
		return nil, &UnknownCompilerError{ID: id}
	}
	return p, nil
}
