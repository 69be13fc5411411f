package toolchain

import "strings"

// posixProfile covers the GCC/Clang driver family. The two differ only in
// the executable name; every flag is spelled identically.
type posixProfile struct {
	id    string
	flags []string
}

func (p *posixProfile) ID() string      { return p.id }
func (p *posixProfile) Command() string { return p.id }

func (p *posixProfile) BaseFlags(v Variant) []string {
	flags := append([]string{}, p.flags...)
	switch v {
	case Debug:
		flags = append(flags, "-g", "-O0")
	case Release:
		flags = append(flags, "-O2", "-DNDEBUG")
	}
	return flags
}

func (p *posixProfile) DefineFlag(name string) string  { return "-D" + name }
func (p *posixProfile) IncludeFlag(path string) string { return "-I" + path }
func (p *posixProfile) CompileOnlyFlag() string        { return "-c" }

func (p *posixProfile) OutputFlags(kind ArtifactKind, path string) []string {
	// -o covers objects and executables alike; archives are produced by
	// the archiver, not the compiler driver.
	_ = kind
	return []string{"-o", path}
}

func (p *posixProfile) ObjectFileName(stem string) string     { return stem + ".o" }
func (p *posixProfile) ArchiveFileName(base string) string    { return "lib" + base + ".a" }
func (p *posixProfile) ExecutableFileName(stem string) string { return stem }

func (p *posixProfile) ArchiverCommand(archive string, objects []string) []string {
	cmd := []string{"ar", "rcs", archive}
	return append(cmd, objects...)
}

var posixBaseFlags = []string{"-std=c++17", "-Wall", "-Wextra", "-Wpedantic"}

func newPosixProfile(id string) *posixProfile {
	return &posixProfile{id: id, flags: posixBaseFlags}
}

func supportedIDs() string {
	ids := make([]string, 0, len(profiles))
	for _, p := range orderedProfiles {
		ids = append(ids, p.ID())
	}
	return strings.Join(ids, ", ")
}
