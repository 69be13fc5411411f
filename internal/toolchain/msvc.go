package toolchain

// msvcProfile covers the cl driver. Semantics match the POSIX family;
// only the flag spelling and artifact file extensions differ.
type msvcProfile struct{}

func (p *msvcProfile) ID() string      { return "cl" }
func (p *msvcProfile) Command() string { return "cl" }

func (p *msvcProfile) BaseFlags(v Variant) []string {
	flags := []string{"/std:c++17", "/W4"}
	switch v {
	case Debug:
		flags = append(flags, "/Od", "/Zi", "/MDd")
	case Release:
		flags = append(flags, "/O2", "/MD", "/DNDEBUG")
	}
	return flags
}

func (p *msvcProfile) DefineFlag(name string) string  { return "/D" + name }
func (p *msvcProfile) IncludeFlag(path string) string { return "/I" + path }
func (p *msvcProfile) CompileOnlyFlag() string        { return "/c" }

func (p *msvcProfile) OutputFlags(kind ArtifactKind, path string) []string {
	switch kind {
	case Object:
		return []string{"/Fo" + path}
	case Executable:
		return []string{"/Fe" + path}
	case Archive:
		return []string{"/OUT:" + path}
	}
	return nil
}

func (p *msvcProfile) ObjectFileName(stem string) string     { return stem + ".obj" }
func (p *msvcProfile) ArchiveFileName(base string) string    { return base + ".lib" }
func (p *msvcProfile) ExecutableFileName(stem string) string { return stem + ".exe" }

func (p *msvcProfile) ArchiverCommand(archive string, objects []string) []string {
	cmd := []string{"lib", "/OUT:" + archive}
	return append(cmd, objects...)
}

// profiles maps compiler ids to their singleton Profile instances.
var profiles = map[string]Profile{}

// orderedProfiles keeps a stable listing order for error messages.
var orderedProfiles []Profile

func register(p Profile) {
	profiles[p.ID()] = p
	orderedProfiles = append(orderedProfiles, p)
}

func init() {
	register(newPosixProfile("g++"))
	register(newPosixProfile("clang++"))
	register(&msvcProfile{})
}
