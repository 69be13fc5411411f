// Package pipeline compiles the sources of a resolved module set into
// object files and archives them into a static library.
//
// Every run is a full rebuild: no staleness checks are made and artifacts
// at a given output path are overwritten unconditionally. Sources compile
// strictly sequentially; the first compiler failure aborts the whole
// operation before the archiver ever runs, so a failed build never
// produces a fresh archive.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/libforge/internal/ctxlog"
	"github.com/vk/libforge/internal/fsutil"
	"github.com/vk/libforge/internal/invoke"
	"github.com/vk/libforge/internal/project"
	"github.com/vk/libforge/internal/registry"
	"github.com/vk/libforge/internal/resolve"
	"github.com/vk/libforge/internal/toolchain"
)

// Artifact is the outcome of one CompileAndArchive run.
type Artifact struct {
	// Objects are the object file paths produced, in compile order.
	Objects []string
	// Archive is the path of the produced static library. Empty when the
	// resolved set declared no sources.
	Archive string
	// Success reports whether the whole operation completed.
	Success bool
	// MissingSources lists declared source paths that were absent on
	// disk and therefore skipped (tolerated for partially implemented
	// modules).
	MissingSources []string
}

// sourceFile pairs a declared source path with the module declaring it.
type sourceFile struct {
	Module string
	Rel    string
	Abs    string
}

// Pipeline drives the compiler and archiver for one workspace.
type Pipeline struct {
	proj    *project.Project
	reg     *registry.Registry
	invoker invoke.Invoker
}

// New creates a Pipeline for the given workspace and module catalog.
func New(proj *project.Project, reg *registry.Registry, invoker invoke.Invoker) *Pipeline {
	return &Pipeline{proj: proj, reg: reg, invoker: invoker}
}

// CompileAndArchive compiles every source declared by the resolved set
// and bundles the objects into the library archive. A set whose modules
// declare no sources (header-only selection) succeeds trivially without
// invoking any external process.
func (p *Pipeline) CompileAndArchive(ctx context.Context, set *resolve.Set, prof toolchain.Profile, variant toolchain.Variant) (*Artifact, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Building library.", "modules", strings.Join(set.Names(), ", "), "compiler", prof.ID(), "variant", string(variant))

	sources, missing := p.collectSources(ctx, set)
	artifact := &Artifact{MissingSources: missing}

	if len(sources) == 0 {
		logger.Info("No source files to compile; header-only selection builds trivially.")
		artifact.Success = true
		return artifact, nil
	}

	if err := os.MkdirAll(p.proj.Layout.BuildPath(""), 0o755); err != nil {
		return artifact, fmt.Errorf("failed to create build directory: %w", err)
	}

	baseArgs := p.commonArgs(set, prof, variant)

	for _, src := range sources {
		object := p.proj.Layout.BuildPath(prof.ObjectFileName(objectStem(src.Rel)))

		args := append([]string{}, baseArgs...)
		args = append(args, prof.CompileOnlyFlag(), src.Abs)
		args = append(args, prof.OutputFlags(toolchain.Object, object)...)

		logger.Info("Compiling source.", "module", src.Module, "source", src.Rel)
		res, err := p.invoker.Run(ctx, prof.Command(), args)
		if err != nil {
			return artifact, &CompileError{Module: src.Module, Source: src.Rel, Command: commandLine(prof.Command(), args), Cause: err}
		}
		if res.ExitCode != 0 {
			return artifact, &CompileError{
				Module:      src.Module,
				Source:      src.Rel,
				Command:     commandLine(prof.Command(), args),
				ExitCode:    res.ExitCode,
				Diagnostics: res.Output(),
			}
		}
		artifact.Objects = append(artifact.Objects, object)
	}

	archive := p.proj.Layout.BuildPath(prof.ArchiveFileName(p.proj.Name))
	cmd := prof.ArchiverCommand(archive, artifact.Objects)

	logger.Info("Creating archive.", "archive", archive, "objects", len(artifact.Objects))
	res, err := p.invoker.Run(ctx, cmd[0], cmd[1:])
	if err != nil {
		return artifact, &ArchiveError{Archive: archive, Command: cmd, Cause: err}
	}
	if res.ExitCode != 0 {
		return artifact, &ArchiveError{Archive: archive, Command: cmd, ExitCode: res.ExitCode, Diagnostics: res.Output()}
	}

	artifact.Archive = archive
	artifact.Success = true
	logger.Info("Library created.", "archive", archive)
	return artifact, nil
}

// commonArgs builds the flag prefix shared by every compile of the run:
// variant base flags, the union of the set's feature defines and the
// shared header root.
func (p *Pipeline) commonArgs(set *resolve.Set, prof toolchain.Profile, variant toolchain.Variant) []string {
	args := prof.BaseFlags(variant)
	for _, define := range CollectDefines(set) {
		args = append(args, prof.DefineFlag(define))
	}
	return append(args, prof.IncludeFlag(p.proj.Layout.IncludePath()))
}

// collectSources gathers the union of the set's declared sources in
// registry order, de-duplicated. Declared files absent on disk are
// tolerated with a warning so partially implemented modules still build.
func (p *Pipeline) collectSources(ctx context.Context, set *resolve.Set) ([]sourceFile, []string) {
	logger := ctxlog.FromContext(ctx)

	var sources []sourceFile
	var missing []string
	seen := make(map[string]struct{})

	for _, mod := range set.Modules() {
		for _, rel := range mod.Sources {
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}

			abs := p.proj.Layout.SourcePath(rel)
			if !fsutil.FileExists(abs) {
				logger.Warn("Declared source file not found, skipping.", "module", mod.Name, "path", abs)
				missing = append(missing, rel)
				continue
			}
			sources = append(sources, sourceFile{Module: mod.Name, Rel: rel, Abs: abs})
		}
	}
	return sources, missing
}

// CollectDefines gathers the union of the set's feature defines in
// registry order, de-duplicated. Shared with the test orchestrator so
// tests compile against exactly the defines the library was built with.
func CollectDefines(set *resolve.Set) []string {
	var defines []string
	seen := make(map[string]struct{})
	for _, mod := range set.Modules() {
		for _, define := range mod.Defines {
			if _, ok := seen[define]; ok {
				continue
			}
			seen[define] = struct{}{}
			defines = append(defines, define)
		}
	}
	return defines
}

// Sources exposes the resolved source union for the test orchestrator,
// which compiles each test together with the full set of module sources.
func (p *Pipeline) Sources(ctx context.Context, set *resolve.Set) []string {
	sources, _ := p.collectSources(ctx, set)
	paths := make([]string, len(sources))
	for i, src := range sources {
		paths[i] = src.Abs
	}
	return paths
}

// objectStem flattens a relative source path into a unique object file
// stem: "modules/string_utils.cpp" becomes "modules_string_utils".
func objectStem(rel string) string {
	flat := strings.ReplaceAll(filepath.ToSlash(rel), "/", "_")
	return strings.TrimSuffix(flat, filepath.Ext(flat))
}

func commandLine(name string, args []string) []string {
	return append([]string{name}, args...)
}
