// Package manifest loads the workspace's .hcl manifests into the module
// registry and the project configuration.
//
// A workspace declares one `library` block plus any number of `module`
// blocks, spread over as many files as the author likes. Files are read
// in sorted path order and blocks in file order; together that order is
// the registry declaration order every deterministic command line is
// derived from.
package manifest

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/libforge/internal/ctxlog"
	"github.com/vk/libforge/internal/fsutil"
	"github.com/vk/libforge/internal/project"
	"github.com/vk/libforge/internal/registry"
)

// Load parses every manifest under root and returns the project
// configuration together with a validated module registry.
func Load(ctx context.Context, root string) (*project.Project, *registry.Registry, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading workspace manifests.", "root", root)

	files, err := fsutil.FindFilesByExtension(root, ".hcl")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan %s for manifests: %w", root, err)
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no .hcl manifest files found under %s", root)
	}

	parser := hclparse.NewParser()
	reg := registry.New()
	var library *libraryBlock

	for _, path := range files {
		hclFile, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to parse manifest %s: %w", path, diags)
		}

		var parsed manifestFile
		if diags := gohcl.DecodeBody(hclFile.Body, nil, &parsed); diags.HasErrors() {
			return nil, nil, fmt.Errorf("failed to decode manifest %s: %w", path, diags)
		}

		for _, lib := range parsed.Libraries {
			if library != nil {
				return nil, nil, fmt.Errorf("duplicate library block %q in %s: library %q already declared", lib.Name, path, library.Name)
			}
			library = lib
		}

		for _, block := range parsed.Modules {
			mod, err := translateModule(block)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid module %q in %s: %w", block.Name, path, err)
			}
			if err := reg.Add(mod); err != nil {
				return nil, nil, fmt.Errorf("manifest %s: %w", path, err)
			}
		}

		logger.Debug("Loaded manifest file.", "file", path, "modules", len(parsed.Modules))
	}

	if library == nil {
		return nil, nil, fmt.Errorf("no library block declared in any manifest under %s", root)
	}

	if err := reg.Validate(); err != nil {
		return nil, nil, err
	}

	proj := translateLibrary(library, root)
	logger.Info("Workspace manifests loaded.", "library", proj.Name, "modules", reg.Len())
	return proj, reg, nil
}

// translateLibrary converts the HCL library block into the project model,
// filling in the conventional layout for anything left unset.
func translateLibrary(lib *libraryBlock, root string) *project.Project {
	layout := project.DefaultLayout(root)
	if lib.IncludeDir != "" {
		layout.IncludeDir = lib.IncludeDir
	}
	if lib.SourceDir != "" {
		layout.SourceDir = lib.SourceDir
	}
	if lib.TestsDir != "" {
		layout.TestsDir = lib.TestsDir
	}
	if lib.BuildDir != "" {
		layout.BuildDir = lib.BuildDir
	}
	return &project.Project{
		Name:           lib.Name,
		Layout:         layout,
		MinimalModules: lib.Minimal,
		TestModule:     lib.TestModule,
	}
}

// translateModule converts an HCL module block into a registry module,
// evaluating the defines expression with the module's name in scope.
func translateModule(block *moduleBlock) (*registry.Module, error) {
	defines, err := evalDefines(block)
	if err != nil {
		return nil, err
	}
	return &registry.Module{
		Name:        block.Name,
		Description: block.Description,
		DependsOn:   block.DependsOn,
		Headers:     block.Headers,
		Sources:     block.Sources,
		Defines:     defines,
		Required:    block.Required,
	}, nil
}

// evalDefines evaluates the defines attribute, if present, as a list of
// strings. The evaluation context exposes `name` so manifests can write
// tokens like "LIB_ENABLE_${name}".
func evalDefines(block *moduleBlock) ([]string, error) {
	if block.Defines == nil {
		return nil, nil
	}

	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"name": cty.StringVal(block.Name),
		},
	}

	val, diags := block.Defines.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to evaluate defines: %w", diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.Type().IsTupleType() && !val.Type().IsListType() {
		return nil, fmt.Errorf("defines must be a list of strings, got %s", val.Type().FriendlyName())
	}

	var defines []string
	for _, elem := range val.AsValueSlice() {
		if elem.Type() != cty.String || elem.IsNull() {
			return nil, fmt.Errorf("defines must be a list of strings, got element of type %s", elem.Type().FriendlyName())
		}
		defines = append(defines, elem.AsString())
	}
	return defines, nil
}
