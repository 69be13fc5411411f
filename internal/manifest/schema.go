package manifest

import "github.com/hashicorp/hcl/v2"

// libraryBlock is the HCL shape of the single `library` block that names
// the produced archive and pins the workspace layout.
type libraryBlock struct {
	Name       string   `hcl:"name,label"`
	IncludeDir string   `hcl:"include_dir,optional"`
	SourceDir  string   `hcl:"source_dir,optional"`
	TestsDir   string   `hcl:"tests_dir,optional"`
	BuildDir   string   `hcl:"build_dir,optional"`
	Minimal    []string `hcl:"minimal,optional"`
	TestModule string   `hcl:"test_module,optional"`
}

// moduleBlock is the HCL shape of one `module` block.
//
// Defines stays an expression rather than a plain string list so that
// manifests can interpolate the module's own name into the feature
// tokens; it is evaluated by the loader with `name` in scope.
type moduleBlock struct {
	Name        string         `hcl:"name,label"`
	Description string         `hcl:"description,optional"`
	DependsOn   []string       `hcl:"depends_on,optional"`
	Headers     []string       `hcl:"headers,optional"`
	Sources     []string       `hcl:"sources,optional"`
	Defines     hcl.Expression `hcl:"defines,optional"`
	Required    bool           `hcl:"required,optional"`
}

// manifestFile is the top-level structure of one .hcl manifest file.
type manifestFile struct {
	Libraries []*libraryBlock `hcl:"library,block"`
	Modules   []*moduleBlock  `hcl:"module,block"`
}
