package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Path is the workspace root containing the .hcl manifests.
	Path string

	// Modules are the explicitly requested module names. "all" selects
	// every declared module.
	Modules []string
	// Minimal selects the library's minimal preset instead of Modules.
	Minimal bool
	// Full selects every declared module.
	Full bool

	Compiler string
	Variant  string

	// RunTests runs the test suite after building.
	RunTests bool
	// TestsOnly skips the library build and only runs tests.
	TestsOnly bool
	// ListModules prints the module catalog and exits.
	ListModules bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, errors.New("workspace path is a required configuration field and cannot be empty")
	}
	if cfg.Compiler == "" {
		cfg.Compiler = "g++"
	}
	if cfg.Variant == "" {
		cfg.Variant = "release"
	}
	return &cfg, nil
}
