package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/libforge/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("libforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
libforge - A modular build orchestrator for C/C++ library workspaces.

Usage:
  libforge [options] [WORKSPACE_PATH]

Arguments:
  WORKSPACE_PATH
    Path to the workspace root containing .hcl manifests. Defaults to ".".

Options:
`)
		flagSet.PrintDefaults()
	}

	modulesFlag := flagSet.String("modules", "", "Comma-separated module names to build, or 'all'.")
	minimalFlag := flagSet.Bool("minimal", false, "Build the library's minimal module preset.")
	fullFlag := flagSet.Bool("full", false, "Build every declared module.")
	compilerFlag := flagSet.String("compiler", "g++", "Compiler id. Options: 'g++', 'clang++' or 'cl'.")
	variantFlag := flagSet.String("build-type", "release", "Build variant. Options: 'debug' or 'release'.")
	testFlag := flagSet.Bool("test", false, "Run tests after building the library.")
	testOnlyFlag := flagSet.Bool("test-only", false, "Only run tests, without building the library.")
	listFlag := flagSet.Bool("list-modules", false, "List available modules and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := "."
	if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Workspace path determined.", "path", path)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *minimalFlag && *fullFlag {
		return nil, false, &ExitError{Code: 2, Message: "-minimal and -full are mutually exclusive"}
	}
	slog.Debug("CLI parameter validation complete.")

	var modules []string
	for _, name := range strings.Split(*modulesFlag, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			modules = append(modules, trimmed)
		}
	}

	config, err := app.NewConfig(app.Config{
		Path:        path,
		Modules:     modules,
		Minimal:     *minimalFlag,
		Full:        *fullFlag,
		Compiler:    *compilerFlag,
		Variant:     *variantFlag,
		RunTests:    *testFlag,
		TestsOnly:   *testOnlyFlag,
		ListModules: *listFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
