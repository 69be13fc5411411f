// Package testrun discovers, compiles and runs the per-module test
// programs of a resolved module set.
//
// Discovery is by convention: one shared baseline test plus, for each
// resolved module, an optional test_<module>.cpp under the tests
// directory. Each test compiles together with the full source union of
// the set into a self-contained executable; nothing links against a
// previously built archive. The orchestrator is never fail-fast: every
// discovered test is attempted and the aggregate is reported at the end.
package testrun

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/libforge/internal/ctxlog"
	"github.com/vk/libforge/internal/fsutil"
	"github.com/vk/libforge/internal/invoke"
	"github.com/vk/libforge/internal/pipeline"
	"github.com/vk/libforge/internal/project"
	"github.com/vk/libforge/internal/registry"
	"github.com/vk/libforge/internal/resolve"
	"github.com/vk/libforge/internal/toolchain"
)

// sourceExt is the file extension test sources are discovered by.
const sourceExt = ".cpp"

// baselineTest is the shared test compiled for every selection.
const baselineTest = "basic_test"

// moduleTestDir is the tests subdirectory holding per-module tests.
const moduleTestDir = "modules"

// Outcome classifies the result of one test.
type Outcome int

const (
	// OutcomePassed means the test compiled and exited with status 0.
	OutcomePassed Outcome = iota
	// OutcomeCompileFailed means the test executable could not be built.
	OutcomeCompileFailed
	// OutcomeRunFailed means the test ran and exited non-zero.
	OutcomeRunFailed
)

// Result is the detailed outcome of a single test.
type Result struct {
	// Name identifies the test (its source file stem).
	Name    string
	Source  string
	Outcome Outcome
	// ExitCode is the test process exit status; meaningful only when the
	// test compiled.
	ExitCode int
	// Stdout and Stderr capture the streams of whichever process failed:
	// the compiler for compile failures, the test binary otherwise.
	Stdout string
	Stderr string
}

// Failed reports whether the test counts as failing in the aggregate.
func (r *Result) Failed() bool {
	return r.Outcome != OutcomePassed
}

// Summary aggregates one whole test run.
type Summary struct {
	Passed int
	Total  int
	// Failing lists the identifiers of failed tests in discovery order.
	Failing []string
	Results []Result
}

// AllPassed reports whether every discovered test passed.
func (s *Summary) AllPassed() bool {
	return s.Passed == s.Total
}

// Orchestrator compiles and runs test programs for one workspace.
type Orchestrator struct {
	proj    *project.Project
	reg     *registry.Registry
	invoker invoke.Invoker
	pipe    *pipeline.Pipeline
}

// New creates an Orchestrator sharing the pipeline's source gathering.
func New(proj *project.Project, reg *registry.Registry, invoker invoke.Invoker) *Orchestrator {
	return &Orchestrator{
		proj:    proj,
		reg:     reg,
		invoker: invoker,
		pipe:    pipeline.New(proj, reg, invoker),
	}
}

// discovered pairs a test identifier with its source path.
type discovered struct {
	Name   string
	Source string
}

// discover returns the baseline test plus one test per resolved module,
// keeping only files that exist on disk. Order follows the set's
// registry order, baseline first.
func (o *Orchestrator) discover(set *resolve.Set) []discovered {
	var tests []discovered

	baseline := o.proj.Layout.TestPath(baselineTest + sourceExt)
	if fsutil.FileExists(baseline) {
		tests = append(tests, discovered{Name: baselineTest, Source: baseline})
	}

	for _, mod := range set.Modules() {
		name := "test_" + mod.Name
		path := o.proj.Layout.TestPath(filepath.Join(moduleTestDir, name+sourceExt))
		if fsutil.FileExists(path) {
			tests = append(tests, discovered{Name: name, Source: path})
		}
	}
	return tests
}

// Run compiles and executes every discovered test for the resolved set.
// The returned error is reserved for environment failures (e.g. the
// build directory cannot be created); individual test failures are
// reported through the Summary only.
func (o *Orchestrator) Run(ctx context.Context, set *resolve.Set, prof toolchain.Profile, variant toolchain.Variant) (*Summary, error) {
	logger := ctxlog.FromContext(ctx)

	tests := o.discover(set)
	summary := &Summary{Total: len(tests)}
	if len(tests) == 0 {
		logger.Warn("No test files found for selection.", "modules", strings.Join(set.Names(), ", "))
		return summary, nil
	}

	if err := os.MkdirAll(o.proj.Layout.BuildPath(""), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create build directory: %w", err)
	}

	sources := o.pipe.Sources(ctx, set)

	for _, test := range tests {
		logger.Info("Running test.", "test", test.Name)
		result := o.runOne(ctx, test, sources, set, prof, variant)

		if result.Failed() {
			summary.Failing = append(summary.Failing, result.Name)
			logger.Error("Test failed.", "test", result.Name, "compiled", result.Outcome != OutcomeCompileFailed, "exit_code", result.ExitCode)
		} else {
			summary.Passed++
			logger.Info("Test passed.", "test", result.Name)
		}
		summary.Results = append(summary.Results, result)
	}

	logger.Info("Test run finished.", "passed", summary.Passed, "total", summary.Total)
	return summary, nil
}

// runOne compiles one test into a self-contained executable and, if that
// succeeds, executes it.
func (o *Orchestrator) runOne(ctx context.Context, test discovered, sources []string, set *resolve.Set, prof toolchain.Profile, variant toolchain.Variant) Result {
	result := Result{Name: test.Name, Source: test.Source}

	executable := o.proj.Layout.BuildPath(prof.ExecutableFileName(test.Name))

	args := prof.BaseFlags(variant)
	for _, define := range pipeline.CollectDefines(set) {
		args = append(args, prof.DefineFlag(define))
	}
	args = append(args, prof.IncludeFlag(o.proj.Layout.IncludePath()))
	args = append(args, test.Source)
	args = append(args, sources...)
	args = append(args, prof.OutputFlags(toolchain.Executable, executable)...)

	res, err := o.invoker.Run(ctx, prof.Command(), args)
	if err != nil {
		result.Outcome = OutcomeCompileFailed
		result.Stderr = err.Error()
		return result
	}
	if res.ExitCode != 0 {
		result.Outcome = OutcomeCompileFailed
		result.Stdout = string(res.Stdout)
		result.Stderr = string(res.Stderr)
		return result
	}

	run, err := o.invoker.Run(ctx, executable, nil)
	if err != nil {
		result.Outcome = OutcomeRunFailed
		result.ExitCode = -1
		result.Stderr = err.Error()
		return result
	}

	result.ExitCode = run.ExitCode
	result.Stdout = string(run.Stdout)
	result.Stderr = string(run.Stderr)
	if run.ExitCode != 0 {
		result.Outcome = OutcomeRunFailed
	}
	return result
}
