package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/libforge/internal/ctxlog"
	"github.com/vk/libforge/internal/pipeline"
	"github.com/vk/libforge/internal/testrun"
	"github.com/vk/libforge/internal/toolchain"
)

// Run executes the requested phases: resolve, build, test. It returns a
// non-nil error whenever any invoked phase failed, which the CLI maps to
// a non-zero exit code.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListModules {
		a.listModules()
		return nil
	}

	variant, err := toolchain.ParseVariant(a.config.Variant)
	if err != nil {
		return err
	}
	prof, err := toolchain.ForID(a.config.Compiler)
	if err != nil {
		return err
	}

	requested := a.requestSet()
	set, err := a.resolver.Resolve(requested)
	if err != nil {
		return err
	}
	a.logger.Info("Modules selected.", "modules", strings.Join(set.Names(), ", "))

	if !a.config.TestsOnly {
		pipe := pipeline.New(a.project, a.registry, a.invoker)
		artifact, err := pipe.CompileAndArchive(ctx, set, prof, variant)
		if err != nil {
			return err
		}
		if artifact.Archive != "" {
			fmt.Fprintf(a.outW, "Library created: %s\n", artifact.Archive)
		} else {
			fmt.Fprintln(a.outW, "No source files to compile; nothing to archive.")
		}
	}

	if a.config.RunTests || a.config.TestsOnly {
		if err := a.runTests(ctx, requested, prof, variant); err != nil {
			return err
		}
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

// runTests resolves the request again with the test-harness module added
// and hands the set to the orchestrator.
func (a *App) runTests(ctx context.Context, requested []string, prof toolchain.Profile, variant toolchain.Variant) error {
	if harness := a.project.TestModule; harness != "" {
		requested = append(append([]string{}, requested...), harness)
	}
	set, err := a.resolver.Resolve(requested)
	if err != nil {
		return err
	}

	orch := testrun.New(a.project, a.registry, a.invoker)
	summary, err := orch.Run(ctx, set, prof, variant)
	if err != nil {
		return err
	}

	a.printSummary(summary)
	if !summary.AllPassed() {
		return fmt.Errorf("%d of %d tests failed: %s", summary.Total-summary.Passed, summary.Total, strings.Join(summary.Failing, ", "))
	}
	return nil
}

// printSummary writes the human-readable test report to the app output.
func (a *App) printSummary(summary *testrun.Summary) {
	fmt.Fprintf(a.outW, "\nTest results: %d/%d\n", summary.Passed, summary.Total)
	for _, res := range summary.Results {
		switch res.Outcome {
		case testrun.OutcomePassed:
			fmt.Fprintf(a.outW, "  PASS %s\n", res.Name)
		case testrun.OutcomeCompileFailed:
			fmt.Fprintf(a.outW, "  FAIL %s (did not compile)\n", res.Name)
		case testrun.OutcomeRunFailed:
			fmt.Fprintf(a.outW, "  FAIL %s (exit code %d)\n", res.Name, res.ExitCode)
		}
	}
}

// requestSet translates the CLI selection into the requested module names.
func (a *App) requestSet() []string {
	if a.config.Full {
		return a.allModuleNames()
	}
	if a.config.Minimal {
		return a.project.MinimalModules
	}
	for _, name := range a.config.Modules {
		if name == "all" {
			return a.allModuleNames()
		}
	}
	return a.config.Modules
}

func (a *App) allModuleNames() []string {
	names := make([]string, 0, a.registry.Len())
	for _, m := range a.registry.Modules() {
		names = append(names, m.Name)
	}
	return names
}

// listModules prints the module catalog with descriptions and dependencies.
func (a *App) listModules() {
	fmt.Fprintln(a.outW, "Available modules:")
	fmt.Fprintln(a.outW)
	for _, m := range a.registry.Modules() {
		marker := ""
		if m.Required {
			marker = " [required]"
		}
		fmt.Fprintf(a.outW, "  %s%s\n", m.Name, marker)
		if m.Description != "" {
			fmt.Fprintf(a.outW, "    %s\n", m.Description)
		}
		if len(m.DependsOn) > 0 {
			fmt.Fprintf(a.outW, "    Dependencies: %s\n", strings.Join(m.DependsOn, ", "))
		}
		fmt.Fprintln(a.outW)
	}
}
