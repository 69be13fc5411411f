package pipeline

import (
	"fmt"
	"strings"
)

// CompileError reports a failed compiler invocation for a single source
// file. It carries enough context (module, file, full command line and
// the compiler's diagnostic stream) to diagnose the failure without
// re-running the build.
type CompileError struct {
	Module      string
	Source      string
	Command     []string
	ExitCode    int
	Diagnostics string
	// Cause is set when the compiler process could not be started at all.
	Cause error
}

func (e *CompileError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to run compiler for %s (module %q): %v", e.Source, e.Module, e.Cause)
	}
	msg := fmt.Sprintf("compilation of %s (module %q) failed with exit code %d", e.Source, e.Module, e.ExitCode)
	if diag := strings.TrimSpace(e.Diagnostics); diag != "" {
		msg += ":\n" + diag
	}
	return msg
}

func (e *CompileError) Unwrap() error { return e.Cause }

// ArchiveError reports a failed archiver invocation. It is a distinct
// type from CompileError so callers can tell the two phases apart.
type ArchiveError struct {
	Archive     string
	Command     []string
	ExitCode    int
	Diagnostics string
	Cause       error
}

func (e *ArchiveError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to run archiver for %s: %v", e.Archive, e.Cause)
	}
	msg := fmt.Sprintf("archiving %s failed with exit code %d", e.Archive, e.ExitCode)
	if diag := strings.TrimSpace(e.Diagnostics); diag != "" {
		msg += ":\n" + diag
	}
	return msg
}

func (e *ArchiveError) Unwrap() error { return e.Cause }
