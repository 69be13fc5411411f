// Package invoke is the boundary between the build core and external
// processes (compilers, archivers, test executables).
//
// Everything that spawns a process goes through the Invoker interface so
// that the pipeline and the test orchestrator can be exercised in tests
// with a scripted fake instead of a real toolchain.
package invoke

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the observable outcome of one finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns the diagnostic stream of the process: stderr if the
// process wrote any, stdout otherwise. Compilers split their output
// between the two inconsistently, so failure reports surface both.
func (r *Result) Output() string {
	if len(r.Stderr) > 0 {
		return string(r.Stderr)
	}
	return string(r.Stdout)
}

// Invoker runs one external program to completion. An error is returned
// only when the process could not be started at all; a process that ran
// and exited non-zero yields a Result with its exit code instead.
type Invoker interface {
	Run(ctx context.Context, name string, args []string) (*Result, error)
}

// ExecInvoker runs programs with os/exec. Calls block until the process
// exits; there is no caller-imposed timeout beyond context cancellation.
type ExecInvoker struct {
	// Dir is the working directory for spawned processes. Empty means
	// the current process working directory.
	Dir string
}

// Run implements Invoker.
func (e *ExecInvoker) Run(ctx context.Context, name string, args []string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return nil, err
	}
	return res, nil
}
