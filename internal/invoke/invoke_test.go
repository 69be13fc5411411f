package invoke

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecInvoker(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on a POSIX shell")
	}
	inv := &ExecInvoker{}

	t.Run("captures stdout and exit status", func(t *testing.T) {
		res, err := inv.Run(context.Background(), "sh", []string{"-c", "echo hello"})
		require.NoError(t, err)
		assert.Zero(t, res.ExitCode)
		assert.Equal(t, "hello\n", string(res.Stdout))
	})

	t.Run("non-zero exit is a result, not an error", func(t *testing.T) {
		res, err := inv.Run(context.Background(), "sh", []string{"-c", "echo oops >&2; exit 3"})
		require.NoError(t, err)
		assert.Equal(t, 3, res.ExitCode)
		assert.Equal(t, "oops\n", string(res.Stderr))
	})

	t.Run("unlaunchable program is an error", func(t *testing.T) {
		res, err := inv.Run(context.Background(), "/nonexistent/compiler", nil)
		require.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestResultOutput(t *testing.T) {
	t.Run("prefers stderr", func(t *testing.T) {
		r := &Result{Stdout: []byte("out"), Stderr: []byte("err")}
		assert.Equal(t, "err", r.Output())
	})

	t.Run("falls back to stdout", func(t *testing.T) {
		r := &Result{Stdout: []byte("out")}
		assert.Equal(t, "out", r.Output())
	})
}
