package testrun

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/libforge/internal/invoke"
	"github.com/vk/libforge/internal/project"
	"github.com/vk/libforge/internal/registry"
	"github.com/vk/libforge/internal/resolve"
	"github.com/vk/libforge/internal/toolchain"
)

// fakeInvoker scripts compiler and test-executable behavior per call.
type fakeInvoker struct {
	calls   [][]string
	handler func(name string, args []string) (*invoke.Result, error)
}

func (f *fakeInvoker) Run(_ context.Context, name string, args []string) (*invoke.Result, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.handler != nil {
		return f.handler(name, args)
	}
	return &invoke.Result{}, nil
}

// newFixture builds a workspace with a baseline test plus per-module
// tests for core and string_utils.
func newFixture(t *testing.T) (*project.Project, *registry.Registry) {
	t.Helper()
	root := t.TempDir()

	proj := &project.Project{
		Name:   "badcpplib",
		Layout: project.DefaultLayout(root),
	}

	reg := registry.New()
	mods := []*registry.Module{
		{Name: "core", Required: true, Defines: []string{"LIB_ENABLE_CORE"}},
		{Name: "string_utils", DependsOn: []string{"core"}, Sources: []string{"modules/string_utils.cpp"}, Defines: []string{"LIB_ENABLE_STRING"}},
		{Name: "math_utils", DependsOn: []string{"core"}, Defines: []string{"LIB_ENABLE_MATH"}},
	}
	for _, m := range mods {
		require.NoError(t, reg.Add(m))
	}
	require.NoError(t, reg.Validate())

	writeFile(t, proj.Layout.SourcePath("modules/string_utils.cpp"))
	writeFile(t, proj.Layout.TestPath("basic_test.cpp"))
	writeFile(t, proj.Layout.TestPath("modules/test_core.cpp"))
	writeFile(t, proj.Layout.TestPath("modules/test_string_utils.cpp"))
	// math_utils deliberately has no test file.

	return proj, reg
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("// stub\n"), 0o644))
}

func resolveSet(t *testing.T, reg *registry.Registry, names ...string) *resolve.Set {
	t.Helper()
	set, err := resolve.New(reg).Resolve(names)
	require.NoError(t, err)
	return set
}

func gxx(t *testing.T) toolchain.Profile {
	t.Helper()
	p, err := toolchain.ForID("g++")
	require.NoError(t, err)
	return p
}

func TestDiscovery(t *testing.T) {
	proj, reg := newFixture(t)
	orch := New(proj, reg, &fakeInvoker{})

	t.Run("baseline first, then per-module tests in registry order", func(t *testing.T) {
		tests := orch.discover(resolveSet(t, reg, "string_utils", "math_utils"))
		var names []string
		for _, d := range tests {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"basic_test", "test_core", "test_string_utils"}, names)
	})

	t.Run("tests of unselected modules are not discovered", func(t *testing.T) {
		tests := orch.discover(resolveSet(t, reg))
		var names []string
		for _, d := range tests {
			names = append(names, d.Name)
		}
		assert.Equal(t, []string{"basic_test", "test_core"}, names)
	})
}

func TestRunAllPassing(t *testing.T) {
	proj, reg := newFixture(t)
	inv := &fakeInvoker{}
	orch := New(proj, reg, inv)

	summary, err := orch.Run(context.Background(), resolveSet(t, reg, "string_utils"), gxx(t), toolchain.Release)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 3, summary.Passed)
	assert.Empty(t, summary.Failing)
	assert.True(t, summary.AllPassed())

	// Each test yields one compile plus one execution.
	assert.Len(t, inv.calls, 6)
}

func TestRunCompilesSelfContainedExecutables(t *testing.T) {
	proj, reg := newFixture(t)
	inv := &fakeInvoker{}
	orch := New(proj, reg, inv)

	_, err := orch.Run(context.Background(), resolveSet(t, reg, "string_utils"), gxx(t), toolchain.Release)
	require.NoError(t, err)

	compile := inv.calls[0]
	assert.Equal(t, "g++", compile[0])
	joined := strings.Join(compile, " ")
	assert.Contains(t, joined, proj.Layout.TestPath("basic_test.cpp"))
	assert.Contains(t, joined, proj.Layout.SourcePath("modules/string_utils.cpp"), "module sources compile into the test executable")
	assert.Contains(t, joined, "-DLIB_ENABLE_STRING")
	assert.NotContains(t, joined, ".a", "tests must not link a prebuilt archive")

	run := inv.calls[1]
	assert.Equal(t, proj.Layout.BuildPath("basic_test"), run[0])
	assert.Len(t, run, 1, "test executables run without arguments")
}

func TestRunDistinguishesFailureKinds(t *testing.T) {
	proj, reg := newFixture(t)

	testCore := proj.Layout.TestPath(filepath.Join("modules", "test_core.cpp"))
	inv := &fakeInvoker{
		handler: func(name string, args []string) (*invoke.Result, error) {
			// test_core fails to compile.
			for _, a := range args {
				if a == testCore {
					return &invoke.Result{ExitCode: 1, Stderr: []byte("test_core.cpp: error: unknown type")}, nil
				}
			}
			// test_string_utils compiles but fails at runtime.
			if name == proj.Layout.BuildPath("test_string_utils") {
				return &invoke.Result{ExitCode: 3, Stdout: []byte("assertion failed: reverse")}, nil
			}
			return &invoke.Result{}, nil
		},
	}
	orch := New(proj, reg, inv)

	summary, err := orch.Run(context.Background(), resolveSet(t, reg, "string_utils"), gxx(t), toolchain.Release)
	require.NoError(t, err, "individual test failures are not a run error")

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, []string{"test_core", "test_string_utils"}, summary.Failing)
	assert.False(t, summary.AllPassed())

	byName := make(map[string]Result)
	for _, r := range summary.Results {
		byName[r.Name] = r
	}

	assert.Equal(t, OutcomePassed, byName["basic_test"].Outcome)

	coreRes := byName["test_core"]
	assert.Equal(t, OutcomeCompileFailed, coreRes.Outcome)
	assert.Contains(t, coreRes.Stderr, "unknown type")

	stringRes := byName["test_string_utils"]
	assert.Equal(t, OutcomeRunFailed, stringRes.Outcome)
	assert.Equal(t, 3, stringRes.ExitCode)
	assert.Contains(t, stringRes.Stdout, "assertion failed")
}

func TestRunNeverFailsFast(t *testing.T) {
	proj, reg := newFixture(t)

	inv := &fakeInvoker{
		handler: func(name string, args []string) (*invoke.Result, error) {
			if name == "g++" {
				return &invoke.Result{ExitCode: 1, Stderr: []byte("boom")}, nil
			}
			return &invoke.Result{}, nil
		},
	}
	orch := New(proj, reg, inv)

	summary, err := orch.Run(context.Background(), resolveSet(t, reg, "string_utils"), gxx(t), toolchain.Release)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Zero(t, summary.Passed)
	assert.Len(t, summary.Failing, 3, "every discovered test must still be attempted")
	assert.Len(t, inv.calls, 3, "one failed compile per test, no executions")
}

func TestRunNoTestsFound(t *testing.T) {
	root := t.TempDir()
	proj := &project.Project{Name: "empty", Layout: project.DefaultLayout(root)}

	reg := registry.New()
	require.NoError(t, reg.Add(&registry.Module{Name: "core", Required: true}))
	require.NoError(t, reg.Validate())

	inv := &fakeInvoker{}
	orch := New(proj, reg, inv)

	summary, err := orch.Run(context.Background(), resolveSet(t, reg), gxx(t), toolchain.Release)
	require.NoError(t, err)

	assert.Zero(t, summary.Total)
	assert.Empty(t, inv.calls)
}
