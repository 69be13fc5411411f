package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariant(t *testing.T) {
	t.Run("accepts debug and release", func(t *testing.T) {
		v, err := ParseVariant("debug")
		require.NoError(t, err)
		assert.Equal(t, Debug, v)

		v, err = ParseVariant("release")
		require.NoError(t, err)
		assert.Equal(t, Release, v)
	})

	t.Run("rejects anything else", func(t *testing.T) {
		_, err := ParseVariant("fast")
		assert.ErrorContains(t, err, "invalid build variant")
	})
}

func TestForID(t *testing.T) {
	t.Run("returns profiles for supported ids", func(t *testing.T) {
		for _, id := range []string{"g++", "clang++", "cl"} {
			p, err := ForID(id)
			require.NoError(t, err)
			assert.Equal(t, id, p.ID())
		}
	})

	t.Run("fails with UnknownCompilerError", func(t *testing.T) {
		_, err := ForID("tcc")
		require.Error(t, err)
		var unknown *UnknownCompilerError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, "tcc", unknown.ID)
		assert.ErrorContains(t, err, "g++")
	})
}

func TestPosixProfile(t *testing.T) {
	p, err := ForID("g++")
	require.NoError(t, err)

	t.Run("flag formatting", func(t *testing.T) {
		assert.Equal(t, "-DLIB_ENABLE_CORE", p.DefineFlag("LIB_ENABLE_CORE"))
		assert.Equal(t, "-Iinclude", p.IncludeFlag("include"))
		assert.Equal(t, "-c", p.CompileOnlyFlag())
		assert.Equal(t, []string{"-o", "out.o"}, p.OutputFlags(Object, "out.o"))
		assert.Equal(t, []string{"-o", "runner"}, p.OutputFlags(Executable, "runner"))
	})

	t.Run("variant flags", func(t *testing.T) {
		debug := p.BaseFlags(Debug)
		assert.Contains(t, debug, "-std=c++17")
		assert.Contains(t, debug, "-g")
		assert.Contains(t, debug, "-O0")
		assert.NotContains(t, debug, "-O2")

		release := p.BaseFlags(Release)
		assert.Contains(t, release, "-O2")
		assert.Contains(t, release, "-DNDEBUG")
		assert.NotContains(t, release, "-g")
	})

	t.Run("base flags are not shared between calls", func(t *testing.T) {
		first := p.BaseFlags(Release)
		first[0] = "mutated"
		assert.Equal(t, "-std=c++17", p.BaseFlags(Release)[0])
	})

	t.Run("artifact names", func(t *testing.T) {
		assert.Equal(t, "string_utils.o", p.ObjectFileName("string_utils"))
		assert.Equal(t, "libbadcpplib.a", p.ArchiveFileName("badcpplib"))
		assert.Equal(t, "test_core", p.ExecutableFileName("test_core"))
	})

	t.Run("archiver command", func(t *testing.T) {
		cmd := p.ArchiverCommand("libx.a", []string{"a.o", "b.o"})
		assert.Equal(t, []string{"ar", "rcs", "libx.a", "a.o", "b.o"}, cmd)
	})

	t.Run("clang++ shares the family", func(t *testing.T) {
		clang, err := ForID("clang++")
		require.NoError(t, err)
		assert.Equal(t, "clang++", clang.Command())
		assert.Equal(t, p.DefineFlag("X"), clang.DefineFlag("X"))
	})
}

func TestMsvcProfile(t *testing.T) {
	p, err := ForID("cl")
	require.NoError(t, err)

	t.Run("flag formatting", func(t *testing.T) {
		assert.Equal(t, "/DLIB_ENABLE_CORE", p.DefineFlag("LIB_ENABLE_CORE"))
		assert.Equal(t, "/Iinclude", p.IncludeFlag("include"))
		assert.Equal(t, "/c", p.CompileOnlyFlag())
		assert.Equal(t, []string{"/Foout.obj"}, p.OutputFlags(Object, "out.obj"))
		assert.Equal(t, []string{"/Ferunner.exe"}, p.OutputFlags(Executable, "runner.exe"))
		assert.Equal(t, []string{"/OUT:x.lib"}, p.OutputFlags(Archive, "x.lib"))
	})

	t.Run("variant flags", func(t *testing.T) {
		debug := p.BaseFlags(Debug)
		assert.Contains(t, debug, "/std:c++17")
		assert.Contains(t, debug, "/Od")
		assert.Contains(t, debug, "/Zi")

		release := p.BaseFlags(Release)
		assert.Contains(t, release, "/O2")
		assert.Contains(t, release, "/DNDEBUG")
	})

	t.Run("artifact names", func(t *testing.T) {
		assert.Equal(t, "string_utils.obj", p.ObjectFileName("string_utils"))
		assert.Equal(t, "badcpplib.lib", p.ArchiveFileName("badcpplib"))
		assert.Equal(t, "test_core.exe", p.ExecutableFileName("test_core"))
	})

	t.Run("archiver command", func(t *testing.T) {
		cmd := p.ArchiverCommand("x.lib", []string{"a.obj"})
		assert.Equal(t, []string{"lib", "/OUT:x.lib", "a.obj"}, cmd)
	})
}
