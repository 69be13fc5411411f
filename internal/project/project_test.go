package project

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLayoutPaths(t *testing.T) {
	l := DefaultLayout("/work/badcpplib")

	assert.Equal(t, filepath.Join("/work/badcpplib", "include"), l.IncludePath())
	assert.Equal(t, filepath.Join("/work/badcpplib", "src", "modules", "string_utils.cpp"), l.SourcePath("modules/string_utils.cpp"))
	assert.Equal(t, filepath.Join("/work/badcpplib", "tests", "basic_test.cpp"), l.TestPath("basic_test.cpp"))
	assert.Equal(t, filepath.Join("/work/badcpplib", "build", "libbadcpplib.a"), l.BuildPath("libbadcpplib.a"))
}
