package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatCount(1234567))
	assert.Equal(t, "12", FormatCount(12))
	assert.Equal(t, "-49.576", FormatFloat(-49.57609, 3))
	assert.Equal(t, "12,345.5", FormatFloat(12345.5, 1))
	assert.Equal(t, "red   ", PadRight("red", 6))
	assert.Equal(t, "green", PadRight("green", 3))
	assert.Len(t, GetNowTimeTag(), 17)
}

func TestFiles(t *testing.T) {
	parent := t.TempDir()
	dir, err := GetUniqSubDir(parent)
	require.NoError(t, err)
	assert.Equal(t, parent, filepath.Dir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	assert.False(t, FileReadable(filepath.Join(parent, "nope.tif")))
	f := filepath.Join(parent, "a.tif")
	require.NoError(t, os.WriteFile(f, []byte{1}, 0o644))
	assert.True(t, FileReadable(f))
}
