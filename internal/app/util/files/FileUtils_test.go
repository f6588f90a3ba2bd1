package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	require.NoError(t, os.WriteFile(path, []byte("  hello world \n\n"), 0o644))

	got, err := ReadOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)

	_, err = ReadOutputFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, EnsureDir(dir))
	assert.DirExists(t, dir)
	require.NoError(t, EnsureDir(dir))
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".v2t"), ExpandHome("~/.v2t"))
	assert.Equal(t, home, ExpandHome("~"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
	assert.Equal(t, "~user/x", ExpandHome("~user/x"))
}

func TestIsWAV(t *testing.T) {
	assert.True(t, IsWAV("a.wav"))
	assert.True(t, IsWAV("A.WAV"))
	assert.False(t, IsWAV("a.mp4"))
	assert.False(t, IsWAV("wav"))
}
