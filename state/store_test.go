package state

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/save-state/common"
)

func TestReadFile_Missing(t *testing.T) {
	st, err := ReadFile(filepath.Join(t.TempDir(), common.StateFileName))

	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStateRead))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Equal(t, Idle, st)
}

func TestReadFile_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)
	require.NoError(t, os.WriteFile(path, []byte("<heartbeat><status>"), 0644))

	st, err := ReadFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStateParse))
	assert.Equal(t, Idle, st)
}

func TestWriteFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)

	for _, st := range []RunState{Running, Idle, Running} {
		require.NoError(t, WriteFile(path, st))

		got, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}
}

func TestWriteFile_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)

	require.NoError(t, WriteFile(path, Running))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, Running))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, documentOn, string(second))

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Running, got)
}

func TestWriteFile_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)
	require.NoError(t, WriteFile(path, Idle))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm()&0644)
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", common.StateFileName)

	err := WriteFile(path, Running)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStateWrite))
	assert.False(t, common.FileExists(path))
}

func TestStore_LoadSave(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), common.StateFileName))

	st, err := store.Load()
	require.Error(t, err)
	assert.Equal(t, Idle, st)
	_, known := store.Last()
	assert.False(t, known, "failed load must not be remembered")

	require.NoError(t, store.Save(Running))
	last, known := store.Last()
	assert.True(t, known)
	assert.Equal(t, Running, last)

	st, err = store.Load()
	require.NoError(t, err)
	assert.Equal(t, Running, st)
}

func TestStore_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)
	store := NewStore(path)

	require.NoError(t, WriteFile(path, Running))
	st, changed, err := store.Reload()
	require.NoError(t, err)
	assert.True(t, changed, "first successful read counts as a change")
	assert.Equal(t, Running, st)

	_, changed, err = store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, store.Save(Idle))
	_, changed, err = store.Reload()
	require.NoError(t, err)
	assert.False(t, changed, "own writes are not external changes")

	require.NoError(t, WriteFile(path, Running))
	st, changed, err = store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, Running, st)
}
