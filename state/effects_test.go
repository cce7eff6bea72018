package state

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/save-state/common"
)

type labelRecorder struct {
	texts  []string
	states []RunState
}

func (r *labelRecorder) set(text string, st RunState) {
	r.texts = append(r.texts, text)
	r.states = append(r.states, st)
}

func TestEffects_SavesAndLabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)
	labels := &labelRecorder{}
	h := openTestHistory(t)

	fx := &Effects{Store: NewStore(path), History: h, Label: labels.set}

	require.NoError(t, fx.Apply(context.Background(), Running, SourceUI))

	assert.Equal(t, []string{"Running.."}, labels.texts)
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Running, got)

	entries, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SourceUI, entries[0].Source)
}

func TestEffects_WatcherSourceNotSaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)
	labels := &labelRecorder{}
	h := openTestHistory(t)

	fx := &Effects{Store: NewStore(path), History: h, Label: labels.set}

	require.NoError(t, fx.Apply(context.Background(), Running, SourceWatcher))

	assert.Equal(t, []string{"Running.."}, labels.texts)
	_, err := os.Stat(path)
	assert.True(t, errors.Is(err, os.ErrNotExist), "watcher transitions must not rewrite the file")

	entries, err := h.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SourceWatcher, entries[0].Source)
}

func TestEffects_SaveFailureStillRelabels(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", common.StateFileName)
	labels := &labelRecorder{}
	var reported []error

	fx := &Effects{
		Store:  NewStore(path),
		Label:  labels.set,
		Report: func(err error) { reported = append(reported, err) },
	}

	err := fx.Apply(context.Background(), Idle, SourceUI)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStateWrite))

	assert.Equal(t, []string{"Idle.."}, labels.texts)
	assert.Equal(t, []RunState{Idle}, labels.states)
	require.Len(t, reported, 1)
	assert.True(t, errors.Is(reported[0], common.ErrStateWrite))
}

func TestEffects_NilHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), common.StateFileName)

	fx := &Effects{Store: NewStore(path)}

	require.NoError(t, fx.Apply(context.Background(), Running, SourceCLI))
	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Running, got)
}
