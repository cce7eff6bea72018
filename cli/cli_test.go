package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/save-state/common"
	"github.com/yllada/save-state/state"
)

func newTestCLI(t *testing.T, withHistory bool) (*CLI, *bytes.Buffer, string) {
	t.Helper()

	dir := t.TempDir()
	statePath := filepath.Join(dir, common.StateFileName)

	var history *state.History
	if withHistory {
		var err error
		history, err = state.OpenHistory(filepath.Join(dir, common.HistoryFileName))
		require.NoError(t, err)
		t.Cleanup(func() { _ = history.Close() })
	}

	c := New(statePath, history)
	var out bytes.Buffer
	c.SetOutput(&out)
	return c, &out, statePath
}

func TestStatus_NoFile(t *testing.T) {
	c, out, _ := newTestCLI(t, false)

	require.NoError(t, c.Status())
	assert.Contains(t, out.String(), "Idle (no state file at")
}

func TestStatus_Malformed(t *testing.T) {
	c, _, path := newTestCLI(t, false)
	require.NoError(t, os.WriteFile(path, []byte("<heartbeat>"), 0644))

	err := c.Status()
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrStateParse))
}

func TestSet_WritesAndReports(t *testing.T) {
	c, out, path := newTestCLI(t, true)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "on"))
	assert.Contains(t, out.String(), "✓ Running")

	st, err := state.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, state.Running, st)

	out.Reset()
	require.NoError(t, c.Status())
	assert.Contains(t, out.String(), "Running (")

	out.Reset()
	require.NoError(t, c.Set(ctx, "on"))
	assert.Contains(t, out.String(), "Already Running")

	require.NoError(t, c.Set(ctx, "off"))

	out.Reset()
	require.NoError(t, c.History(ctx, 10))
	lines := bytes.Count(out.Bytes(), []byte("\n"))
	assert.Equal(t, 4, lines, "header, rule and two transitions:\n%s", out.String())
	assert.Contains(t, out.String(), "Idle")
	assert.Contains(t, out.String(), state.SourceCLI)
}

func TestSet_Invalid(t *testing.T) {
	c, _, path := newTestCLI(t, false)

	err := c.Set(context.Background(), "sideways")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidState))
	assert.False(t, common.FileExists(path))
}

func TestHistory_Disabled(t *testing.T) {
	c, _, _ := newTestCLI(t, false)

	err := c.History(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrHistory))
}

func TestHistory_Empty(t *testing.T) {
	c, out, _ := newTestCLI(t, true)

	require.NoError(t, c.History(context.Background(), 5))
	assert.Contains(t, out.String(), "No transitions recorded.")
}
