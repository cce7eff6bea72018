package state

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yllada/save-state/common"
)

func TestRunState_Strings(t *testing.T) {
	assert.Equal(t, Idle, RunState(false), "zero value must be Idle")

	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "Idle", Idle.String())
	assert.Equal(t, "ON", Running.OnOff())
	assert.Equal(t, "OFF", Idle.OnOff())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "«Running»", StartupLabel(Running))
	assert.Equal(t, "«Idle»", StartupLabel(Idle))
	assert.Equal(t, "Running..", RuntimeLabel(Running))
	assert.Equal(t, "Idle..", RuntimeLabel(Idle))
}

func TestParseRunState(t *testing.T) {
	tests := []struct {
		input string
		want  RunState
	}{
		{"on", Running},
		{"ON", Running},
		{" running ", Running},
		{"run", Running},
		{"true", Running},
		{"1", Running},
		{"off", Idle},
		{"Idle", Idle},
		{"kill", Idle},
		{"0", Idle},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRunState(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseRunState("maybe")
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrInvalidState))
}
