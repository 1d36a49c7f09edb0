package experiment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"labstock/internal/core/id"
)

func TestExperiment_LifecycleTransitions(t *testing.T) {
	now := time.Now().UTC()
	e := NewExperiment("EXP-001", "Buffer titration", id.New())
	require.Equal(t, StatusDraft, e.Status)

	require.NoError(t, e.Transition(StatusRunning, now))
	require.NotNil(t, e.StartedAt)
	assert.Nil(t, e.FinishedAt)

	require.NoError(t, e.Transition(StatusCompleted, now))
	require.NotNil(t, e.FinishedAt)
	assert.True(t, e.IsTerminal())

	err := e.Transition(StatusRunning, now)
	assert.Error(t, err, "completed is terminal")
}

func TestExperiment_DraftCannotComplete(t *testing.T) {
	e := NewExperiment("EXP-002", "Sequencing run", id.New())
	err := e.Transition(StatusCompleted, time.Now().UTC())
	require.Error(t, err)
	assert.Equal(t, StatusDraft, e.Status)
}
