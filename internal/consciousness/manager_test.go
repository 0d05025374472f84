package consciousness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManager_UpdateDriftsWithinBounds(t *testing.T) {
	m := NewManager(nil)

	for i := 0; i < 1000; i++ {
		m.Update(16 * time.Millisecond)
		s := m.Snapshot()
		require.GreaterOrEqual(t, s.SCUP, 0.0)
		require.LessOrEqual(t, s.SCUP, 100.0)
		require.GreaterOrEqual(t, s.Entropy, 0.0)
		require.LessOrEqual(t, s.Entropy, 1.0)
		require.GreaterOrEqual(t, s.NeuralActivity, 0.0)
		require.LessOrEqual(t, s.NeuralActivity, 1.0)
		require.GreaterOrEqual(t, s.SystemUnity, 0.0)
		require.LessOrEqual(t, s.SystemUnity, 1.0)
	}
}

func TestManager_PauseStopsEvolution(t *testing.T) {
	m := NewManager(nil)

	m.Pause()
	before := m.Snapshot()
	require.True(t, before.Paused)

	for i := 0; i < 100; i++ {
		m.Update(16 * time.Millisecond)
	}
	after := m.Snapshot()
	require.Equal(t, before.SCUP, after.SCUP)
	require.Equal(t, before.Entropy, after.Entropy)

	m.Resume()
	require.False(t, m.Snapshot().Paused)
}

func TestManager_ApplyClampsAndMerges(t *testing.T) {
	m := NewManager(nil)

	scup := 250.0
	mood := MoodChaotic
	state := m.Apply(Patch{SCUP: &scup, Mood: &mood})

	require.Equal(t, 100.0, state.SCUP, "scup clamps to 100")
	require.Equal(t, MoodChaotic, state.Mood)
	// Untouched fields keep their values.
	require.Equal(t, DefaultState().SystemUnity, state.SystemUnity)
}

func TestManager_Reset(t *testing.T) {
	m := NewManager(nil)

	entropy := 0.9
	dream := true
	m.Apply(Patch{Entropy: &entropy, DreamMode: &dream})
	m.Pause()

	state := m.Reset()
	require.Equal(t, DefaultState(), state)
	require.False(t, state.Paused)
	require.False(t, state.DreamMode)
}
