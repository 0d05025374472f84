package dashboard_test

import (
	"testing"
	"time"

	"github.com/driftlab/pulseboard/internal/consciousness"
	"github.com/driftlab/pulseboard/internal/dashboard"
	"github.com/stretchr/testify/require"
)

func TestUpdateSettings_MergePurity(t *testing.T) {
	core := newTestCore(t)
	before := core.Settings()

	theme := "nocturne"
	after := core.UpdateSettings(dashboard.SettingsPatch{
		Visual: &dashboard.VisualPatch{Theme: &theme},
	})

	require.Equal(t, "nocturne", after.Visual.Theme)

	// Only visual.theme changed; every other field is preserved.
	expected := before
	expected.Visual.Theme = "nocturne"
	require.Equal(t, expected, after)
}

// Scenario C: maxFPS drives the tick interval.
func TestUpdateSettings_TickInterval(t *testing.T) {
	core := newTestCore(t)

	require.Equal(t, time.Second/60, core.TickInterval())

	fps := 30
	core.UpdateSettings(dashboard.SettingsPatch{
		Performance: &dashboard.PerformancePatch{MaxFPS: &fps},
	})
	require.Equal(t, time.Second/30, core.TickInterval())
}

func TestUpdateSettings_ReappliesVisualState(t *testing.T) {
	core := newTestCore(t)
	mod := addGauge(t, core)

	scup := 100.0
	neural := 1.0
	entropy := 1.0
	core.UpdateConsciousness(consciousness.Patch{SCUP: &scup, NeuralActivity: &neural, Entropy: &entropy})

	core.UpdateSettings(dashboard.SettingsPatch{})

	require.InDelta(t, 1.0, mod.GlowIntensity, 1e-9)
	require.InDelta(t, 1.0, mod.BreathingIntensity, 1e-9)
	require.InDelta(t, 1.0, mod.ParticleDensity, 1e-9)
}

func TestDefaultSettings(t *testing.T) {
	s := dashboard.DefaultSettings()

	require.Equal(t, 60, s.Performance.MaxFPS)
	require.Equal(t, "dawn", s.Visual.Theme)
	require.True(t, s.Visual.Glow)
	require.False(t, s.Interaction.SnapToGrid)
	require.Equal(t, 1.0, s.Consciousness.TickRate)
	require.Equal(t, time.Second/60, s.TickInterval())
}

func TestDeriveVisuals_PureAndDeterministic(t *testing.T) {
	state := consciousness.State{SCUP: 50, Entropy: 0.5, NeuralActivity: 0.5}

	g1, b1, p1 := dashboard.DeriveVisuals(state)
	g2, b2, p2 := dashboard.DeriveVisuals(state)
	require.Equal(t, g1, g2)
	require.Equal(t, b1, b2)
	require.Equal(t, p1, p2)

	require.InDelta(t, 0.6, g1, 1e-9)  // 0.2 + 0.8*0.5
	require.InDelta(t, 0.65, b1, 1e-9) // 0.3 + 0.7*0.5
	require.InDelta(t, 0.55, p1, 1e-9) // 0.1 + 0.9*0.5

	// Bounds at the extremes.
	g, b, p := dashboard.DeriveVisuals(consciousness.State{})
	require.InDelta(t, 0.2, g, 1e-9)
	require.InDelta(t, 0.3, b, 1e-9)
	require.InDelta(t, 0.1, p, 1e-9)

	g, b, p = dashboard.DeriveVisuals(consciousness.State{SCUP: 100, Entropy: 1, NeuralActivity: 1})
	require.InDelta(t, 1.0, g, 1e-9)
	require.InDelta(t, 1.0, b, 1e-9)
	require.InDelta(t, 1.0, p, 1e-9)
}
