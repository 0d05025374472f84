package consciousness

import (
	"log/slog"
	"math/rand"
	"sync"
	"time"
)

// Manager owns the shared consciousness state and its evolution lifecycle.
// Live metric feeds push values through Apply; between pushes the scalars
// perform a mild bounded random walk so visuals never freeze.
type Manager struct {
	mu     sync.Mutex
	state  State
	rng    *rand.Rand
	logger *slog.Logger
}

// NewManager creates a manager seeded from the current time.
func NewManager(logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		state:  DefaultState(),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger: logger,
	}
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Update advances the time-driven fields by dt. No-op while paused.
// Dream mode widens entropy drift.
func (m *Manager) Update(dt time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state.Paused {
		return
	}

	step := dt.Seconds()
	entropyStep := step
	if m.state.DreamMode {
		entropyStep *= 3
	}

	m.state.SCUP = clamp(m.state.SCUP+m.drift(2.0*step), 0, 100)
	m.state.Entropy = clamp(m.state.Entropy+m.drift(0.05*entropyStep), 0, 1)
	m.state.NeuralActivity = clamp(m.state.NeuralActivity+m.drift(0.08*step), 0, 1)
	m.state.SystemUnity = clamp(m.state.SystemUnity+m.drift(0.03*step), 0, 1)
}

// drift returns a symmetric random step with the given amplitude.
func (m *Manager) drift(amplitude float64) float64 {
	return (m.rng.Float64()*2 - 1) * amplitude
}

// Apply merges a partial update into the state, clamping scalars.
func (m *Manager) Apply(patch Patch) State {
	m.mu.Lock()
	defer m.mu.Unlock()

	if patch.SCUP != nil {
		m.state.SCUP = clamp(*patch.SCUP, 0, 100)
	}
	if patch.Entropy != nil {
		m.state.Entropy = clamp(*patch.Entropy, 0, 1)
	}
	if patch.Mood != nil {
		m.state.Mood = *patch.Mood
	}
	if patch.NeuralActivity != nil {
		m.state.NeuralActivity = clamp(*patch.NeuralActivity, 0, 1)
	}
	if patch.SystemUnity != nil {
		m.state.SystemUnity = clamp(*patch.SystemUnity, 0, 1)
	}
	if patch.DreamMode != nil {
		m.state.DreamMode = *patch.DreamMode
	}
	return m.state
}

// Pause stops evolution until Resume is called.
func (m *Manager) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Paused = true
}

// Resume re-enables evolution.
func (m *Manager) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Paused = false
}

// Reset restores default values. Pause and dream flags are cleared too.
func (m *Manager) Reset() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = DefaultState()
	m.logger.Debug("consciousness state reset")
	return m.state
}
