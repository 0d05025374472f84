package dashboard

import (
	"time"

	"github.com/driftlab/pulseboard/internal/consciousness"
)

// Settings is the dashboard's nested configuration. Updates go through
// SettingsPatch so omitted leaf keys are always preserved.
type Settings struct {
	Consciousness ConsciousnessSettings `json:"consciousness" yaml:"consciousness"`
	Performance   PerformanceSettings   `json:"performance" yaml:"performance"`
	Visual        VisualSettings        `json:"visual" yaml:"visual"`
	Audio         AudioSettings         `json:"audio" yaml:"audio"`
	Interaction   InteractionSettings   `json:"interaction" yaml:"interaction"`
}

// ConsciousnessSettings seeds the shared state and scales its evolution.
type ConsciousnessSettings struct {
	SCUP           float64            `json:"scup" yaml:"scup"`
	Entropy        float64            `json:"entropy" yaml:"entropy"`
	NeuralActivity float64            `json:"neural_activity" yaml:"neural_activity"`
	SystemUnity    float64            `json:"system_unity" yaml:"system_unity"`
	Mood           consciousness.Mood `json:"mood" yaml:"mood"`
	TickRate       float64            `json:"tick_rate" yaml:"tick_rate"`
	StartPaused    bool               `json:"start_paused" yaml:"start_paused"`
}

// PerformanceSettings shape the update loop and resource ceilings.
type PerformanceSettings struct {
	MaxFPS        int    `json:"max_fps" yaml:"max_fps"`
	Quality       string `json:"quality" yaml:"quality"`
	Profiling     bool   `json:"profiling" yaml:"profiling"`
	MemoryLimitMB int    `json:"memory_limit_mb" yaml:"memory_limit_mb"`
}

// VisualSettings are renderer hints; the core stores and distributes them
// but does not interpret them.
type VisualSettings struct {
	Theme       string  `json:"theme" yaml:"theme"`
	Glow        bool    `json:"glow" yaml:"glow"`
	Particles   bool    `json:"particles" yaml:"particles"`
	Connections bool    `json:"connections" yaml:"connections"`
	Grid        bool    `json:"grid" yaml:"grid"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
}

// AudioSettings are host hints for sonification.
type AudioSettings struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Volume  float64 `json:"volume" yaml:"volume"`
	Spatial bool    `json:"spatial" yaml:"spatial"`
}

// InteractionSettings govern user manipulation of modules.
type InteractionSettings struct {
	DragSensitivity float64 `json:"drag_sensitivity" yaml:"drag_sensitivity"`
	SnapToGrid      bool    `json:"snap_to_grid" yaml:"snap_to_grid"`
	Keyboard        bool    `json:"keyboard" yaml:"keyboard"`
	Gestures        bool    `json:"gestures" yaml:"gestures"`
	Voice           bool    `json:"voice" yaml:"voice"`
}

// DefaultSettings returns the stated defaults for every field.
func DefaultSettings() Settings {
	state := consciousness.DefaultState()
	return Settings{
		Consciousness: ConsciousnessSettings{
			SCUP:           state.SCUP,
			Entropy:        state.Entropy,
			NeuralActivity: state.NeuralActivity,
			SystemUnity:    state.SystemUnity,
			Mood:           state.Mood,
			TickRate:       1.0,
		},
		Performance: PerformanceSettings{
			MaxFPS:        60,
			Quality:       "high",
			MemoryLimitMB: 512,
		},
		Visual: VisualSettings{
			Theme:       "dawn",
			Glow:        true,
			Particles:   true,
			Connections: true,
			Opacity:     1.0,
		},
		Audio: AudioSettings{
			Volume: 0.5,
		},
		Interaction: InteractionSettings{
			DragSensitivity: 1.0,
			Keyboard:        true,
		},
	}
}

// TickInterval derives the update-loop period from MaxFPS.
func (s Settings) TickInterval() time.Duration {
	fps := s.Performance.MaxFPS
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}

// SettingsPatch is a deep, non-destructive update: nil sub-objects and nil
// leaf fields are left untouched.
type SettingsPatch struct {
	Consciousness *ConsciousnessPatch `json:"consciousness,omitempty" yaml:"consciousness,omitempty"`
	Performance   *PerformancePatch   `json:"performance,omitempty" yaml:"performance,omitempty"`
	Visual        *VisualPatch        `json:"visual,omitempty" yaml:"visual,omitempty"`
	Audio         *AudioPatch         `json:"audio,omitempty" yaml:"audio,omitempty"`
	Interaction   *InteractionPatch   `json:"interaction,omitempty" yaml:"interaction,omitempty"`
}

type ConsciousnessPatch struct {
	SCUP           *float64            `json:"scup,omitempty" yaml:"scup,omitempty"`
	Entropy        *float64            `json:"entropy,omitempty" yaml:"entropy,omitempty"`
	NeuralActivity *float64            `json:"neural_activity,omitempty" yaml:"neural_activity,omitempty"`
	SystemUnity    *float64            `json:"system_unity,omitempty" yaml:"system_unity,omitempty"`
	Mood           *consciousness.Mood `json:"mood,omitempty" yaml:"mood,omitempty"`
	TickRate       *float64            `json:"tick_rate,omitempty" yaml:"tick_rate,omitempty"`
	StartPaused    *bool               `json:"start_paused,omitempty" yaml:"start_paused,omitempty"`
}

type PerformancePatch struct {
	MaxFPS        *int    `json:"max_fps,omitempty" yaml:"max_fps,omitempty"`
	Quality       *string `json:"quality,omitempty" yaml:"quality,omitempty"`
	Profiling     *bool   `json:"profiling,omitempty" yaml:"profiling,omitempty"`
	MemoryLimitMB *int    `json:"memory_limit_mb,omitempty" yaml:"memory_limit_mb,omitempty"`
}

type VisualPatch struct {
	Theme       *string  `json:"theme,omitempty" yaml:"theme,omitempty"`
	Glow        *bool    `json:"glow,omitempty" yaml:"glow,omitempty"`
	Particles   *bool    `json:"particles,omitempty" yaml:"particles,omitempty"`
	Connections *bool    `json:"connections,omitempty" yaml:"connections,omitempty"`
	Grid        *bool    `json:"grid,omitempty" yaml:"grid,omitempty"`
	Opacity     *float64 `json:"opacity,omitempty" yaml:"opacity,omitempty"`
}

type AudioPatch struct {
	Enabled *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Volume  *float64 `json:"volume,omitempty" yaml:"volume,omitempty"`
	Spatial *bool    `json:"spatial,omitempty" yaml:"spatial,omitempty"`
}

type InteractionPatch struct {
	DragSensitivity *float64 `json:"drag_sensitivity,omitempty" yaml:"drag_sensitivity,omitempty"`
	SnapToGrid      *bool    `json:"snap_to_grid,omitempty" yaml:"snap_to_grid,omitempty"`
	Keyboard        *bool    `json:"keyboard,omitempty" yaml:"keyboard,omitempty"`
	Gestures        *bool    `json:"gestures,omitempty" yaml:"gestures,omitempty"`
	Voice           *bool    `json:"voice,omitempty" yaml:"voice,omitempty"`
}

func (p SettingsPatch) apply(s *Settings) {
	if p.Consciousness != nil {
		p.Consciousness.apply(&s.Consciousness)
	}
	if p.Performance != nil {
		p.Performance.apply(&s.Performance)
	}
	if p.Visual != nil {
		p.Visual.apply(&s.Visual)
	}
	if p.Audio != nil {
		p.Audio.apply(&s.Audio)
	}
	if p.Interaction != nil {
		p.Interaction.apply(&s.Interaction)
	}
}

func (p ConsciousnessPatch) apply(s *ConsciousnessSettings) {
	if p.SCUP != nil {
		s.SCUP = *p.SCUP
	}
	if p.Entropy != nil {
		s.Entropy = *p.Entropy
	}
	if p.NeuralActivity != nil {
		s.NeuralActivity = *p.NeuralActivity
	}
	if p.SystemUnity != nil {
		s.SystemUnity = *p.SystemUnity
	}
	if p.Mood != nil {
		s.Mood = *p.Mood
	}
	if p.TickRate != nil {
		s.TickRate = *p.TickRate
	}
	if p.StartPaused != nil {
		s.StartPaused = *p.StartPaused
	}
}

func (p PerformancePatch) apply(s *PerformanceSettings) {
	if p.MaxFPS != nil {
		s.MaxFPS = *p.MaxFPS
	}
	if p.Quality != nil {
		s.Quality = *p.Quality
	}
	if p.Profiling != nil {
		s.Profiling = *p.Profiling
	}
	if p.MemoryLimitMB != nil {
		s.MemoryLimitMB = *p.MemoryLimitMB
	}
}

func (p VisualPatch) apply(s *VisualSettings) {
	if p.Theme != nil {
		s.Theme = *p.Theme
	}
	if p.Glow != nil {
		s.Glow = *p.Glow
	}
	if p.Particles != nil {
		s.Particles = *p.Particles
	}
	if p.Connections != nil {
		s.Connections = *p.Connections
	}
	if p.Grid != nil {
		s.Grid = *p.Grid
	}
	if p.Opacity != nil {
		s.Opacity = *p.Opacity
	}
}

func (p AudioPatch) apply(s *AudioSettings) {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Volume != nil {
		s.Volume = *p.Volume
	}
	if p.Spatial != nil {
		s.Spatial = *p.Spatial
	}
}

func (p InteractionPatch) apply(s *InteractionSettings) {
	if p.DragSensitivity != nil {
		s.DragSensitivity = *p.DragSensitivity
	}
	if p.SnapToGrid != nil {
		s.SnapToGrid = *p.SnapToGrid
	}
	if p.Keyboard != nil {
		s.Keyboard = *p.Keyboard
	}
	if p.Gestures != nil {
		s.Gestures = *p.Gestures
	}
	if p.Voice != nil {
		s.Voice = *p.Voice
	}
}
