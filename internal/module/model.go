package module

import (
	"time"

	"github.com/driftlab/pulseboard/internal/consciousness"
)

// Status represents the runtime status of a module instance.
type Status string

const (
	StatusLoading Status = "loading"
	StatusActive  Status = "active"
	StatusIdle    Status = "idle"
	StatusError   Status = "error"
)

// Position places a module in workspace coordinates. Z is reserved for
// modules that render depth (3-D scenes); flat modules leave it at zero.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z,omitempty" yaml:"z,omitempty"`
}

// Size is a module's rendered extent plus its resize floor.
type Size struct {
	Width     float64 `json:"width" yaml:"width"`
	Height    float64 `json:"height" yaml:"height"`
	MinWidth  float64 `json:"min_width,omitempty" yaml:"min_width,omitempty"`
	MinHeight float64 `json:"min_height,omitempty" yaml:"min_height,omitempty"`
}

// State tracks a module's runtime condition and its last view of the
// shared consciousness state.
type State struct {
	Status        Status              `json:"status"`
	LastUpdate    time.Time           `json:"last_update"`
	Error         string              `json:"error,omitempty"`
	Consciousness consciousness.State `json:"consciousness"`
}

// Lifecycle records instance milestones and failure counters.
type Lifecycle struct {
	Created      time.Time  `json:"created"`
	Activated    *time.Time `json:"activated,omitempty"`
	Deactivated  *time.Time `json:"deactivated,omitempty"`
	ErrorCount   int        `json:"error_count"`
	RestartCount int        `json:"restart_count"`
}

// Metrics holds per-module resource estimates sampled once per tick.
type Metrics struct {
	CPU             float64 `json:"cpu"`
	Memory          float64 `json:"memory"`
	RenderTime      float64 `json:"render_time"`
	UpdateFrequency float64 `json:"update_frequency"`
	DataProcessed   float64 `json:"data_processed"`
	ConnectionCount int     `json:"connection_count"`
}

// Module is a live, positioned instance of a registered visualization type.
// Instances are owned exclusively by the dashboard core; everything else
// holds them only transiently.
type Module struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Title    string   `json:"title"`
	Position Position `json:"position"`
	Size     Size     `json:"size"`
	ZIndex   int      `json:"z_index"`

	IsActive    bool `json:"is_active"`
	IsMinimized bool `json:"is_minimized"`
	IsMaximized bool `json:"is_maximized"`
	IsLocked    bool `json:"is_locked"`
	IsDragging  bool `json:"is_dragging"`
	IsResizing  bool `json:"is_resizing"`

	// Derived visual scalars, each in [0,1], recomputed every tick from
	// the shared consciousness state.
	GlowIntensity      float64 `json:"glow_intensity"`
	BreathingIntensity float64 `json:"breathing_intensity"`
	ParticleDensity    float64 `json:"particle_density"`

	Config map[string]any `json:"config,omitempty"`
	State  State          `json:"state"`

	InputPorts  []*Port `json:"input_ports"`
	OutputPorts []*Port `json:"output_ports"`

	Lifecycle Lifecycle `json:"lifecycle"`
	Metrics   Metrics   `json:"metrics"`
}

// Port returns the port with the given id from either port list.
func (m *Module) Port(id string) (*Port, bool) {
	for _, p := range m.InputPorts {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range m.OutputPorts {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Intersects reports whether the module's rectangle overlaps the given one.
// Axis-aligned bounding boxes overlap unless one is entirely to the left,
// right, above, or below the other.
func (m *Module) Intersects(pos Position, size Size) bool {
	if m.Position.X+m.Size.Width <= pos.X || pos.X+size.Width <= m.Position.X {
		return false
	}
	if m.Position.Y+m.Size.Height <= pos.Y || pos.Y+size.Height <= m.Position.Y {
		return false
	}
	return true
}
