package registry

import (
	"github.com/driftlab/pulseboard/internal/module"
)

// builtinUnit is the placeholder unit for builtin types. Hosts that render
// for real replace these via Register with their own definitions.
type builtinUnit struct {
	Name string
}

// preloadTypes are eagerly resolved at dashboard initialization; the rest
// load on first AddModule.
var preloadTypes = []string{"scup-gauge", "neural-monitor", "mood-orb"}

func builtinDefinitions() []*Definition {
	return []*Definition{
		{
			Type:        "scup-gauge",
			Title:       "SCUP Gauge",
			Description: "Radial gauge tracking system coherence under pressure",
			Category:    "monitor",
			Unit:        &builtinUnit{Name: "scup-gauge"},
			DefaultSize: module.Size{Width: 220, Height: 220, MinWidth: 140, MinHeight: 140},
			Ports: []PortSpec{
				{Type: module.PortInput, DataType: "scalar", Position: module.Position{X: 0, Y: 0.5}},
				{Type: module.PortOutput, DataType: "scalar", Position: module.Position{X: 1, Y: 0.5}},
			},
			Icon:  "gauge",
			Color: "#4fc3f7",
			Tags:  []string{"scup", "coherence", "gauge"},
		},
		{
			Type:        "entropy-field",
			Title:       "Entropy Field",
			Description: "Particle field whose turbulence follows global entropy",
			Category:    "visualization",
			Loader: func() (Unit, error) {
				return &builtinUnit{Name: "entropy-field"}, nil
			},
			DefaultConfig: map[string]any{"particle_count": 400},
			DefaultSize:   module.Size{Width: 360, Height: 280, MinWidth: 200, MinHeight: 160},
			Ports: []PortSpec{
				{Type: module.PortInput, DataType: "scalar", Position: module.Position{X: 0, Y: 0.5}},
			},
			Icon:  "scatter",
			Color: "#ab47bc",
			Tags:  []string{"entropy", "particles"},
		},
		{
			Type:        "neural-monitor",
			Title:       "Neural Activity Monitor",
			Description: "Scrolling trace of neural activity and unity",
			Category:    "monitor",
			Unit:        &builtinUnit{Name: "neural-monitor"},
			DefaultConfig: map[string]any{
				"window_seconds": 60,
				"trace_color":    "#69f0ae",
			},
			DefaultSize: module.Size{Width: 420, Height: 240, MinWidth: 240, MinHeight: 140},
			Ports: []PortSpec{
				{Type: module.PortInput, DataType: "timeseries", Position: module.Position{X: 0, Y: 0.3}},
				{Type: module.PortOutput, DataType: "timeseries", Position: module.Position{X: 1, Y: 0.3}},
				{Type: module.PortOutput, DataType: "scalar", Position: module.Position{X: 1, Y: 0.7}},
			},
			Icon:  "activity",
			Color: "#69f0ae",
			Tags:  []string{"neural", "trace", "timeseries"},
		},
		{
			Type:        "mood-orb",
			Title:       "Mood Orb",
			Description: "Ambient orb tinted by the current mood",
			Category:    "visualization",
			Unit:        &builtinUnit{Name: "mood-orb"},
			DefaultSize: module.Size{Width: 180, Height: 180, MinWidth: 120, MinHeight: 120},
			Ports: []PortSpec{
				{Type: module.PortInput, DataType: "mood", Position: module.Position{X: 0.5, Y: 0}},
			},
			Icon:  "orb",
			Color: "#ffb74d",
			Tags:  []string{"mood", "ambient"},
		},
		{
			Type:        "event-terminal",
			Title:       "Event Terminal",
			Description: "Scrolling log of dashboard and consciousness events",
			Category:    "terminal",
			Loader: func() (Unit, error) {
				return &builtinUnit{Name: "event-terminal"}, nil
			},
			DefaultConfig: map[string]any{"max_lines": 500},
			DefaultSize:   module.Size{Width: 480, Height: 320, MinWidth: 280, MinHeight: 180},
			Ports: []PortSpec{
				{Type: module.PortInput, DataType: "events", Position: module.Position{X: 0, Y: 0.5}, MaxConnections: 4},
			},
			Icon:  "terminal",
			Color: "#b0bec5",
			Tags:  []string{"log", "events", "terminal"},
		},
		{
			Type:        "unity-scene",
			Title:       "Unity Scene",
			Description: "3-D scene whose cohesion reflects system unity",
			Category:    "3d",
			Loader: func() (Unit, error) {
				return &builtinUnit{Name: "unity-scene"}, nil
			},
			DefaultConfig: map[string]any{"camera_orbit": true},
			DefaultSize:   module.Size{Width: 520, Height: 400, MinWidth: 320, MinHeight: 240},
			Ports: []PortSpec{
				{Type: module.PortBidirectional, DataType: "scalar", Position: module.Position{X: 0, Y: 0.5}},
			},
			Icon:  "cube",
			Color: "#81d4fa",
			Tags:  []string{"3d", "unity", "scene"},
		},
	}
}
