package layout

import (
	"time"

	"github.com/driftlab/pulseboard/internal/module"
)

// DefaultName is the well-known layout name loaded at dashboard
// initialization when present.
const DefaultName = "default"

// ModuleSnapshot is the persisted shape of a module instance: placement and
// configuration, not runtime state.
type ModuleSnapshot struct {
	Type     string          `json:"type"`
	Position module.Position `json:"position"`
	Size     module.Size     `json:"size"`
	Config   map[string]any  `json:"config,omitempty"`
}

// ConnectionSnapshot records a connection by port index so it can be rewired
// against freshly materialized ports on load.
type ConnectionSnapshot struct {
	SourceModule int `json:"source_module"`
	SourcePort   int `json:"source_port"`
	TargetModule int `json:"target_module"`
	TargetPort   int `json:"target_port"`
}

// Layout is a named, frozen arrangement of modules and connections.
type Layout struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Modules     []ModuleSnapshot     `json:"modules"`
	Connections []ConnectionSnapshot `json:"connections"`
	CreatedAt   time.Time            `json:"created"`
}

// Summary is a lightweight representation for listing.
type Summary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ModuleCount int       `json:"module_count"`
	CreatedAt   time.Time `json:"created"`
}
