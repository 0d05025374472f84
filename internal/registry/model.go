package registry

import (
	"github.com/driftlab/pulseboard/internal/module"
)

// Unit is the opaque renderable thing a module type resolves to. The core
// never looks inside it; it is handed to whatever renders the module.
type Unit = any

// Loader produces a unit on first use, allowing expensive modules to be
// deferred until a user actually adds one.
type Loader func() (Unit, error)

// PortSpec is the template a live port is materialized from.
type PortSpec struct {
	Type           module.PortType `json:"type" yaml:"type"`
	DataType       string          `json:"data_type" yaml:"data_type"`
	Position       module.Position `json:"position" yaml:"position"`
	MaxConnections int             `json:"max_connections,omitempty" yaml:"max_connections,omitempty"`
	Description    string          `json:"description,omitempty" yaml:"description,omitempty"`
}

// Definition is the immutable template a module type is instantiated from.
type Definition struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`

	// Exactly one of Unit and Loader is normally set; Unit wins when both
	// are present. Types namespaced "external/" may carry neither and are
	// resolved by the host application.
	Unit   Unit   `json:"-"`
	Loader Loader `json:"-"`

	DefaultConfig map[string]any `json:"default_config,omitempty"`
	DefaultSize   module.Size    `json:"default_size"`
	Ports         []PortSpec     `json:"ports,omitempty"`

	Icon    string   `json:"icon,omitempty"`
	Color   string   `json:"color,omitempty"`
	Tags    []string `json:"tags,omitempty"`
	Version string   `json:"version,omitempty"`
}

// ExternalNamespace marks module types whose unit is supplied by the host
// rather than the registry.
const ExternalNamespace = "external/"
