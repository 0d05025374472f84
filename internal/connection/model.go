package connection

import "time"

// Connection links an output/bidirectional port on one module to an
// input/bidirectional port on another.
type Connection struct {
	ID             string    `json:"id"`
	SourceModuleID string    `json:"source_module_id"`
	SourcePortID   string    `json:"source_port_id"`
	TargetModuleID string    `json:"target_module_id"`
	TargetPortID   string    `json:"target_port_id"`
	DataType       string    `json:"data_type"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`

	// Progress is a looping 0→1 value advanced each tick, consumed by
	// renderers for flow animation.
	Progress float64 `json:"progress"`
}

// Touches reports whether the connection references the given module.
func (c *Connection) Touches(moduleID string) bool {
	return c.SourceModuleID == moduleID || c.TargetModuleID == moduleID
}
