package module

// PortType describes the direction of a module port.
type PortType string

const (
	PortInput         PortType = "input"
	PortOutput        PortType = "output"
	PortBidirectional PortType = "bidirectional"
)

// Port is a typed attachment point on a module. MaxConnections of 0 means
// unbounded; inputs default to 1.
type Port struct {
	ID                 string   `json:"id"`
	Type               PortType `json:"type"`
	DataType           string   `json:"data_type"`
	Position           Position `json:"position"`
	Description        string   `json:"description,omitempty"`
	IsActive           bool     `json:"is_active"`
	IsConnected        bool     `json:"is_connected"`
	MaxConnections     int      `json:"max_connections"`
	CurrentConnections []string `json:"current_connections"`
	SignalStrength     float64  `json:"signal_strength"`
}

// AtCapacity reports whether the port can accept no further connections.
func (p *Port) AtCapacity() bool {
	return p.MaxConnections > 0 && len(p.CurrentConnections) >= p.MaxConnections
}

// Attach records a connection on the port.
func (p *Port) Attach(connectionID string) {
	p.CurrentConnections = append(p.CurrentConnections, connectionID)
	p.IsConnected = true
}

// Detach removes a connection from the port, if present.
func (p *Port) Detach(connectionID string) {
	for i, id := range p.CurrentConnections {
		if id == connectionID {
			p.CurrentConnections = append(p.CurrentConnections[:i], p.CurrentConnections[i+1:]...)
			break
		}
	}
	p.IsConnected = len(p.CurrentConnections) > 0
}

// CanSend reports whether the port may act as a connection source.
func (p *Port) CanSend() bool {
	return p.Type == PortOutput || p.Type == PortBidirectional
}

// CanReceive reports whether the port may act as a connection target.
func (p *Port) CanReceive() bool {
	return p.Type == PortInput || p.Type == PortBidirectional
}
