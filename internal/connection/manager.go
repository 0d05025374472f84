// Package connection owns the set of active port-to-port connections
// between module instances.
package connection

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/driftlab/pulseboard/internal/module"
	"github.com/google/uuid"
)

// PortResolver looks up a live port on a live module. The dashboard core
// implements this over its module map.
type PortResolver interface {
	ResolvePort(moduleID, portID string) (*module.Port, bool)
}

// flowRate is how many full animation cycles a connection completes per
// second.
const flowRate = 0.5

// Manager creates, validates, and removes connections, and advances their
// animation state once per tick. Not safe for concurrent use on its own;
// the owning core serializes access.
type Manager struct {
	resolver PortResolver
	conns    map[string]*Connection
	logger   *slog.Logger
}

// NewManager creates an empty manager.
func NewManager(resolver PortResolver, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		resolver: resolver,
		conns:    make(map[string]*Connection),
		logger:   logger,
	}
}

// Create validates both endpoints and records the connection, incrementing
// both ports' connection lists. State is left unchanged on any failure.
func (m *Manager) Create(sourceModuleID, sourcePortID, targetModuleID, targetPortID string) (*Connection, error) {
	if sourceModuleID == targetModuleID {
		return nil, ErrSelfConnection
	}

	src, ok := m.resolver.ResolvePort(sourceModuleID, sourcePortID)
	if !ok {
		return nil, fmt.Errorf("%w: %s on module %s", ErrPortNotFound, sourcePortID, sourceModuleID)
	}
	dst, ok := m.resolver.ResolvePort(targetModuleID, targetPortID)
	if !ok {
		return nil, fmt.Errorf("%w: %s on module %s", ErrPortNotFound, targetPortID, targetModuleID)
	}

	if !src.CanSend() || !dst.CanReceive() {
		return nil, ErrInvalidDirection
	}
	if src.DataType != dst.DataType {
		return nil, fmt.Errorf("%w: %s -> %s", ErrIncompatiblePorts, src.DataType, dst.DataType)
	}
	if src.AtCapacity() {
		return nil, fmt.Errorf("%w: source port %s", ErrPortCapacity, sourcePortID)
	}
	if dst.AtCapacity() {
		return nil, fmt.Errorf("%w: target port %s", ErrPortCapacity, targetPortID)
	}

	conn := &Connection{
		ID:             uuid.NewString(),
		SourceModuleID: sourceModuleID,
		SourcePortID:   sourcePortID,
		TargetModuleID: targetModuleID,
		TargetPortID:   targetPortID,
		DataType:       src.DataType,
		IsActive:       true,
		CreatedAt:      time.Now(),
	}
	src.Attach(conn.ID)
	dst.Attach(conn.ID)
	m.conns[conn.ID] = conn

	m.logger.Debug("connection created",
		"connection", conn.ID,
		"source", sourceModuleID,
		"target", targetModuleID,
		"data_type", conn.DataType)
	return conn, nil
}

// Remove deletes a connection and detaches both ports. Removing an id that
// no longer exists is a no-op.
func (m *Manager) Remove(id string) {
	conn, ok := m.conns[id]
	if !ok {
		return
	}
	if port, ok := m.resolver.ResolvePort(conn.SourceModuleID, conn.SourcePortID); ok {
		port.Detach(id)
	}
	if port, ok := m.resolver.ResolvePort(conn.TargetModuleID, conn.TargetPortID); ok {
		port.Detach(id)
	}
	delete(m.conns, id)
}

// RemoveForModule removes every connection touching the module and returns
// the removed ids.
func (m *Manager) RemoveForModule(moduleID string) []string {
	var removed []string
	for id, conn := range m.conns {
		if conn.Touches(moduleID) {
			removed = append(removed, id)
		}
	}
	for _, id := range removed {
		m.Remove(id)
	}
	return removed
}

// Get returns a connection by id.
func (m *Manager) Get(id string) (*Connection, bool) {
	conn, ok := m.conns[id]
	return conn, ok
}

// All returns every connection, ordered by creation time.
func (m *Manager) All() []*Connection {
	out := make([]*Connection, 0, len(m.conns))
	for _, conn := range m.conns {
		out = append(out, conn)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// ForModule returns the connections touching the given module.
func (m *Manager) ForModule(moduleID string) []*Connection {
	var out []*Connection
	for _, conn := range m.All() {
		if conn.Touches(moduleID) {
			out = append(out, conn)
		}
	}
	return out
}

// Count returns the number of active connections.
func (m *Manager) Count() int {
	return len(m.conns)
}

// CountForModule returns how many connections touch the given module.
func (m *Manager) CountForModule(moduleID string) int {
	n := 0
	for _, conn := range m.conns {
		if conn.Touches(moduleID) {
			n++
		}
	}
	return n
}

// Update advances each connection's looping animation progress by dt and
// mirrors it onto the endpoint ports' signal strength.
func (m *Manager) Update(dt time.Duration) {
	step := dt.Seconds() * flowRate
	for _, conn := range m.conns {
		conn.Progress = math.Mod(conn.Progress+step, 1.0)

		strength := 0.5 + 0.5*math.Sin(conn.Progress*2*math.Pi)
		if port, ok := m.resolver.ResolvePort(conn.SourceModuleID, conn.SourcePortID); ok {
			port.SignalStrength = strength
		}
		if port, ok := m.resolver.ResolvePort(conn.TargetModuleID, conn.TargetPortID); ok {
			port.SignalStrength = strength
		}
	}
}

// RevalidateForModule reconciles connections after a module's port arrays
// are replaced: connections whose endpoint ports no longer resolve are
// dropped, and surviving connections are re-attached to the replacement port
// objects so capacity bookkeeping stays accurate when an id is reused.
// Returns removed ids.
func (m *Manager) RevalidateForModule(moduleID string) []string {
	var stale []string
	for id, conn := range m.conns {
		if !conn.Touches(moduleID) {
			continue
		}
		_, srcOK := m.resolver.ResolvePort(conn.SourceModuleID, conn.SourcePortID)
		_, dstOK := m.resolver.ResolvePort(conn.TargetModuleID, conn.TargetPortID)
		if !srcOK || !dstOK {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		m.Remove(id)
	}

	for id, conn := range m.conns {
		if !conn.Touches(moduleID) {
			continue
		}
		if port, ok := m.resolver.ResolvePort(conn.SourceModuleID, conn.SourcePortID); ok {
			reattach(port, id)
		}
		if port, ok := m.resolver.ResolvePort(conn.TargetModuleID, conn.TargetPortID); ok {
			reattach(port, id)
		}
	}
	return stale
}

// reattach records the connection on the port unless already present.
func reattach(port *module.Port, connectionID string) {
	for _, id := range port.CurrentConnections {
		if id == connectionID {
			return
		}
	}
	port.Attach(connectionID)
}
