package dashboard

import (
	"fmt"

	"github.com/driftlab/pulseboard/internal/connection"
	"github.com/driftlab/pulseboard/internal/event"
)

// CreateConnection links an output/bidirectional port on one module to an
// input/bidirectional port on another.
func (c *Core) CreateConnection(sourceModuleID, sourcePortID, targetModuleID, targetPortID string) (*connection.Connection, error) {
	c.mu.Lock()
	if _, ok := c.modules[sourceModuleID]; !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, sourceModuleID)
	}
	if _, ok := c.modules[targetModuleID]; !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, targetModuleID)
	}

	conn, err := c.conns.Create(sourceModuleID, sourcePortID, targetModuleID, targetPortID)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.bus.Publish(event.Event{Kind: event.ConnectionStateChanged, ConnectionID: conn.ID, Payload: conn})
	return conn, nil
}

// RemoveConnection deletes a connection; removing an unknown id is a no-op.
func (c *Core) RemoveConnection(id string) {
	c.mu.Lock()
	_, existed := c.conns.Get(id)
	c.conns.Remove(id)
	c.mu.Unlock()

	if existed {
		c.bus.Publish(event.Event{Kind: event.ConnectionStateChanged, ConnectionID: id})
	}
}

// Connections returns all connections, or only those touching moduleID when
// it is non-empty.
func (c *Core) Connections(moduleID string) []*connection.Connection {
	c.mu.Lock()
	defer c.mu.Unlock()
	if moduleID == "" {
		return c.conns.All()
	}
	return c.conns.ForModule(moduleID)
}
