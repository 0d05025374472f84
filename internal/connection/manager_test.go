package connection

import (
	"testing"
	"time"

	"github.com/driftlab/pulseboard/internal/module"
	"github.com/stretchr/testify/require"
)

// mapResolver backs tests with a plain module map, the same shape the
// dashboard core uses.
type mapResolver struct {
	modules map[string]*module.Module
}

func (r *mapResolver) ResolvePort(moduleID, portID string) (*module.Port, bool) {
	mod, ok := r.modules[moduleID]
	if !ok {
		return nil, false
	}
	return mod.Port(portID)
}

func newTestModule(id string) *module.Module {
	return &module.Module{
		ID: id,
		InputPorts: []*module.Port{
			{ID: id + "-in", Type: module.PortInput, DataType: "scalar", MaxConnections: 1},
		},
		OutputPorts: []*module.Port{
			{ID: id + "-out", Type: module.PortOutput, DataType: "scalar"},
		},
	}
}

func newTestManager(mods ...*module.Module) (*Manager, *mapResolver) {
	resolver := &mapResolver{modules: make(map[string]*module.Module)}
	for _, m := range mods {
		resolver.modules[m.ID] = m
	}
	return NewManager(resolver, nil), resolver
}

func TestManager_CreateAttachesBothPorts(t *testing.T) {
	m1, m2 := newTestModule("m1"), newTestModule("m2")
	mgr, _ := newTestManager(m1, m2)

	conn, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)
	require.Equal(t, "scalar", conn.DataType)
	require.True(t, conn.IsActive)

	src, _ := m1.Port("m1-out")
	dst, _ := m2.Port("m2-in")
	require.Equal(t, []string{conn.ID}, src.CurrentConnections)
	require.Equal(t, []string{conn.ID}, dst.CurrentConnections)
	require.True(t, src.IsConnected)
	require.True(t, dst.IsConnected)
}

func TestManager_CreateValidation(t *testing.T) {
	m1, m2 := newTestModule("m1"), newTestModule("m2")
	mgr, _ := newTestManager(m1, m2)

	_, err := mgr.Create("m1", "m1-out", "m1", "m1-in")
	require.ErrorIs(t, err, ErrSelfConnection)

	_, err = mgr.Create("m1", "missing", "m2", "m2-in")
	require.ErrorIs(t, err, ErrPortNotFound)

	_, err = mgr.Create("ghost", "m1-out", "m2", "m2-in")
	require.ErrorIs(t, err, ErrPortNotFound)

	// Input cannot act as a source.
	_, err = mgr.Create("m1", "m1-in", "m2", "m2-in")
	require.ErrorIs(t, err, ErrInvalidDirection)

	// Data type mismatch.
	dst, _ := m2.Port("m2-in")
	dst.DataType = "timeseries"
	_, err = mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.ErrorIs(t, err, ErrIncompatiblePorts)
	require.Zero(t, mgr.Count(), "failed creates must not record state")
}

func TestManager_CapacityInvariant(t *testing.T) {
	m1, m2, m3 := newTestModule("m1"), newTestModule("m2"), newTestModule("m3")
	mgr, _ := newTestManager(m1, m2, m3)

	_, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)

	// m2's input has MaxConnections 1.
	_, err = mgr.Create("m3", "m3-out", "m2", "m2-in")
	require.ErrorIs(t, err, ErrPortCapacity)

	dst, _ := m2.Port("m2-in")
	require.Len(t, dst.CurrentConnections, 1, "rejected create must leave port state unchanged")

	// Unbounded output fans out freely.
	_, err = mgr.Create("m1", "m1-out", "m3", "m3-in")
	require.NoError(t, err)
}

func TestManager_RemoveIsIdempotent(t *testing.T) {
	m1, m2 := newTestModule("m1"), newTestModule("m2")
	mgr, _ := newTestManager(m1, m2)

	conn, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)

	mgr.Remove(conn.ID)
	require.Zero(t, mgr.Count())
	src, _ := m1.Port("m1-out")
	require.Empty(t, src.CurrentConnections)
	require.False(t, src.IsConnected)

	// Second remove is a no-op.
	mgr.Remove(conn.ID)
	require.Zero(t, mgr.Count())
}

func TestManager_RemoveForModuleCascades(t *testing.T) {
	m1, m2, m3 := newTestModule("m1"), newTestModule("m2"), newTestModule("m3")
	mgr, _ := newTestManager(m1, m2, m3)

	_, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)
	_, err = mgr.Create("m1", "m1-out", "m3", "m3-in")
	require.NoError(t, err)
	_, err = mgr.Create("m2", "m2-out", "m3", "m3-in")
	require.ErrorIs(t, err, ErrPortCapacity)

	removed := mgr.RemoveForModule("m1")
	require.Len(t, removed, 2)
	require.Empty(t, mgr.ForModule("m1"))
	require.Empty(t, mgr.ForModule("m2"))
}

func TestManager_UpdateAdvancesProgress(t *testing.T) {
	m1, m2 := newTestModule("m1"), newTestModule("m2")
	mgr, _ := newTestManager(m1, m2)

	conn, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)
	require.Zero(t, conn.Progress)

	mgr.Update(500 * time.Millisecond)
	require.InDelta(t, 0.25, conn.Progress, 1e-9)

	// Progress loops rather than saturating.
	mgr.Update(2 * time.Second)
	require.Less(t, conn.Progress, 1.0)
	require.GreaterOrEqual(t, conn.Progress, 0.0)

	src, _ := m1.Port("m1-out")
	require.NotZero(t, src.SignalStrength)
}

func TestManager_RevalidateReattachesReplacedPorts(t *testing.T) {
	m1, m2, m3 := newTestModule("m1"), newTestModule("m2"), newTestModule("m3")
	mgr, _ := newTestManager(m1, m2, m3)

	conn, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)

	// Replace m2's input with a fresh port object reusing the same id; the
	// surviving connection must carry over to the new object.
	m2.InputPorts = []*module.Port{
		{ID: "m2-in", Type: module.PortInput, DataType: "scalar", MaxConnections: 1},
	}

	removed := mgr.RevalidateForModule("m2")
	require.Empty(t, removed)
	require.Equal(t, 1, mgr.Count())

	fresh, ok := m2.Port("m2-in")
	require.True(t, ok)
	require.Equal(t, []string{conn.ID}, fresh.CurrentConnections)
	require.True(t, fresh.IsConnected)

	// The re-attached max-1 input is at capacity again.
	_, err = mgr.Create("m3", "m3-out", "m2", "m2-in")
	require.ErrorIs(t, err, ErrPortCapacity)
	require.Equal(t, 1, mgr.Count())
}

func TestManager_RevalidateForModule(t *testing.T) {
	m1, m2 := newTestModule("m1"), newTestModule("m2")
	mgr, _ := newTestManager(m1, m2)

	conn, err := mgr.Create("m1", "m1-out", "m2", "m2-in")
	require.NoError(t, err)

	// Replacing m2's ports orphans the connection's target.
	m2.InputPorts = []*module.Port{
		{ID: "m2-in-v2", Type: module.PortInput, DataType: "scalar", MaxConnections: 1},
	}

	removed := mgr.RevalidateForModule("m2")
	require.Equal(t, []string{conn.ID}, removed)
	require.Zero(t, mgr.Count())
}
