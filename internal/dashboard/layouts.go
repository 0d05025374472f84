package dashboard

import (
	"context"
	"sort"

	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/module"
)

// SaveLayout snapshots the live module and connection set under a name.
// The snapshot records placement and config, not runtime state; connections
// are stored by module and port index so they can be rewired against the
// freshly materialized ports on load.
func (c *Core) SaveLayout(ctx context.Context, name, description string) (*layout.Layout, error) {
	c.mu.Lock()

	mods := c.moduleListLocked()
	sort.Slice(mods, func(i, j int) bool { return mods[i].ZIndex < mods[j].ZIndex })

	indexByID := make(map[string]int, len(mods))
	snapshots := make([]layout.ModuleSnapshot, 0, len(mods))
	for i, mod := range mods {
		indexByID[mod.ID] = i
		snapshots = append(snapshots, layout.ModuleSnapshot{
			Type:     mod.Type,
			Position: mod.Position,
			Size:     mod.Size,
			Config:   mod.Config,
		})
	}

	var connections []layout.ConnectionSnapshot
	for _, conn := range c.conns.All() {
		srcMod, srcOK := indexByID[conn.SourceModuleID]
		dstMod, dstOK := indexByID[conn.TargetModuleID]
		if !srcOK || !dstOK {
			continue
		}
		srcPort := c.portIndexLocked(conn.SourceModuleID, conn.SourcePortID)
		dstPort := c.portIndexLocked(conn.TargetModuleID, conn.TargetPortID)
		if srcPort < 0 || dstPort < 0 {
			continue
		}
		connections = append(connections, layout.ConnectionSnapshot{
			SourceModule: srcMod,
			SourcePort:   srcPort,
			TargetModule: dstMod,
			TargetPort:   dstPort,
		})
	}
	c.mu.Unlock()

	return c.layouts.Save(ctx, layout.SaveRequest{
		Name:        name,
		Description: description,
		Modules:     snapshots,
		Connections: connections,
	})
}

// LoadLayout replaces the entire live module and connection set with the
// layout's snapshot.
func (c *Core) LoadLayout(ctx context.Context, id string) error {
	l, err := c.layouts.Get(ctx, id)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLayoutLocked(l)
}

func (c *Core) applyLayoutLocked(l *layout.Layout) error {
	c.clearWorkspaceLocked()

	restored := make([]*module.Module, len(l.Modules))
	for i, snap := range l.Modules {
		pos := snap.Position
		size := snap.Size
		mod, err := c.addModuleLocked(snap.Type, &pos, snap.Config, &size)
		if err != nil {
			// Types unregistered since the save, or failing setup, are
			// skipped; the rest of the layout still loads.
			c.logger.Warn("skipping layout module", "layout", l.ID, "type", snap.Type, "error", err)
			continue
		}
		restored[i] = mod
	}

	for _, snap := range l.Connections {
		src := moduleAt(restored, snap.SourceModule)
		dst := moduleAt(restored, snap.TargetModule)
		if src == nil || dst == nil {
			continue
		}
		srcPort := portAt(src, snap.SourcePort)
		dstPort := portAt(dst, snap.TargetPort)
		if srcPort == nil || dstPort == nil {
			continue
		}
		if _, err := c.conns.Create(src.ID, srcPort.ID, dst.ID, dstPort.ID); err != nil {
			c.logger.Warn("skipping layout connection", "layout", l.ID, "error", err)
		}
	}

	c.logger.Info("layout loaded", "layout", l.ID, "name", l.Name, "modules", len(c.modules), "connections", c.conns.Count())
	return nil
}

// Layouts lists saved layouts, newest first.
func (c *Core) Layouts(ctx context.Context) ([]layout.Summary, error) {
	return c.layouts.List(ctx)
}

// DeleteLayout removes a saved layout.
func (c *Core) DeleteLayout(ctx context.Context, id string) error {
	return c.layouts.Delete(ctx, id)
}

// portIndexLocked returns the port's position in the module's combined
// input-then-output port list, or -1.
func (c *Core) portIndexLocked(moduleID, portID string) int {
	mod, ok := c.modules[moduleID]
	if !ok {
		return -1
	}
	idx := 0
	for _, p := range mod.InputPorts {
		if p.ID == portID {
			return idx
		}
		idx++
	}
	for _, p := range mod.OutputPorts {
		if p.ID == portID {
			return idx
		}
		idx++
	}
	return -1
}

// portAt indexes the combined input-then-output port list.
func portAt(mod *module.Module, idx int) *module.Port {
	if idx < 0 {
		return nil
	}
	if idx < len(mod.InputPorts) {
		return mod.InputPorts[idx]
	}
	idx -= len(mod.InputPorts)
	if idx < len(mod.OutputPorts) {
		return mod.OutputPorts[idx]
	}
	return nil
}

func moduleAt(mods []*module.Module, idx int) *module.Module {
	if idx < 0 || idx >= len(mods) {
		return nil
	}
	return mods[idx]
}
