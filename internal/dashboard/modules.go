package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/driftlab/pulseboard/internal/event"
	"github.com/driftlab/pulseboard/internal/module"
	"github.com/driftlab/pulseboard/internal/registry"
	"github.com/google/uuid"
)

// AddModule instantiates a registered type. A nil position requests
// automatic non-overlapping placement; an explicit one is snapped to the
// grid when grid snap is enabled.
func (c *Core) AddModule(moduleType string, pos *module.Position, config map[string]any) (*module.Module, error) {
	c.mu.Lock()
	mod, err := c.addModuleLocked(moduleType, pos, config, nil)
	c.mu.Unlock()

	if err != nil {
		if mod != nil {
			c.bus.Publish(event.Event{Kind: event.ModuleStateChanged, ModuleID: mod.ID, Payload: mod.State})
		}
		return mod, err
	}

	c.bus.Publish(event.Event{Kind: event.ModuleAdded, ModuleID: mod.ID, Payload: mod})
	return mod, nil
}

// addModuleLocked does the real work. size overrides the definition's
// default when restoring a layout. On setup failure the instance stays in
// the map with status error so it can be inspected or restarted; the error
// is still returned to fail the operation visibly.
func (c *Core) addModuleLocked(moduleType string, pos *module.Position, config map[string]any, size *module.Size) (*module.Module, error) {
	def, err := c.registry.Definition(moduleType)
	if err != nil {
		return nil, err
	}

	modSize := def.DefaultSize
	if size != nil {
		modSize = *size
	}

	var position module.Position
	if pos == nil {
		position = c.findOptimalPosition(modSize)
	} else {
		position = c.snapPosition(*pos)
	}

	now := time.Now()
	mod := &module.Module{
		ID:          uuid.NewString(),
		Type:        def.Type,
		Title:       def.Title,
		Position:    position,
		Size:        modSize,
		ZIndex:      c.nextZIndex(),
		Config:      mergeConfig(def.DefaultConfig, config),
		State:       module.State{Status: module.StatusLoading, LastUpdate: now, Consciousness: c.mind.Snapshot()},
		InputPorts:  materializePorts(def.Ports, module.PortInput),
		OutputPorts: materializePorts(def.Ports, module.PortOutput, module.PortBidirectional),
		Lifecycle:   module.Lifecycle{Created: now},
	}
	c.modules[mod.ID] = mod

	if _, err := c.registry.Load(moduleType); err != nil {
		mod.State.Status = module.StatusError
		mod.State.Error = err.Error()
		mod.Lifecycle.ErrorCount++
		c.logger.Error("module setup failed", "module", mod.ID, "type", moduleType, "error", err)
		return mod, fmt.Errorf("adding module %s: %w", moduleType, err)
	}

	mod.State.Status = module.StatusActive
	mod.IsActive = true
	activated := time.Now()
	mod.Lifecycle.Activated = &activated
	applyVisuals(mod, c.mind.Snapshot(), activated)

	c.logger.Debug("module added", "module", mod.ID, "type", moduleType, "x", position.X, "y", position.Y, "z", mod.ZIndex)
	return mod, nil
}

// RemoveModule tears down the module's connections, marks it idle, and
// deletes it.
func (c *Core) RemoveModule(id string) error {
	c.mu.Lock()
	mod, ok := c.modules[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}

	c.conns.RemoveForModule(id)

	now := time.Now()
	mod.State.Status = module.StatusIdle
	mod.IsActive = false
	mod.Lifecycle.Deactivated = &now
	delete(c.modules, id)
	c.mu.Unlock()

	c.logger.Debug("module removed", "module", id, "type", mod.Type)
	c.bus.Publish(event.Event{Kind: event.ModuleRemoved, ModuleID: id})
	return nil
}

// StateUpdate patches a module's runtime state; nil fields are untouched.
type StateUpdate struct {
	Status *module.Status
	Error  *string
}

// Update is a partial module update. Port slices, when non-nil, replace the
// existing arrays and trigger connection revalidation.
type Update struct {
	Position    *module.Position
	Size        *module.Size
	ZIndex      *int
	Config      map[string]any
	IsActive    *bool
	IsMinimized *bool
	IsMaximized *bool
	IsLocked    *bool
	IsDragging  *bool
	IsResizing  *bool
	State       *StateUpdate
	InputPorts  []*module.Port
	OutputPorts []*module.Port
}

// UpdateModule shallow-merges the update. State is merged, never replaced,
// and LastUpdate is refreshed on every call.
func (c *Core) UpdateModule(id string, update Update) (*module.Module, error) {
	c.mu.Lock()
	mod, ok := c.modules[id]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}

	if update.Position != nil {
		mod.Position = c.snapPosition(*update.Position)
	}
	if update.Size != nil {
		mod.Size = *update.Size
	}
	if update.ZIndex != nil {
		mod.ZIndex = *update.ZIndex
	}
	if update.Config != nil {
		mod.Config = mergeConfig(mod.Config, update.Config)
	}
	applyFlag(&mod.IsActive, update.IsActive)
	applyFlag(&mod.IsMinimized, update.IsMinimized)
	applyFlag(&mod.IsMaximized, update.IsMaximized)
	applyFlag(&mod.IsLocked, update.IsLocked)
	applyFlag(&mod.IsDragging, update.IsDragging)
	applyFlag(&mod.IsResizing, update.IsResizing)

	if update.State != nil {
		if update.State.Status != nil {
			mod.State.Status = *update.State.Status
		}
		if update.State.Error != nil {
			mod.State.Error = *update.State.Error
		}
	}
	mod.State.LastUpdate = time.Now()

	portsChanged := update.InputPorts != nil || update.OutputPorts != nil
	if update.InputPorts != nil {
		mod.InputPorts = update.InputPorts
	}
	if update.OutputPorts != nil {
		mod.OutputPorts = update.OutputPorts
	}
	if portsChanged {
		if stale := c.conns.RevalidateForModule(id); len(stale) > 0 {
			c.logger.Debug("connections dropped after port update", "module", id, "count", len(stale))
		}
	}
	c.mu.Unlock()

	c.bus.Publish(event.Event{Kind: event.ModuleUpdated, ModuleID: id, Payload: update})
	return mod, nil
}

// RestartModule clears a module's error state and reloads its unit,
// bumping the restart counter.
func (c *Core) RestartModule(id string) error {
	c.mu.Lock()
	mod, ok := c.modules[id]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}

	mod.Lifecycle.RestartCount++
	mod.State.Status = module.StatusLoading
	mod.State.Error = ""

	var err error
	if _, err = c.registry.Load(mod.Type); err != nil {
		mod.State.Status = module.StatusError
		mod.State.Error = err.Error()
		mod.Lifecycle.ErrorCount++
	} else {
		mod.State.Status = module.StatusActive
		mod.IsActive = true
		activated := time.Now()
		mod.Lifecycle.Activated = &activated
	}
	state := mod.State
	c.mu.Unlock()

	c.bus.Publish(event.Event{Kind: event.ModuleStateChanged, ModuleID: id, Payload: state})
	if err != nil {
		return fmt.Errorf("restarting module %s: %w", id, err)
	}
	return nil
}

// Module returns a live module by id.
func (c *Core) Module(id string) (*module.Module, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	mod, ok := c.modules[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}
	return mod, nil
}

// Modules returns every live module ordered by z-index.
func (c *Core) Modules() []*module.Module {
	c.mu.Lock()
	defer c.mu.Unlock()
	mods := c.moduleListLocked()
	sort.Slice(mods, func(i, j int) bool { return mods[i].ZIndex < mods[j].ZIndex })
	return mods
}

// mergeConfig copies base then overlays override; override keys win.
func mergeConfig(base, override map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range override {
		merged[k] = v
	}
	return merged
}

func applyFlag(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

// materializePorts instantiates live ports from the definition's templates
// for the given directions. Inputs default to a single connection; other
// directions default to unbounded.
func materializePorts(specs []registry.PortSpec, types ...module.PortType) []*module.Port {
	var ports []*module.Port
	for _, spec := range specs {
		if !containsType(types, spec.Type) {
			continue
		}
		maxConns := spec.MaxConnections
		if maxConns == 0 && spec.Type == module.PortInput {
			maxConns = 1
		}
		ports = append(ports, &module.Port{
			ID:             uuid.NewString(),
			Type:           spec.Type,
			DataType:       spec.DataType,
			Position:       spec.Position,
			Description:    spec.Description,
			IsActive:       true,
			MaxConnections: maxConns,
		})
	}
	return ports
}

func containsType(types []module.PortType, t module.PortType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
