// Package dashboard implements the orchestration core: it owns the live
// module instances, drives the fixed-rate update loop, and delegates to the
// registry, connection, layout, consciousness, and performance managers.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/driftlab/pulseboard/internal/connection"
	"github.com/driftlab/pulseboard/internal/consciousness"
	"github.com/driftlab/pulseboard/internal/event"
	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/module"
	"github.com/driftlab/pulseboard/internal/perf"
	"github.com/driftlab/pulseboard/internal/registry"
)

// Options tune workspace geometry.
type Options struct {
	// MaxRowWidth is the assumed workspace width used by automatic
	// placement before wrapping to the next row.
	MaxRowWidth float64
	// GridSize is the snap pitch used when interaction.snap_to_grid is on.
	GridSize float64
	// Padding separates automatically placed modules.
	Padding float64
}

// DefaultOptions returns the geometry used when the host passes zero values.
func DefaultOptions() Options {
	return Options{MaxRowWidth: 1920, GridSize: 20, Padding: 20}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.MaxRowWidth <= 0 {
		o.MaxRowWidth = def.MaxRowWidth
	}
	if o.GridSize <= 0 {
		o.GridSize = def.GridSize
	}
	if o.Padding <= 0 {
		o.Padding = def.Padding
	}
	return o
}

// Core is the dashboard root. Construct one per workspace and share it by
// handle; there is no process-wide instance. All public methods are safe
// for concurrent use; module and connection values they return are owned
// by the core and must only be mutated through its API.
type Core struct {
	mu     sync.Mutex
	logger *slog.Logger
	opts   Options

	registry *registry.Registry
	layouts  *layout.Service
	mind     *consciousness.Manager
	conns    *connection.Manager
	perf     *perf.Monitor
	bus      *event.Bus

	settings Settings
	modules  map[string]*module.Module

	initialized bool
	ticker      *time.Ticker
	stop        chan struct{}
	done        chan struct{}
	lastTick    time.Time
}

// New creates a core wired to the given registry and layout service.
func New(reg *registry.Registry, layouts *layout.Service, logger *slog.Logger, opts Options) *Core {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Core{
		logger:   logger,
		opts:     opts.withDefaults(),
		registry: reg,
		layouts:  layouts,
		mind:     consciousness.NewManager(logger),
		perf:     perf.NewMonitor(),
		bus:      event.NewBus(),
		settings: DefaultSettings(),
		modules:  make(map[string]*module.Module),
	}
	c.conns = connection.NewManager(portResolver{c}, logger)
	return c
}

// portResolver adapts the core's module map to connection.PortResolver.
// Lookups take no lock: the connection manager is only ever invoked while
// the core's mutex is already held.
type portResolver struct {
	c *Core
}

func (r portResolver) ResolvePort(moduleID, portID string) (*module.Port, bool) {
	mod, ok := r.c.modules[moduleID]
	if !ok {
		return nil, false
	}
	return mod.Port(portID)
}

// Events exposes the dashboard's event bus.
func (c *Core) Events() *event.Bus {
	return c.bus
}

// Initialize is idempotent: it seeds the consciousness state from settings,
// preloads builtin module units, loads the default layout when one exists,
// and starts the update loop.
func (c *Core) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.initialized {
		c.mu.Unlock()
		return nil
	}

	if err := c.initializeLocked(ctx); err != nil {
		c.mu.Unlock()
		c.bus.Publish(event.Event{Kind: event.Error, Err: err})
		return err
	}

	c.initialized = true
	c.stop = make(chan struct{})
	c.done = make(chan struct{})
	c.perf.Reset()
	c.lastTick = time.Time{}
	interval := c.settings.TickInterval()
	c.mu.Unlock()

	go c.run(interval)

	c.logger.Info("dashboard initialized", "tick_interval", interval)
	c.bus.Publish(event.Event{Kind: event.DashboardInitialized})
	return nil
}

func (c *Core) initializeLocked(ctx context.Context) error {
	cs := c.settings.Consciousness
	c.mind.Apply(consciousness.Patch{
		SCUP:           &cs.SCUP,
		Entropy:        &cs.Entropy,
		NeuralActivity: &cs.NeuralActivity,
		SystemUnity:    &cs.SystemUnity,
		Mood:           &cs.Mood,
	})
	if cs.StartPaused {
		c.mind.Pause()
	}

	c.registry.Preload(ctx)

	def, err := c.layouts.GetByName(ctx, layout.DefaultName)
	switch {
	case err == nil:
		if err := c.applyLayoutLocked(def); err != nil {
			return fmt.Errorf("loading default layout: %w", err)
		}
	case errors.Is(err, layout.ErrLayoutNotFound):
		// No default layout; start empty.
	default:
		return fmt.Errorf("looking up default layout: %w", err)
	}
	return nil
}

// Destroy stops the update loop, removes every module (tearing down its
// connections), and leaves the core re-initializable.
func (c *Core) Destroy(ctx context.Context) error {
	c.mu.Lock()
	if !c.initialized {
		c.mu.Unlock()
		return nil
	}
	c.initialized = false
	stop, done := c.stop, c.done
	c.ticker = nil
	c.mu.Unlock()

	close(stop)
	<-done

	c.mu.Lock()
	c.clearWorkspaceLocked()
	c.mu.Unlock()

	c.logger.Info("dashboard destroyed")
	c.bus.Publish(event.Event{Kind: event.DashboardDestroyed})
	return nil
}

// clearWorkspaceLocked removes every module and connection. Connections go
// first so no module deletion leaves dangling port references.
func (c *Core) clearWorkspaceLocked() {
	for id, mod := range c.modules {
		c.conns.RemoveForModule(id)
		now := time.Now()
		mod.State.Status = module.StatusIdle
		mod.IsActive = false
		mod.Lifecycle.Deactivated = &now
		delete(c.modules, id)
	}
}

func (c *Core) run(interval time.Duration) {
	defer close(c.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.mu.Lock()
	c.ticker = ticker
	c.mu.Unlock()

	for {
		select {
		case <-c.stop:
			return
		case now := <-ticker.C:
			c.tick(now)
		}
	}
}

// tick is one pass of the update loop: consciousness, connections,
// performance sampling, then per-module derived visual state.
func (c *Core) tick(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var dt time.Duration
	if !c.lastTick.IsZero() {
		dt = now.Sub(c.lastTick)
	}
	c.lastTick = now

	rate := c.settings.Consciousness.TickRate
	if rate <= 0 {
		rate = 1
	}
	c.mind.Update(time.Duration(float64(dt) * rate))
	c.conns.Update(dt)

	mods := c.moduleListLocked()
	c.perf.Sample(now, mods, c.conns.Count(), c.conns.CountForModule)

	state := c.mind.Snapshot()
	for _, mod := range mods {
		applyVisuals(mod, state, now)
	}
}

// applyVisuals refreshes a module's consciousness snapshot and derived
// visual scalars. Recomputed unconditionally every tick; no caching.
func applyVisuals(mod *module.Module, state consciousness.State, now time.Time) {
	glow, breathing, particles := DeriveVisuals(state)
	mod.GlowIntensity = glow
	mod.BreathingIntensity = breathing
	mod.ParticleDensity = particles
	mod.State.Consciousness = state
	mod.State.LastUpdate = now
}

func (c *Core) moduleListLocked() []*module.Module {
	mods := make([]*module.Module, 0, len(c.modules))
	for _, mod := range c.modules {
		mods = append(mods, mod)
	}
	return mods
}

// Settings returns a copy of the current settings.
func (c *Core) Settings() Settings {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings
}

// TickInterval reports the current update-loop period.
func (c *Core) TickInterval() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.settings.TickInterval()
}

// UpdateSettings deep-merges the patch, re-derives the tick interval, and
// reapplies visual state to every live module.
func (c *Core) UpdateSettings(patch SettingsPatch) Settings {
	c.mu.Lock()
	patch.apply(&c.settings)
	settings := c.settings

	if c.ticker != nil {
		c.ticker.Reset(settings.TickInterval())
	}

	state := c.mind.Snapshot()
	now := time.Now()
	for _, mod := range c.modules {
		applyVisuals(mod, state, now)
	}
	c.mu.Unlock()

	c.bus.Publish(event.Event{Kind: event.SettingsUpdated, Payload: settings})
	return settings
}

// UpdateConsciousness merges a partial state update.
func (c *Core) UpdateConsciousness(patch consciousness.Patch) consciousness.State {
	return c.mind.Apply(patch)
}

// PauseConsciousness halts state evolution.
func (c *Core) PauseConsciousness() { c.mind.Pause() }

// ResumeConsciousness resumes state evolution.
func (c *Core) ResumeConsciousness() { c.mind.Resume() }

// ResetConsciousness restores default state values.
func (c *Core) ResetConsciousness() consciousness.State { return c.mind.Reset() }

// Consciousness returns the current shared state.
func (c *Core) Consciousness() consciousness.State { return c.mind.Snapshot() }

// Metrics reports dashboard-wide and per-module resource estimates.
type Metrics struct {
	Dashboard perf.DashboardMetrics     `json:"dashboard"`
	Modules   map[string]module.Metrics `json:"modules"`
}

// Metrics returns the latest performance sample.
func (c *Core) Metrics() Metrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := Metrics{
		Dashboard: c.perf.Dashboard(),
		Modules:   make(map[string]module.Metrics, len(c.modules)),
	}
	for id, mod := range c.modules {
		out.Modules[id] = mod.Metrics
	}
	return out
}
