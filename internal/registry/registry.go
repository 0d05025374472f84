// Package registry holds the catalog of known module types and resolves a
// type name to a loaded renderable unit on demand.
package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry is the module-type catalog. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*Definition
	units  map[string]Unit
	logger *slog.Logger
}

// New creates a registry pre-populated with the builtin catalog.
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Registry{
		defs:   make(map[string]*Definition),
		units:  make(map[string]Unit),
		logger: logger,
	}
	for _, def := range builtinDefinitions() {
		if err := r.Register(def); err != nil {
			// Builtins are compiled in; a failure here is a programming error.
			panic(fmt.Sprintf("registering builtin %q: %v", def.Type, err))
		}
	}
	return r
}

// Register adds a definition to the catalog after validating it.
func (r *Registry) Register(def *Definition) error {
	if violations := Validate(def); len(violations) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidDefinition, errors.Join(violations...))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Type]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateType, def.Type)
	}
	r.defs[def.Type] = def
	return nil
}

// Unregister removes a definition and evicts any cached unit for it.
func (r *Registry) Unregister(moduleType string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[moduleType]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownType, moduleType)
	}
	delete(r.defs, moduleType)
	delete(r.units, moduleType)
	return nil
}

// Definition returns the definition for a type.
func (r *Registry) Definition(moduleType string) (*Definition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[moduleType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, moduleType)
	}
	return def, nil
}

// All returns every registered definition, ordered by type for stable output.
func (r *Registry) All() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Type < defs[j].Type })
	return defs
}

// ByCategory returns every definition in the given category.
func (r *Registry) ByCategory(category string) []*Definition {
	var out []*Definition
	for _, def := range r.All() {
		if def.Category == category {
			out = append(out, def)
		}
	}
	return out
}

// Load resolves a type to its unit: cached unit first, then a direct unit
// reference, then the loader.
func (r *Registry) Load(moduleType string) (Unit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if unit, ok := r.units[moduleType]; ok {
		return unit, nil
	}
	def, ok := r.defs[moduleType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, moduleType)
	}

	if def.Unit != nil {
		r.units[moduleType] = def.Unit
		return def.Unit, nil
	}
	if def.Loader == nil {
		return nil, fmt.Errorf("module type %s has no unit or loader", moduleType)
	}
	unit, err := def.Loader()
	if err != nil {
		return nil, fmt.Errorf("loading module type %s: %w", moduleType, err)
	}
	r.units[moduleType] = unit
	return unit, nil
}

// Preload eagerly loads the builtin types marked for preloading, to cut
// first-use latency. Load failures are logged and skipped; they surface
// again, as errors, when the type is actually used.
func (r *Registry) Preload(ctx context.Context) {
	g, _ := errgroup.WithContext(ctx)
	for _, moduleType := range preloadTypes {
		moduleType := moduleType
		g.Go(func() error {
			if _, err := r.Load(moduleType); err != nil {
				r.logger.Warn("module preload failed", "type", moduleType, "error", err)
			}
			return nil
		})
	}
	g.Wait()
}

// Validate checks a definition and returns every violated rule, so callers
// can report all problems at once.
func Validate(def *Definition) []error {
	var violations []error
	if def == nil {
		return []error{errors.New("definition is nil")}
	}
	if strings.TrimSpace(def.Type) == "" {
		violations = append(violations, errors.New("type is required"))
	}
	if strings.TrimSpace(def.Title) == "" {
		violations = append(violations, errors.New("title is required"))
	}
	if strings.TrimSpace(def.Category) == "" {
		violations = append(violations, errors.New("category is required"))
	}
	if def.Unit == nil && def.Loader == nil && !strings.HasPrefix(def.Type, ExternalNamespace) {
		violations = append(violations, errors.New("unit or loader is required for non-external types"))
	}
	return violations
}

// Search matches the query case-insensitively against title, description,
// type, and tags.
func (r *Registry) Search(query string) []*Definition {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []*Definition
	for _, def := range r.All() {
		if matchesQuery(def, q) {
			out = append(out, def)
		}
	}
	return out
}

func matchesQuery(def *Definition, q string) bool {
	if strings.Contains(strings.ToLower(def.Title), q) ||
		strings.Contains(strings.ToLower(def.Description), q) ||
		strings.Contains(strings.ToLower(def.Type), q) {
		return true
	}
	for _, tag := range def.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
