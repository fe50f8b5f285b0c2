package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/auto-optimization/mootools/infrastructure/units"
	"github.com/auto-optimization/mootools/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.IndicatorRegistry = (*DefaultIndicatorRegistry)(nil)

// DefaultIndicatorRegistry implements the IndicatorRegistry interface,
// providing a factory for creating indicator instances based on type and
// configuration. It supports dynamic registration of additional
// factories beyond the built-in set.
type DefaultIndicatorRegistry struct {
	// factories maps indicator type strings to their factory functions.
	factories map[string]ports.IndicatorFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultIndicatorRegistry creates a new registry with the standard
// indicator types pre-registered: hypervolume, epsilon, distance,
// dominance, attainment, weighted_hv, and hype.
func NewDefaultIndicatorRegistry() *DefaultIndicatorRegistry {
	registry := &DefaultIndicatorRegistry{
		factories: make(map[string]ports.IndicatorFactory),
	}
	registry.registerBuiltinFactories()
	return registry
}

// registerBuiltinFactories registers the indicator types provided by the
// units package.
func (r *DefaultIndicatorRegistry) registerBuiltinFactories() {
	r.factories["hypervolume"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateHypervolumeUnit(id, params)
	}
	r.factories["epsilon"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateEpsilonUnit(id, params)
	}
	r.factories["distance"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateDistanceUnit(id, params)
	}
	r.factories["dominance"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateDominanceUnit(id, params)
	}
	r.factories["attainment"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateAttainmentUnit(id, params)
	}
	r.factories["weighted_hv"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateWeightedHVUnit(id, params)
	}
	r.factories["hype"] = func(id string, params map[string]any) (ports.Indicator, error) {
		return units.CreateHypeUnit(id, params)
	}
}

// Register adds a factory for the given indicator type. Registering a
// type twice returns ErrDuplicateIndicator.
func (r *DefaultIndicatorRegistry) Register(indicatorType string, factory ports.IndicatorFactory) error {
	if indicatorType == "" {
		return fmt.Errorf("indicator type cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory for %q cannot be nil", indicatorType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[indicatorType]; exists {
		return fmt.Errorf("%q: %w", indicatorType, ports.ErrDuplicateIndicator)
	}
	r.factories[indicatorType] = factory
	return nil
}

// Create instantiates an indicator of the given type. Unknown types
// return ErrUnknownIndicator.
func (r *DefaultIndicatorRegistry) Create(indicatorType, id string, params map[string]any) (ports.Indicator, error) {
	if id == "" {
		return nil, ports.ErrEmptyIndicatorID
	}

	r.mu.RLock()
	factory, exists := r.factories[indicatorType]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("%q: %w", indicatorType, ports.ErrUnknownIndicator)
	}
	return factory(id, params)
}

// Types lists the registered indicator types in sorted order.
func (r *DefaultIndicatorRegistry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
