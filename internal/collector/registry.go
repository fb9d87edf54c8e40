package collector

import (
	"fmt"
	"sort"
	"sync"

	"tempwatch/internal/config"
)

// Factory builds a sensor source from configuration.
type Factory func(cfg *config.Config, r Runner) SensorSource

// Registry maps sensor source names to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new, empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name.
func (r *Registry) Register(name string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("sensor source %s already registered", name)
	}

	r.factories[name] = f
	return nil
}

// Names returns the registered source names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.factories))
	for name := range r.factories {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// Build creates the source registered under name.
func (r *Registry) Build(name string, cfg *config.Config, runner Runner) (SensorSource, error) {
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("unknown sensor source %q (available: %v)", name, r.Names())
	}
	return f(cfg, runner), nil
}

// DefaultRegistry creates a registry with the lm-sensors and hwmon sources.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	_ = r.Register(config.SourceLMSensors, func(cfg *config.Config, runner Runner) SensorSource {
		return NewLMSensorsSource(runner, cfg.SensorsCommand)
	})
	_ = r.Register(config.SourceHwmon, func(*config.Config, Runner) SensorSource {
		return NewHwmonSource()
	})

	return r
}
