package core

import (
	"fmt"
	"sort"
	"sync"
)

// Global registry for plugin self-registration
var globalRegistry = &Registry{
	factories: make(map[string]PluginFactory),
	entries:   make(map[string]*TableEntry),
}

// Registry is the microservice table: it knows every available plugin
// factory and caches the entries that have been loaded.
type Registry struct {
	factories map[string]PluginFactory
	entries   map[string]*TableEntry
	mu        sync.RWMutex
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]PluginFactory),
		entries:   make(map[string]*TableEntry),
	}
}

// RegisterPluginFactory allows plugins to register themselves during init()
func RegisterPluginFactory(name string, factory PluginFactory) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.factories[name] = factory
}

// GetGlobalRegistry returns a new registry holding every self-registered factory
func GetGlobalRegistry() *Registry {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	registry := NewRegistry()
	for name, factory := range globalRegistry.factories {
		registry.factories[name] = factory
	}
	return registry
}

func (r *Registry) RegisterFactory(name string, factory PluginFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("microservice %s already registered", name)
	}

	r.factories[name] = factory
	return nil
}

// Load builds the table entry for name, or returns the cached one.
func (r *Registry) Load(name string) (*TableEntry, error) {
	r.mu.RLock()
	entry, ok := r.entries[name]
	r.mu.RUnlock()
	if ok {
		return entry, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.entries[name]; ok {
		return entry, nil
	}

	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("microservice %s not found", name)
	}

	entry, err := factory()
	if err != nil {
		return nil, fmt.Errorf("loading microservice %s: %w", name, err)
	}
	if entry == nil || entry.Op == nil {
		return nil, fmt.Errorf("loading microservice %s: factory returned no operation", name)
	}
	if entry.Name != name {
		return nil, fmt.Errorf("loading microservice %s: factory built %q", name, entry.Name)
	}

	r.entries[name] = entry
	return entry, nil
}

// Invoke calls the named microservice and returns its status code. The error
// is only set when the microservice could not be loaded.
func (r *Registry) Invoke(name string, params []*MsParam, rei *RuleExecInfo) (int, error) {
	entry, err := r.Load(name)
	if err != nil {
		return SysInvalidInputParam, err
	}
	return entry.Call(params, rei), nil
}

// ListAvailable returns the sorted names of all registered factories.
func (r *Registry) ListAvailable() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListLoaded returns the sorted names of loaded entries.
func (r *Registry) ListLoaded() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Unload(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; !exists {
		return fmt.Errorf("microservice %s not loaded", name)
	}

	delete(r.entries, name)
	return nil
}

func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = make(map[string]*TableEntry)
	return nil
}
