package module

import (
	"maps"
	"slices"
	"sync"
)

// ports of every mounted module by name, meta reads it to find the games service
var registry = struct {
	sync.RWMutex
	byName map[string]any
}{byName: map[string]any{}}

// Register records ports under name, a second call for the same name replaces them
func Register(name string, ports any) {
	if name == "" {
		panic("module: Register with empty name")
	}
	registry.Lock()
	defer registry.Unlock()
	registry.byName[name] = ports
}

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	p, found := registry.byName[name]
	registry.RUnlock()

	t, ok := p.(T)
	return t, found && ok
}

// Names lists registered module names, sorted
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.byName))
}

// Reset empties the registry
func Reset() {
	registry.Lock()
	defer registry.Unlock()
	clear(registry.byName)
}
