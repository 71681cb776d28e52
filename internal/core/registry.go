package core

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry   = make(map[string]Layout)
	registryMu sync.RWMutex
)

// RegisterLayout adds a sheet layout to the registry.
// Panics if a layout with the same key is already registered.
func RegisterLayout(l Layout) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[l.Key]; exists {
		panic(fmt.Sprintf("layout already registered: %s", l.Key))
	}
	if l.MinColumns <= 0 {
		panic(fmt.Sprintf("layout %s: MinColumns must be positive", l.Key))
	}

	registry[l.Key] = l
}

// LayoutByKey returns a layout by key.
// Returns false if not found.
func LayoutByKey(key string) (Layout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	l, ok := registry[key]
	return l, ok
}

// Layouts returns all registered layouts sorted by key.
func Layouts() []Layout {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Layout, 0, len(registry))
	for _, l := range registry {
		result = append(result, l)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Key < result[j].Key
	})

	return result
}

// LayoutCount returns the number of registered layouts.
func LayoutCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// ClearLayouts removes all registered layouts.
// Primarily useful for testing.
func ClearLayouts() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]Layout)
}
