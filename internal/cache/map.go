package cache

import "runtime/debug"

// MapBackend keeps distances in a plain in-memory map.
type MapBackend struct {
	storage map[string]int
}

func NewMapBackend(capacity int) *MapBackend {
	return &MapBackend{storage: make(map[string]int, capacity)}
}

func (m *MapBackend) Get(key string) (int, bool) {
	v, ok := m.storage[key]
	return v, ok
}

func (m *MapBackend) Set(key string, value int) {
	m.storage[key] = value
}

func (m *MapBackend) Len() int {
	return len(m.storage)
}

func (m *MapBackend) Cleanup() {
	m.storage = map[string]int{}
	// memo tables over large clusters hold millions of entries,
	// hand the memory back at once instead of waiting for the scavenger
	debug.FreeOSMemory()
}
