// Package cache provides storage backends for memoized string distances.
package cache

// Backend stores non-negative distances keyed by a normalized pair key.
// Implementations are not safe for concurrent use; callers serialize access.
type Backend interface {
	// Get returns the cached value for key
	Get(key string) (int, bool)
	// Set stores value for key
	Set(key string, value int)
	// Len returns the number of stored entries
	Len() int
	// Cleanup releases any resources held by the backend
	Cleanup()
}

var (
	_ Backend = (*MapBackend)(nil)
	_ Backend = (*HybridBackend)(nil)
)
