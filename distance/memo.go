package distance

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/projectdiscovery/analogx/internal/cache"
)

// Edge is the unordered pair of strings a distance is cached under.
type Edge [2]string

// NewEdge returns the same Edge for (a, b) and (b, a).
func NewEdge(a, b string) Edge {
	if a > b {
		return Edge{b, a}
	}
	return Edge{a, b}
}

// key prefixes the first member with its length, words may hold any byte.
func (e Edge) key() string {
	return strconv.Itoa(len(e[0])) + ":" + e[0] + e[1]
}

// Options configures a memoized oracle.
type Options struct {
	// UseDiskCache stores distances in a disk-backed hybrid map instead of memory
	UseDiskCache bool
	// Capacity pre-allocates the in-memory table
	Capacity int
}

// Memo provides memoized distance calculations on top of an Oracle.
// The expensive part of splitting is the repeated comparison of the same
// strings across the horizontal and vertical phases, the memo table turns
// those into lookups.
type Memo struct {
	oracle  Oracle
	backend cache.Backend
	mu      sync.RWMutex
}

var _ Oracle = (*Memo)(nil)

// New returns a Memo over the LCS oracle.
func New(opts Options) (*Memo, error) {
	return NewMemo(LCS{}, opts)
}

// NewMemo wraps oracle with a memo table.
func NewMemo(oracle Oracle, opts Options) (*Memo, error) {
	m := &Memo{oracle: oracle}
	if opts.UseDiskCache {
		backend, err := cache.NewHybridBackend()
		if err != nil {
			return nil, fmt.Errorf("%w: could not create disk cache: %v", ErrOracleUnavailable, err)
		}
		m.backend = backend
	} else {
		m.backend = cache.NewMapBackend(opts.Capacity)
	}
	return m, nil
}

// Distance returns the cached distance or computes and caches it.
func (m *Memo) Distance(a, b string) int {
	if a == b {
		return 0
	}
	key := NewEdge(a, b).key()

	m.mu.RLock()
	dist, ok := m.backend.Get(key)
	m.mu.RUnlock()
	if ok {
		return dist
	}

	dist = m.oracle.Distance(a, b)

	m.mu.Lock()
	m.backend.Set(key, dist)
	m.mu.Unlock()
	return dist
}

// Anchor returns an anchored query that reads and fills the memo table.
func (m *Memo) Anchor(a string) Anchored {
	return &memoAnchor{memo: m, anchor: a, query: m.oracle.Anchor(a)}
}

// Cached returns the distance for (a, b) without computing it.
func (m *Memo) Cached(a, b string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backend.Get(NewEdge(a, b).key())
}

// Size returns the number of cached distances.
func (m *Memo) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.backend.Len()
}

// Close releases the memo table.
func (m *Memo) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.backend.Cleanup()
}

type memoAnchor struct {
	memo   *Memo
	anchor string
	query  Anchored
}

func (q *memoAnchor) From(b string) int {
	if q.anchor == b {
		return 0
	}
	key := NewEdge(q.anchor, b).key()

	q.memo.mu.RLock()
	dist, ok := q.memo.backend.Get(key)
	q.memo.mu.RUnlock()
	if ok {
		return dist
	}

	dist = q.query.From(b)

	q.memo.mu.Lock()
	q.memo.backend.Set(key, dist)
	q.memo.mu.Unlock()
	return dist
}
