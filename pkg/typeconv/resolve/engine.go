package resolve

import (
	"sync"

	"github.com/randalmurphal/typeconv/pkg/typeconv/registry"
)

// Engine memoizes resolutions per registry snapshot. Results are discarded
// whenever a newer snapshot version is seen.
type Engine struct {
	mu      sync.RWMutex
	version uint64
	cache   map[Request]Result
}

// NewEngine creates an engine with an empty cache.
func NewEngine() *Engine {
	return &Engine{cache: make(map[Request]Result)}
}

// Resolve resolves req against snap, using the cache when snap is current.
func (e *Engine) Resolve(snap *registry.Snapshot, req Request) Result {
	v := snap.Version()

	// Fast path: cached for this version
	e.mu.RLock()
	if e.version == v {
		if res, ok := e.cache[req]; ok {
			e.mu.RUnlock()
			return res
		}
	}
	e.mu.RUnlock()

	res := Resolve(snap, req)

	// Slow path: store under write lock unless a newer version took over
	e.mu.Lock()
	defer e.mu.Unlock()
	switch {
	case v > e.version:
		e.version = v
		e.cache = map[Request]Result{req: res}
	case v == e.version:
		e.cache[req] = res
	}
	return res
}

// Len returns the number of cached results.
func (e *Engine) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.cache)
}
