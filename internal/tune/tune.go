// Package tune selects launch configurations for the bulk-parallel
// dispatch wrapper and caches them per (kernel, volume), so a decision is
// made once per problem shape and reused across the many applications an
// outer solver performs.
package tune

import (
	"sync"

	"github.com/sunwayihep/quda/internal/cpu"
)

// minGrain is the smallest per-worker site count worth a dispatch; below
// it the chunk overhead dominates the stencil arithmetic.
const minGrain = 256

// Config is a resolved launch configuration.
type Config struct {
	Workers int
}

type key struct {
	kernel string
	volume int
}

// Cache stores launch decisions per problem shape.
type Cache struct {
	mu sync.RWMutex
	m  map[key]Config
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{m: make(map[key]Config)}
}

// DefaultCache is the process-wide cache used by the dispatch wrappers.
var DefaultCache = NewCache()

// Launch returns the cached configuration for (kernel, volume), computing
// and caching a heuristic default on first use.
func (c *Cache) Launch(kernel string, volume int) Config {
	k := key{kernel: kernel, volume: volume}

	c.mu.RLock()
	cfg, ok := c.m[k]
	c.mu.RUnlock()

	if ok {
		return cfg
	}

	cfg = defaultConfig(volume)

	c.mu.Lock()
	if prev, ok := c.m[k]; ok {
		cfg = prev
	} else {
		c.m[k] = cfg
	}
	c.mu.Unlock()

	return cfg
}

// Record overrides the configuration for (kernel, volume), typically with
// a benchmarked decision.
func (c *Cache) Record(kernel string, volume int, cfg Config) {
	c.mu.Lock()
	c.m[key{kernel: kernel, volume: volume}] = cfg
	c.mu.Unlock()
}

// Len returns the number of cached decisions.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Clear removes all cached decisions.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.m = make(map[key]Config)
	c.mu.Unlock()
}

func defaultConfig(volume int) Config {
	w := cpu.DetectFeatures().NumCPU

	if byGrain := volume / minGrain; byGrain < w {
		w = byGrain
	}
	if w < 1 {
		w = 1
	}

	return Config{Workers: w}
}
