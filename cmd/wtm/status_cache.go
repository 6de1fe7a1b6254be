package main

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

const bulkRefreshConcurrency = 4

type statusLoader func(path string) (StatusSnapshot, error)

// StatusCache memoizes one StatusSnapshot per worktree path. Staleness is
// managed entirely by explicit invalidation: entries are dropped after
// mutating actions and wholesale on each refresh tick. Snapshots can still
// go stale between ticks when git runs outside the tool; that is a
// documented limitation, not something the cache papers over.
type StatusCache struct {
	mu      sync.Mutex
	entries map[string]StatusSnapshot
	load    statusLoader
}

func NewStatusCache(load statusLoader) *StatusCache {
	return &StatusCache{entries: map[string]StatusSnapshot{}, load: load}
}

// Get returns the cached snapshot, if any. It never triggers a query.
func (c *StatusCache) Get(path string) (StatusSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap, ok := c.entries[path]
	return snap, ok
}

// GetOrLoad returns the cached snapshot, querying and storing it on a miss.
func (c *StatusCache) GetOrLoad(path string) StatusSnapshot {
	if snap, ok := c.Get(path); ok {
		return snap
	}
	snap := c.loadOne(path)
	c.mu.Lock()
	c.entries[path] = snap
	c.mu.Unlock()
	return snap
}

func (c *StatusCache) loadOne(path string) StatusSnapshot {
	snap, err := c.load(path)
	if err != nil {
		return StatusSnapshot{Unavailable: true}
	}
	return snap
}

// Invalidate drops the entry for one path.
func (c *StatusCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Clear drops every entry.
func (c *StatusCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]StatusSnapshot{}
}

// BulkRefresh invalidates and reloads every given path. Per-path query
// failures degrade to an Unavailable snapshot so one bad worktree cannot
// abort the batch.
func (c *StatusCache) BulkRefresh(ctx context.Context, paths []string) {
	c.mu.Lock()
	for _, p := range paths {
		delete(c.entries, p)
	}
	c.mu.Unlock()

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(bulkRefreshConcurrency)
	for _, p := range paths {
		path := p
		g.Go(func() error {
			snap := c.loadOne(path)
			c.mu.Lock()
			c.entries[path] = snap
			c.mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
}

// Snapshot returns a copy of the current entries for rendering.
func (c *StatusCache) Snapshot() map[string]StatusSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]StatusSnapshot, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
