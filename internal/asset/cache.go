// Package asset caches animation metadata for effect instances. Decoding
// the actual image frames belongs to the renderer; the simulation only
// needs frame counts and intervals to run lifecycles, and keeps working on
// placeholders when an asset is missing.
package asset

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// AnimMeta is the slice of an animation the simulation depends on.
type AnimMeta struct {
	FrameCount      int32
	FrameIntervalMs int32
}

// Placeholder is substituted for missing or unloadable animations.
// One long-ish frame keeps lifecycle math sane without an asset.
var Placeholder = AnimMeta{FrameCount: 1, FrameIntervalMs: 100}

// DurationMs returns the length of one animation cycle.
func (m AnimMeta) DurationMs() int32 {
	return m.FrameCount * m.FrameIntervalMs
}

// LoadFunc resolves a path to animation metadata. Injected so the engine
// stays independent of the on-disk asset format.
type LoadFunc func(ctx context.Context, path string) (AnimMeta, error)

// Cache is a load-and-cache front for animation metadata with a
// synchronous "already cached" fast path for the per-tick code.
type Cache struct {
	load LoadFunc

	mu    sync.RWMutex
	metas map[string]AnimMeta
	group singleflight.Group
}

// NewCache creates a cache backed by the given loader.
func NewCache(load LoadFunc) *Cache {
	return &Cache{
		load:  load,
		metas: make(map[string]AnimMeta),
	}
}

// Load returns the metadata for path, loading and caching it on first use.
// Load failures are not fatal: the placeholder is cached and returned so
// the simulation proceeds without the asset.
func (c *Cache) Load(ctx context.Context, path string) AnimMeta {
	if path == "" {
		return Placeholder
	}
	if meta, ok := c.Cached(path); ok {
		return meta
	}

	v, _, _ := c.group.Do(path, func() (any, error) {
		meta, err := c.load(ctx, path)
		if err != nil {
			slog.Warn("animation load failed, using placeholder", "path", path, "error", err)
			meta = Placeholder
		}
		c.mu.Lock()
		c.metas[path] = meta
		c.mu.Unlock()
		return meta, nil
	})
	return v.(AnimMeta)
}

// Cached returns the metadata only if it is already loaded.
func (c *Cache) Cached(path string) (AnimMeta, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	meta, ok := c.metas[path]
	return meta, ok
}

// CachedOrPlaceholder is the hot-path lookup: never loads, never blocks.
func (c *Cache) CachedOrPlaceholder(path string) AnimMeta {
	if path == "" {
		return Placeholder
	}
	if meta, ok := c.Cached(path); ok {
		return meta
	}
	return Placeholder
}

// Preload warms the cache for a batch of paths concurrently.
func (c *Cache) Preload(ctx context.Context, paths ...string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, path := range paths {
		g.Go(func() error {
			c.Load(ctx, path)
			return nil
		})
	}
	return g.Wait()
}
