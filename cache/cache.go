// Package cache keeps render targets alive between frames so the host is
// not asked to allocate a new backing store every frame.
//
// The policy is generational: a target cached at the end of frame N is
// reused by frame N+1 or evicted during it. There is no LRU and no size
// budget.
package cache

import (
	"maps"
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/render"
)

// Stats holds cache counters.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// RenderTargetCache maps descriptors to stacks of idle render targets.
//
// RenderTargetCache is NOT thread-safe. It is used only from the frame
// submission path.
type RenderTargetCache struct {
	keyByView bool
	targets   map[compositor.RenderTargetDescriptor][]render.RenderTarget
	count     int
	stats     Stats
}

// New creates an empty cache. With keyByView set, targets are only reused
// by the view that produced them; otherwise any view of the same size may
// take them.
func New(keyByView bool) *RenderTargetCache {
	return &RenderTargetCache{
		keyByView: keyByView,
		targets:   make(map[compositor.RenderTargetDescriptor][]render.RenderTarget),
	}
}

// KeyedByView reports whether descriptors include the view identity.
func (c *RenderTargetCache) KeyedByView() bool {
	return c.keyByView
}

// Descriptor returns the cache key for a target of size used by view.
func (c *RenderTargetCache) Descriptor(view compositor.ViewIdentifier, size compositor.ISize) compositor.RenderTargetDescriptor {
	if c.keyByView {
		return compositor.DescriptorForView(view, size)
	}
	return compositor.DescriptorForSize(size)
}

func (c *RenderTargetCache) normalize(desc compositor.RenderTargetDescriptor) compositor.RenderTargetDescriptor {
	return c.Descriptor(desc.View, desc.Size)
}

// GetRenderTarget removes and returns a cached target matching desc, or nil
// on a miss.
func (c *RenderTargetCache) GetRenderTarget(desc compositor.RenderTargetDescriptor) render.RenderTarget {
	desc = c.normalize(desc)
	stack := c.targets[desc]
	if len(stack) == 0 {
		c.stats.Misses++
		compositor.Logger().Debug("cache: miss", "view", desc.View, "size", desc.Size)
		return nil
	}
	target := stack[len(stack)-1]
	stack[len(stack)-1] = nil
	if len(stack) == 1 {
		delete(c.targets, desc)
	} else {
		c.targets[desc] = stack[:len(stack)-1]
	}
	c.count--
	c.stats.Hits++
	compositor.Logger().Debug("cache: hit", "view", desc.View, "size", desc.Size)
	return target
}

// GetExistingTargetsInCache claims a cached target for every pending view
// that has one. Views are served in Compare order.
func (c *RenderTargetCache) GetExistingTargetsInCache(pending map[compositor.ViewIdentifier]compositor.RenderTargetDescriptor) map[compositor.ViewIdentifier]render.RenderTarget {
	found := make(map[compositor.ViewIdentifier]render.RenderTarget)
	views := slices.SortedFunc(maps.Keys(pending), compositor.ViewIdentifier.Compare)
	for _, view := range views {
		if target := c.GetRenderTarget(pending[view]); target != nil {
			found[view] = target
		}
	}
	return found
}

// CacheRenderTarget stores target for reuse by view. A nil target is
// ignored.
func (c *RenderTargetCache) CacheRenderTarget(view compositor.ViewIdentifier, target render.RenderTarget) {
	if target == nil {
		return
	}
	desc := c.Descriptor(view, target.Size())
	c.targets[desc] = append(c.targets[desc], target)
	c.count++
}

// ClearAllRenderTargetsInCache empties the cache and returns the evicted
// targets. The caller closes them once it is safe to run release callbacks.
func (c *RenderTargetCache) ClearAllRenderTargetsInCache() []render.RenderTarget {
	if c.count == 0 {
		return nil
	}
	evicted := make([]render.RenderTarget, 0, c.count)
	for _, desc := range slices.SortedFunc(maps.Keys(c.targets), compareDescriptors) {
		evicted = append(evicted, c.targets[desc]...)
	}
	clear(c.targets)
	c.count = 0
	c.stats.Evictions += uint64(len(evicted))
	compositor.Logger().Debug("cache: evicted", "count", len(evicted))
	return evicted
}

// GetCachedTargetsCount returns the number of idle targets.
func (c *RenderTargetCache) GetCachedTargetsCount() int {
	return c.count
}

// Stats returns the hit, miss and eviction counters.
func (c *RenderTargetCache) Stats() Stats {
	return c.stats
}

func compareDescriptors(a, b compositor.RenderTargetDescriptor) int {
	if d := a.View.Compare(b.View); d != 0 {
		return d
	}
	if a.Size.Width != b.Size.Width {
		return cmpInt64(a.Size.Width, b.Size.Width)
	}
	return cmpInt64(a.Size.Height, b.Size.Height)
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
