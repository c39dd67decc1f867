package cache

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/render"
)

func newTarget(t *testing.T, w, h int64) render.RenderTarget {
	t.Helper()
	target, err := render.NewSoftwareRenderTarget(compositor.ISize{Width: w, Height: h}, abi.BackingStore{})
	if err != nil {
		t.Fatalf("NewSoftwareRenderTarget() error = %v", err)
	}
	return target
}

func TestCacheRoundTrip(t *testing.T) {
	c := New(false)
	target := newTarget(t, 64, 32)
	size := compositor.ISize{Width: 64, Height: 32}

	c.CacheRenderTarget(compositor.RootViewIdentifier(), target)
	if got := c.GetCachedTargetsCount(); got != 1 {
		t.Fatalf("GetCachedTargetsCount() = %d, want 1", got)
	}

	got := c.GetRenderTarget(compositor.DescriptorForSize(size))
	if got == nil {
		t.Fatal("GetRenderTarget() = nil, want cached target")
	}
	if got.Size() != size {
		t.Errorf("Size() = %v, want %v", got.Size(), size)
	}
	if c.GetCachedTargetsCount() != 0 {
		t.Errorf("GetCachedTargetsCount() = %d after claim, want 0", c.GetCachedTargetsCount())
	}

	c.CacheRenderTarget(compositor.RootViewIdentifier(), got)
	evicted := c.ClearAllRenderTargetsInCache()
	if len(evicted) != 1 || evicted[0] != got {
		t.Fatalf("ClearAllRenderTargetsInCache() = %v, want [target]", evicted)
	}
	if c.GetRenderTarget(compositor.DescriptorForSize(size)) != nil {
		t.Error("GetRenderTarget() after clear returned a target")
	}
}

func TestCacheMissOnOtherSize(t *testing.T) {
	c := New(false)
	c.CacheRenderTarget(compositor.RootViewIdentifier(), newTarget(t, 10, 10))

	if got := c.GetRenderTarget(compositor.DescriptorForSize(compositor.ISize{Width: 10, Height: 11})); got != nil {
		t.Errorf("GetRenderTarget(10x11) = %v, want nil", got)
	}
	stats := c.Stats()
	if stats.Misses != 1 || stats.Hits != 0 {
		t.Errorf("Stats() = %+v, want 1 miss", stats)
	}
}

func TestCacheNilTargetIgnored(t *testing.T) {
	c := New(false)
	c.CacheRenderTarget(compositor.RootViewIdentifier(), nil)
	if got := c.GetCachedTargetsCount(); got != 0 {
		t.Errorf("GetCachedTargetsCount() = %d, want 0", got)
	}
	if evicted := c.ClearAllRenderTargetsInCache(); evicted != nil {
		t.Errorf("ClearAllRenderTargetsInCache() = %v, want nil", evicted)
	}
}

func TestCacheSharedAcrossViewsBySize(t *testing.T) {
	c := New(false)
	c.CacheRenderTarget(compositor.PlatformViewIdentifier(7), newTarget(t, 8, 8))

	desc := c.Descriptor(compositor.PlatformViewIdentifier(9), compositor.ISize{Width: 8, Height: 8})
	if c.GetRenderTarget(desc) == nil {
		t.Error("size-keyed cache did not share a target between views")
	}
}

func TestCacheKeyedByView(t *testing.T) {
	c := New(true)
	if !c.KeyedByView() {
		t.Fatal("KeyedByView() = false, want true")
	}
	size := compositor.ISize{Width: 8, Height: 8}
	a := newTarget(t, 8, 8)
	c.CacheRenderTarget(compositor.PlatformViewIdentifier(1), a)

	if got := c.GetRenderTarget(c.Descriptor(compositor.PlatformViewIdentifier(2), size)); got != nil {
		t.Error("view-keyed cache handed a target to another view")
	}
	if got := c.GetRenderTarget(c.Descriptor(compositor.PlatformViewIdentifier(1), size)); got != a {
		t.Errorf("GetRenderTarget(view 1) = %v, want the cached target", got)
	}
}

func TestGetExistingTargetsInCache(t *testing.T) {
	c := New(true)
	size := compositor.ISize{Width: 16, Height: 16}
	root := newTarget(t, 16, 16)
	pv := newTarget(t, 16, 16)
	c.CacheRenderTarget(compositor.RootViewIdentifier(), root)
	c.CacheRenderTarget(compositor.PlatformViewIdentifier(3), pv)

	pending := map[compositor.ViewIdentifier]compositor.RenderTargetDescriptor{
		compositor.RootViewIdentifier():      c.Descriptor(compositor.RootViewIdentifier(), size),
		compositor.PlatformViewIdentifier(3): c.Descriptor(compositor.PlatformViewIdentifier(3), size),
		compositor.PlatformViewIdentifier(4): c.Descriptor(compositor.PlatformViewIdentifier(4), size),
	}
	found := c.GetExistingTargetsInCache(pending)
	if len(found) != 2 {
		t.Fatalf("found %d targets, want 2", len(found))
	}
	if found[compositor.RootViewIdentifier()] != root {
		t.Error("root view did not get its own target")
	}
	if found[compositor.PlatformViewIdentifier(3)] != pv {
		t.Error("platform view 3 did not get its own target")
	}
	if c.GetCachedTargetsCount() != 0 {
		t.Errorf("GetCachedTargetsCount() = %d, want 0", c.GetCachedTargetsCount())
	}
}

func TestClearAllCountsEvictions(t *testing.T) {
	c := New(false)
	for range 3 {
		c.CacheRenderTarget(compositor.RootViewIdentifier(), newTarget(t, 4, 4))
	}
	c.CacheRenderTarget(compositor.RootViewIdentifier(), newTarget(t, 2, 2))

	evicted := c.ClearAllRenderTargetsInCache()
	if len(evicted) != 4 {
		t.Fatalf("evicted %d targets, want 4", len(evicted))
	}
	// Smaller descriptors come first.
	if evicted[0].Size() != (compositor.ISize{Width: 2, Height: 2}) {
		t.Errorf("evicted[0].Size() = %v, want 2x2", evicted[0].Size())
	}
	if got := c.Stats().Evictions; got != 4 {
		t.Errorf("Stats().Evictions = %d, want 4", got)
	}
	for _, target := range evicted {
		if err := target.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}
}
