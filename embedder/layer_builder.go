package embedder

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/render"
)

// Layer is one z-slot of a frame: platform views drawn by the host, with
// the engine content of zero or more views composited into one render
// target above them.
type Layer struct {
	platformViews []PlatformView
	views         []*ExternalView
	region        compositor.Region
	target        render.RenderTarget
	owner         compositor.ViewIdentifier
	failed        bool
}

// PlatformViews returns the platform views of the layer, back to front.
func (l *Layer) PlatformViews() []PlatformView { return l.platformViews }

// Views returns the views whose engine content is drawn in this layer.
func (l *Layer) Views() []*ExternalView { return l.views }

// Region returns the union of the content regions of Views.
func (l *Layer) Region() compositor.Region { return l.region }

// RenderTarget returns the layer's render target, or nil.
func (l *Layer) RenderTarget() render.RenderTarget { return l.target }

// HasContents reports whether engine content is drawn in this layer.
func (l *Layer) HasContents() bool { return len(l.views) > 0 }

func (l *Layer) intersectsPlatformViews(r compositor.Rect) bool {
	return slices.ContainsFunc(l.platformViews, func(pv PlatformView) bool {
		return pv.clippedFrame.Intersects(r)
	})
}

func (l *Layer) intersectsContents(r compositor.Rect) bool {
	if r.IsEmpty() {
		return false
	}
	return l.region.IntersectsRect(r.RoundOut())
}

// TargetProvider supplies a render target for a layer. desc carries the
// identity of the first view drawn into the layer and the surface size.
type TargetProvider func(desc compositor.RenderTargetDescriptor) (render.RenderTarget, error)

// RenderTargetEntry is a render target detached from a layer, with the
// view it was acquired for.
type RenderTargetEntry struct {
	View   compositor.ViewIdentifier
	Target render.RenderTarget
}

// LayerBuilder groups the views of a frame into the fewest layers that
// preserve the z-order between platform views and engine content.
type LayerBuilder struct {
	frameSize compositor.ISize
	layers    []*Layer
}

// NewLayerBuilder creates a builder for render targets of frameSize. The
// first layer always exists.
func NewLayerBuilder(frameSize compositor.ISize) *LayerBuilder {
	return &LayerBuilder{frameSize: frameSize, layers: []*Layer{{}}}
}

// FrameSize returns the render target size.
func (b *LayerBuilder) FrameSize() compositor.ISize { return b.frameSize }

// Layers returns the layers, back to front.
func (b *LayerBuilder) Layers() []*Layer { return b.layers }

// AddExternalView places v. Views must be added in composition order.
func (b *LayerBuilder) AddExternalView(v *ExternalView) {
	if v.HasPlatformView() {
		b.AddPlatformView(ProjectPlatformView(v))
	}
	if v.HasEngineRenderedContents() {
		b.AddFlutterContents(v, v.Region())
	}
}

// AddPlatformView puts pv into the backmost layer where it still renders
// below every content it was composited before.
func (b *LayerBuilder) AddPlatformView(pv PlatformView) {
	layer := b.layerForPlatformView(pv.clippedFrame)
	layer.platformViews = append(layer.platformViews, pv)
}

func (b *LayerBuilder) layerForPlatformView(frame compositor.Rect) *Layer {
	for i := len(b.layers) - 1; i >= 0; i-- {
		layer := b.layers[i]
		if layer.intersectsContents(frame) {
			if i == len(b.layers)-1 {
				b.layers = append(b.layers, &Layer{})
			}
			return b.layers[i+1]
		}
		if layer.intersectsPlatformViews(frame) {
			return layer
		}
	}
	return b.layers[0]
}

// AddFlutterContents adds the engine content of v covering region to the
// frontmost layer it overlaps.
func (b *LayerBuilder) AddFlutterContents(v *ExternalView, region compositor.Region) {
	layer := b.layerForContents(region)
	layer.views = append(layer.views, v)
	layer.region = layer.region.Union(region)
}

func (b *LayerBuilder) layerForContents(region compositor.Region) *Layer {
	if region.IsEmpty() {
		return b.layers[0]
	}
	for _, layer := range slices.Backward(b.layers) {
		if layer.region.Intersects(region) {
			return layer
		}
		for _, pv := range layer.platformViews {
			if !pv.clippedFrame.IsEmpty() && region.IntersectsRect(pv.clippedFrame.RoundOut()) {
				return layer
			}
		}
	}
	return b.layers[0]
}

// PendingDescriptors returns the render target each content layer will ask
// for, keyed by the layer's first content view.
func (b *LayerBuilder) PendingDescriptors() map[compositor.ViewIdentifier]compositor.RenderTargetDescriptor {
	pending := make(map[compositor.ViewIdentifier]compositor.RenderTargetDescriptor)
	for _, layer := range b.layers {
		if !layer.HasContents() {
			continue
		}
		owner := layer.views[0].ViewIdentifier()
		pending[owner] = compositor.DescriptorForView(owner, b.frameSize)
	}
	return pending
}

// PrepareBackingStore acquires a render target for every layer with
// content. Layers whose target could not be acquired are skipped by Render
// and PushLayers; the returned error joins every failure.
func (b *LayerBuilder) PrepareBackingStore(provider TargetProvider) error {
	var errs []error
	for i, layer := range b.layers {
		if !layer.HasContents() {
			continue
		}
		layer.owner = layer.views[0].ViewIdentifier()
		target, err := provider(compositor.DescriptorForView(layer.owner, b.frameSize))
		if err == nil && target == nil {
			err = ErrNoRenderTarget
		}
		if err != nil {
			compositor.Logger().Error("embedder: failed to acquire render target",
				"layer", i, "view", layer.owner, "err", err)
			errs = append(errs, fmt.Errorf("layer %d: %w", i, err))
			continue
		}
		target.BackingStore().DidUpdate = false
		layer.target = target
	}
	return errors.Join(errs...)
}

// Render draws the content of every layer into its render target. A layer
// that fails is not presented; the other layers still render.
func (b *LayerBuilder) Render(ctx render.Context) error {
	var errs []error
	for i, layer := range b.layers {
		if layer.target == nil {
			continue
		}
		for j, v := range layer.views {
			if err := v.Render(layer.target, ctx, j == 0); err != nil {
				compositor.Logger().Error("embedder: failed to render layer", "layer", i, "err", err)
				errs = append(errs, fmt.Errorf("layer %d: %w", i, err))
				layer.failed = true
				break
			}
		}
		if !layer.failed {
			layer.target.BackingStore().DidUpdate = true
		}
	}
	return errors.Join(errs...)
}

// PushLayers emits each layer's platform views followed by its rendered
// content.
func (b *LayerBuilder) PushLayers(out *EmbedderLayers) {
	for _, layer := range b.layers {
		for _, pv := range layer.platformViews {
			id, _ := pv.view.PlatformViewID()
			out.PushPlatformViewLayer(id, pv.params)
		}
		if layer.target == nil || layer.failed {
			continue
		}
		out.PushBackingStoreLayer(layer.target.BackingStore(), layer.region.Rects())
	}
}

// ClearAndCollectRenderTargets detaches every render target and resets the
// builder to a single empty layer.
func (b *LayerBuilder) ClearAndCollectRenderTargets() []RenderTargetEntry {
	var entries []RenderTargetEntry
	for _, layer := range b.layers {
		if layer.target == nil {
			continue
		}
		entries = append(entries, RenderTargetEntry{View: layer.owner, Target: layer.target})
		layer.target = nil
	}
	b.layers = []*Layer{{}}
	return entries
}
