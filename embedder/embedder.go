package embedder

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/cache"
	"github.com/gogpu/compositor/mutators"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/render"
)

// ImplicitViewID is the host view presented by SubmitFrame.
const ImplicitViewID int64 = 0

// State is the frame state of an ExternalViewEmbedder.
type State int

const (
	StateIdle State = iota
	StateFrameBegun
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFrameBegun:
		return "frame-begun"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// SubmitInfo carries per-frame presentation hints.
type SubmitInfo struct {
	// PresentationTime is the target presentation time, or zero.
	PresentationTime time.Time
}

// Frame is the native frame being composed. Submit finalizes presentation
// once the layers have been handed to the host.
type Frame interface {
	SubmitInfo() SubmitInfo
	Submit() error
}

// CreateRenderTargetFunc asks the host for a render target. The call may
// change native graphics state behind ctx.
type CreateRenderTargetFunc func(ctx render.Context, cfg abi.BackingStoreConfig) (render.RenderTarget, error)

// ExternalViewEmbedder composes each frame's views into layers and presents
// them through the host callbacks.
type ExternalViewEmbedder struct {
	create                CreateRenderTargetFunc
	present               PresentFunc
	surfaceTransformation func() compositor.Matrix
	avoidCache            bool
	keyCacheByView        bool
	cache                 *cache.RenderTargetCache

	state         State
	frameSize     compositor.ISize
	dpr           float64
	rootTransform compositor.Matrix
	views         map[compositor.ViewIdentifier]*ExternalView
	order         []compositor.ViewIdentifier
}

// New creates an embedder. It panics if create or present is nil.
func New(create CreateRenderTargetFunc, present PresentFunc, opts ...Option) *ExternalViewEmbedder {
	if create == nil || present == nil {
		panic("embedder: New requires create and present callbacks")
	}
	e := &ExternalViewEmbedder{
		create:        create,
		present:       present,
		rootTransform: compositor.Identity(),
		views:         make(map[compositor.ViewIdentifier]*ExternalView),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.cache = cache.New(e.keyCacheByView)
	return e
}

// State returns the frame state.
func (e *ExternalViewEmbedder) State() State { return e.state }

// CachedTargetsCount returns the number of render targets kept for the
// next frame.
func (e *ExternalViewEmbedder) CachedTargetsCount() int {
	return e.cache.GetCachedTargetsCount()
}

// CacheStats returns the render target cache counters.
func (e *ExternalViewEmbedder) CacheStats() cache.Stats {
	return e.cache.Stats()
}

// RootTransformation returns the surface transformation of the current
// frame.
func (e *ExternalViewEmbedder) RootTransformation() compositor.Matrix {
	return e.rootTransform
}

// CompositionOrder returns the views of the current frame in composition
// order.
func (e *ExternalViewEmbedder) CompositionOrder() []compositor.ViewIdentifier {
	return slices.Clone(e.order)
}

// CancelFrame drops the pending views and returns to the idle state. It is
// a no-op when no frame was begun.
func (e *ExternalViewEmbedder) CancelFrame() {
	e.reset()
}

func (e *ExternalViewEmbedder) reset() {
	clear(e.views)
	e.order = e.order[:0]
	e.state = StateIdle
}

// BeginFrame starts a frame of frameSize logical pixels and creates its
// root view.
func (e *ExternalViewEmbedder) BeginFrame(frameSize compositor.ISize, devicePixelRatio float64) {
	e.reset()
	e.frameSize = frameSize
	e.dpr = devicePixelRatio
	e.rootTransform = compositor.Identity()
	if e.surfaceTransformation != nil {
		e.rootTransform = e.surfaceTransformation()
	}

	root := NewRootView(frameSize, e.rootTransform)
	e.views[root.ViewIdentifier()] = root
	e.order = append(e.order, root.ViewIdentifier())
	e.state = StateFrameBegun
}

// PrerollCompositeEmbeddedView registers platform view id for this frame.
// It panics if the view was already registered, params is nil or no frame
// was begun.
func (e *ExternalViewEmbedder) PrerollCompositeEmbeddedView(id int64, params *mutators.EmbeddedViewParams) {
	if e.state != StateFrameBegun {
		panic(fmt.Sprintf("embedder: preroll of platform view %d outside a frame", id))
	}
	if params == nil {
		panic(fmt.Sprintf("embedder: platform view %d prerolled without params", id))
	}
	vid := compositor.PlatformViewIdentifier(id)
	if _, ok := e.views[vid]; ok {
		panic(fmt.Sprintf("embedder: platform view %d prerolled twice", id))
	}
	e.views[vid] = NewPlatformView(e.frameSize, e.rootTransform, id, params)
	e.order = append(e.order, vid)
}

// GetRootCanvas returns the root view's canvas. Outside a frame it logs a
// warning and returns nil; callers skip painting.
func (e *ExternalViewEmbedder) GetRootCanvas() recording.Canvas {
	root, ok := e.views[compositor.RootViewIdentifier()]
	if !ok {
		compositor.Logger().Warn("embedder: root canvas requested outside a frame")
		return nil
	}
	return root.Canvas()
}

// CompositeEmbeddedView returns the canvas for content drawn above
// platform view id. It panics if the view was never prerolled.
func (e *ExternalViewEmbedder) CompositeEmbeddedView(id int64) recording.Canvas {
	v, ok := e.views[compositor.PlatformViewIdentifier(id)]
	if !ok {
		panic(fmt.Sprintf("embedder: platform view %d was not prerolled", id))
	}
	return v.Canvas()
}

// SubmitFrame presents the current frame to the implicit view.
func (e *ExternalViewEmbedder) SubmitFrame(ctx render.Context, frame Frame) error {
	return e.SubmitFlutterView(ImplicitViewID, ctx, frame)
}

// SubmitFlutterView composes the current frame into layers, renders them
// and presents them to host view viewID. Cached render targets left
// unclaimed by this frame are released only after the present callback
// returns. Failures of individual layers are joined into the returned
// error; the remaining layers are still presented.
func (e *ExternalViewEmbedder) SubmitFlutterView(viewID int64, ctx render.Context, frame Frame) error {
	if e.state != StateFrameBegun {
		return ErrNoFrame
	}
	e.state = StateSubmitting
	defer e.reset()

	var errs []error
	root := e.views[compositor.RootViewIdentifier()]
	builder := NewLayerBuilder(root.RenderSurfaceSize())
	for _, id := range e.order {
		builder.AddExternalView(e.views[id])
	}

	var matched map[compositor.ViewIdentifier]render.RenderTarget
	if !e.avoidCache {
		matched = e.cache.GetExistingTargetsInCache(builder.PendingDescriptors())
	}
	provider := func(desc compositor.RenderTargetDescriptor) (render.RenderTarget, error) {
		if target, ok := matched[desc.View]; ok {
			delete(matched, desc.View)
			return target, nil
		}
		cfg := abi.BackingStoreConfig{
			Size:   abi.Size{Width: float64(desc.Size.Width), Height: float64(desc.Size.Height)},
			ViewID: viewID,
		}
		target, err := e.create(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("create render target: %w", err)
		}
		return target, nil
	}
	if err := builder.PrepareBackingStore(provider); err != nil {
		errs = append(errs, err)
	}

	// Released after present: a release callback may invalidate the
	// context the layers are rendered with.
	deferred := e.cache.ClearAllRenderTargetsInCache()
	for _, target := range matched {
		deferred = append(deferred, target)
	}

	if ctx != nil {
		ctx.ResetContext()
	}
	if err := builder.Render(ctx); err != nil {
		errs = append(errs, err)
	}
	if ctx != nil {
		if err := ctx.FlushAndSubmit(); err != nil {
			compositor.Logger().Error("embedder: flush failed", "err", err)
			errs = append(errs, fmt.Errorf("flush: %w", err))
		}
	}

	var presentationTime uint64
	if frame != nil {
		if t := frame.SubmitInfo().PresentationTime; !t.IsZero() {
			presentationTime = uint64(t.UnixNano())
		}
	}
	layers := NewEmbedderLayers(e.frameSize, e.dpr, e.rootTransform, presentationTime)
	builder.PushLayers(layers)
	compositor.Logger().Debug("embedder: presenting",
		"view", viewID, "layers", len(layers.Layers()), "views", len(e.order))
	if !layers.InvokePresentCallback(viewID, e.present) {
		compositor.Logger().Error("embedder: present callback failed", "view", viewID)
		errs = append(errs, ErrPresentFailed)
	}

	if len(deferred) > 0 {
		compositor.Logger().Debug("embedder: releasing unclaimed render targets", "count", len(deferred))
	}
	for _, target := range deferred {
		if err := target.Close(); err != nil {
			errs = append(errs, fmt.Errorf("release cached target: %w", err))
		}
	}
	for _, entry := range builder.ClearAndCollectRenderTargets() {
		if e.avoidCache {
			if err := entry.Target.Close(); err != nil {
				errs = append(errs, fmt.Errorf("release render target: %w", err))
			}
			continue
		}
		e.cache.CacheRenderTarget(entry.View, entry.Target)
	}

	if frame != nil {
		if err := frame.Submit(); err != nil {
			errs = append(errs, fmt.Errorf("submit frame: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close releases every cached render target. A pending frame is cancelled.
func (e *ExternalViewEmbedder) Close() error {
	e.reset()
	var errs []error
	for _, target := range e.cache.ClearAllRenderTargetsInCache() {
		if err := target.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
