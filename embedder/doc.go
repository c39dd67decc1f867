// Package embedder composites engine-rendered content with host-owned
// platform views.
//
// Each frame the engine records one ContentSlice per view: the root view
// first, then every platform view in preroll order. At submit time the
// LayerBuilder groups the views into the fewest Layers that keep platform
// views and engine content in the correct z-order, each content Layer is
// rendered into a RenderTarget obtained from the cache or from the host,
// and the ordered layer list is handed to the host's present callback.
//
// Usage:
//
//	e := embedder.New(createTarget, present)
//	e.BeginFrame(size, 2.0)
//	e.PrerollCompositeEmbeddedView(1, params)
//	paintRoot(e.GetRootCanvas())
//	paintAbove(e.CompositeEmbeddedView(1))
//	err := e.SubmitFrame(ctx, frame)
//
// The embedder is driven from a single goroutine and does no locking.
package embedder
