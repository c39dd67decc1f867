package embedder

import (
	"fmt"
	"math"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/mutators"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/render"
)

// ExternalView is one composited view of a frame: the root view or a
// platform view. It owns the content slice the engine paints into for that
// view.
type ExternalView struct {
	id                    compositor.ViewIdentifier
	renderSurfaceSize     compositor.ISize
	surfaceTransformation compositor.Matrix
	params                *mutators.EmbeddedViewParams
	slice                 *ContentSlice

	contentsComputed bool
	hasContents      bool
}

// NewRootView creates the root view of a frame.
func NewRootView(frameSize compositor.ISize, surfaceTransformation compositor.Matrix) *ExternalView {
	return newExternalView(frameSize, surfaceTransformation, compositor.RootViewIdentifier(), nil)
}

// NewPlatformView creates the view for platform view id. Content painted
// into it is drawn above the platform view.
func NewPlatformView(frameSize compositor.ISize, surfaceTransformation compositor.Matrix, id int64, params *mutators.EmbeddedViewParams) *ExternalView {
	return newExternalView(frameSize, surfaceTransformation, compositor.PlatformViewIdentifier(id), params)
}

func newExternalView(frameSize compositor.ISize, transform compositor.Matrix, id compositor.ViewIdentifier, params *mutators.EmbeddedViewParams) *ExternalView {
	frame := compositor.RectFromSize(frameSize.ToSize())
	return &ExternalView{
		id:                    id,
		renderSurfaceSize:     TransformedSurfaceSize(frameSize, transform),
		surfaceTransformation: transform,
		params:                params,
		slice:                 NewContentSlice(frame),
	}
}

// TransformedSurfaceSize returns the size of the bounding box of frameSize
// under transform. A rotation by 90 degrees swaps width and height.
func TransformedSurfaceSize(frameSize compositor.ISize, transform compositor.Matrix) compositor.ISize {
	r := transform.TransformRect(compositor.RectFromSize(frameSize.ToSize()))
	return compositor.ISize{
		Width:  int64(math.Ceil(r.Width() - sizeEpsilon)),
		Height: int64(math.Ceil(r.Height() - sizeEpsilon)),
	}
}

// sizeEpsilon absorbs rounding noise from rotations such as cos(pi/2).
const sizeEpsilon = 1e-9

// ViewIdentifier returns the view identity.
func (v *ExternalView) ViewIdentifier() compositor.ViewIdentifier { return v.id }

// HasPlatformView reports whether the view belongs to a platform view.
func (v *ExternalView) HasPlatformView() bool { return !v.id.IsRoot() }

// IsRootView reports whether this is the root view.
func (v *ExternalView) IsRootView() bool { return v.id.IsRoot() }

// Params returns the platform view parameters, or nil for the root view.
func (v *ExternalView) Params() *mutators.EmbeddedViewParams { return v.params }

// RenderSurfaceSize returns the frame size after the surface
// transformation.
func (v *ExternalView) RenderSurfaceSize() compositor.ISize { return v.renderSurfaceSize }

// SurfaceTransformation returns the transform applied when rendering.
func (v *ExternalView) SurfaceTransformation() compositor.Matrix { return v.surfaceTransformation }

// Canvas returns the canvas for painting this view, or nil once the
// recording has ended.
func (v *ExternalView) Canvas() recording.Canvas {
	return v.slice.Canvas()
}

// Region returns the covered rectangles of the engine content. It ends the
// recording if needed.
func (v *ExternalView) Region() compositor.Region {
	v.endRecording()
	return v.slice.Region()
}

// HasEngineRenderedContents reports whether the engine drew anything
// visible into this view. The first call ends the recording; the result is
// memoized.
func (v *ExternalView) HasEngineRenderedContents() bool {
	if v.contentsComputed {
		return v.hasContents
	}
	v.endRecording()
	v.hasContents = v.slice.HasRenderedContent()
	v.contentsComputed = true
	return v.hasContents
}

func (v *ExternalView) endRecording() {
	if !v.slice.RecordingEnded() {
		v.slice.EndRecording()
	}
}

// CreateRenderTargetDescriptor returns the descriptor of a render target
// able to hold this view.
func (v *ExternalView) CreateRenderTargetDescriptor() compositor.RenderTargetDescriptor {
	return compositor.DescriptorForView(v.id, v.renderSurfaceSize)
}

// Render replays the view's content into target. Only the first view
// rendered into a target passes clearSurface. If binding the target
// invalidates native API state, ctx is reset before drawing.
//
// Render panics when the view has no engine-rendered contents.
func (v *ExternalView) Render(target render.RenderTarget, ctx render.Context, clearSurface bool) error {
	if !v.HasEngineRenderedContents() {
		panic(fmt.Sprintf("embedder: Render called on %v without engine-rendered contents", v.id))
	}
	if target == nil {
		return fmt.Errorf("%v: %w", v.id, ErrNoRenderTarget)
	}

	current := target.MakeCurrent()
	if current.InvalidatesAPIState && ctx != nil {
		ctx.ResetContext()
	}
	if !current.OK {
		return fmt.Errorf("%v: %w", v.id, ErrMakeCurrentFailed)
	}
	defer func() {
		if target.ClearCurrent().InvalidatesAPIState && ctx != nil {
			ctx.ResetContext()
		}
	}()

	if s := target.Surface(); s != nil {
		if s.Closed() {
			return fmt.Errorf("%v: %w", v.id, render.ErrReleased)
		}
		count := s.SaveCount()
		s.Save()
		s.SetTransform(v.surfaceTransformation)
		if clearSurface {
			s.Clear(compositor.ColorTransparent)
		}
		v.slice.RenderInto(s)
		s.RestoreToCount(count)
		s.Flush()
		return nil
	}
	if err := target.Texture().Encode(v.slice.Recording(), v.surfaceTransformation, clearSurface); err != nil {
		return fmt.Errorf("%v: %w", v.id, err)
	}
	return nil
}
