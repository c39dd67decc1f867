package embedder

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/mutators"
)

// PlatformView is the per-frame projection of a platform view used by the
// LayerBuilder.
type PlatformView struct {
	view         compositor.ViewIdentifier
	params       *mutators.EmbeddedViewParams
	clippedFrame compositor.Rect
}

// ProjectPlatformView derives the PlatformView of v. It panics if v is the
// root view.
func ProjectPlatformView(v *ExternalView) PlatformView {
	if !v.HasPlatformView() {
		panic("embedder: ProjectPlatformView called on the root view")
	}
	return PlatformView{
		view:         v.ViewIdentifier(),
		params:       v.Params(),
		clippedFrame: ClippedFrame(v.Params()),
	}
}

// ViewIdentifier returns the platform view identity.
func (p PlatformView) ViewIdentifier() compositor.ViewIdentifier { return p.view }

// Params returns the platform view parameters.
func (p PlatformView) Params() *mutators.EmbeddedViewParams { return p.params }

// ClippedFrame returns the on-screen bounds of the view after every clip.
func (p PlatformView) ClippedFrame() compositor.Rect { return p.clippedFrame }

// ClippedFrame intersects the final bounding rect of params with every clip
// mutator, walking the stack outermost first and mapping each clip through
// the transforms pushed before it. Backdrop mutators and opacity do not
// change the bounds.
func ClippedFrame(params *mutators.EmbeddedViewParams) compositor.Rect {
	if params == nil {
		return compositor.Rect{}
	}
	frame := params.FinalBoundingRect()
	transform := compositor.Identity()
	for m := range params.Mutators().All() {
		switch {
		case m.Type == mutators.Transform:
			transform = transform.Multiply(m.Matrix)
		case m.IsClip():
			frame = frame.Intersect(transform.TransformRect(m.ClipBounds()))
		}
	}
	return frame
}
