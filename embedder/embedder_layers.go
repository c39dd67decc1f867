package embedder

import (
	"slices"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/mutators"
)

// PresentFunc is the host's present callback. It returns false when the
// layers could not be presented.
type PresentFunc func(info abi.PresentInfo) bool

// EmbedderLayers converts layers into the host ABI, applying the root
// surface transformation to every offset, size and paint rect.
type EmbedderLayers struct {
	frameSize        compositor.Size
	dpr              float64
	rootTransform    compositor.Matrix
	presentationTime uint64

	layers []abi.Layer
}

// NewEmbedderLayers creates an empty layer list for a frame of frameSize
// logical pixels. presentationTime is in nanoseconds since the epoch, or 0.
func NewEmbedderLayers(frameSize compositor.ISize, devicePixelRatio float64, rootTransform compositor.Matrix, presentationTime uint64) *EmbedderLayers {
	return &EmbedderLayers{
		frameSize:        frameSize.ToSize(),
		dpr:              devicePixelRatio,
		rootTransform:    rootTransform,
		presentationTime: presentationTime,
	}
}

// DevicePixelRatio returns the frame's device pixel ratio.
func (e *EmbedderLayers) DevicePixelRatio() float64 { return e.dpr }

// PushBackingStoreLayer appends a layer showing store over the whole frame.
// paintRects are the frame-space rectangles that were drawn.
func (e *EmbedderLayers) PushBackingStoreLayer(store *abi.BackingStore, paintRects []compositor.IRect) {
	bounds := e.rootTransform.TransformRect(compositor.RectFromSize(e.frameSize))
	rects := make([]abi.Rect, 0, len(paintRects))
	for _, r := range paintRects {
		rects = append(rects, toABIRect(e.rootTransform.TransformRect(r.ToRect())))
	}
	e.layers = append(e.layers, abi.Layer{
		Type:         abi.LayerContentTypeBackingStore,
		BackingStore: store,
		Offset:       abi.Point{X: bounds.Left, Y: bounds.Top},
		Size:         abi.Size{Width: bounds.Width(), Height: bounds.Height()},
		BackingStorePresentInfo: &abi.BackingStorePresentInfo{
			PaintRegion: abi.Region{Rects: rects},
		},
		PresentationTime: e.presentationTime,
	})
}

// PushPlatformViewLayer appends the layer of platform view id.
func (e *EmbedderLayers) PushPlatformViewLayer(id int64, params *mutators.EmbeddedViewParams) {
	bounds := e.rootTransform.TransformRect(params.FinalBoundingRect())
	e.layers = append(e.layers, abi.Layer{
		Type: abi.LayerContentTypePlatformView,
		PlatformView: &abi.PlatformView{
			Identifier: id,
			Mutations:  e.mutations(params.Mutators()),
		},
		Offset:           abi.Point{X: bounds.Left, Y: bounds.Top},
		Size:             abi.Size{Width: bounds.Width(), Height: bounds.Height()},
		PresentationTime: e.presentationTime,
	})
}

// mutations lists the stack innermost first, adds the root transformation
// after the outermost entry and reverses the result, so the host applies
// the root transformation first and the innermost mutator last. Path clips
// have no ABI form and are dropped.
func (e *EmbedderLayers) mutations(stack *mutators.Stack) []abi.Mutation {
	var out []abi.Mutation
	for m := range stack.Backward() {
		switch m.Type {
		case mutators.ClipRect:
			out = append(out, abi.Mutation{Type: abi.MutationTypeClipRect, ClipRect: toABIRect(m.Rect)})
		case mutators.ClipRRect, mutators.ClipRSE:
			out = append(out, abi.Mutation{Type: abi.MutationTypeClipRoundedRect, ClipRoundedRect: toABIRoundedRect(m.RRect)})
		case mutators.Transform:
			if !m.Matrix.IsIdentity() {
				out = append(out, abi.Mutation{Type: abi.MutationTypeTransformation, Transformation: toABITransformation(m.Matrix)})
			}
		case mutators.Opacity:
			if opacity := m.AlphaFloat(); opacity < 1 {
				out = append(out, abi.Mutation{Type: abi.MutationTypeOpacity, Opacity: opacity})
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	if !e.rootTransform.IsIdentity() {
		out = append(out, abi.Mutation{Type: abi.MutationTypeTransformation, Transformation: toABITransformation(e.rootTransform)})
	}
	slices.Reverse(out)
	return out
}

// Layers returns the layers pushed so far, back to front.
func (e *EmbedderLayers) Layers() []abi.Layer {
	return e.layers
}

// InvokePresentCallback hands the layers to present for view viewID.
func (e *EmbedderLayers) InvokePresentCallback(viewID int64, present PresentFunc) bool {
	return present(abi.PresentInfo{ViewID: viewID, Layers: slices.Clone(e.layers)})
}

func toABIRect(r compositor.Rect) abi.Rect {
	return abi.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func toABIRoundedRect(r compositor.RRect) abi.RoundedRect {
	return abi.RoundedRect{
		Rect:       toABIRect(r.Rect),
		UpperLeft:  abi.Size{Width: r.TopLeft.X, Height: r.TopLeft.Y},
		UpperRight: abi.Size{Width: r.TopRight.X, Height: r.TopRight.Y},
		LowerRight: abi.Size{Width: r.BottomRight.X, Height: r.BottomRight.Y},
		LowerLeft:  abi.Size{Width: r.BottomLeft.X, Height: r.BottomLeft.Y},
	}
}

func toABITransformation(m compositor.Matrix) abi.Transformation {
	return abi.Transformation{
		ScaleX: m.ScaleX, SkewX: m.SkewX, TransX: m.TransX,
		SkewY: m.SkewY, ScaleY: m.ScaleY, TransY: m.TransY,
		Pers0: m.Pers0, Pers1: m.Pers1, Pers2: m.Pers2,
	}
}
