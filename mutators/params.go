package mutators

import "github.com/gogpu/compositor"

// EmbeddedViewParams describes one platform view as the engine saw it during
// preroll: its transform, its size in logical points and the mutators of its
// ancestors.
type EmbeddedViewParams struct {
	matrix            compositor.Matrix
	sizePoints        compositor.Size
	mutators          *Stack
	finalBoundingRect compositor.Rect
}

// NewEmbeddedViewParams builds params for a platform view of sizePoints
// drawn with matrix. The stack is copied.
func NewEmbeddedViewParams(matrix compositor.Matrix, sizePoints compositor.Size, stack *Stack) *EmbeddedViewParams {
	return &EmbeddedViewParams{
		matrix:            matrix,
		sizePoints:        sizePoints,
		mutators:          stack.Clone(),
		finalBoundingRect: matrix.TransformRect(compositor.RectFromSize(sizePoints)),
	}
}

// Matrix returns the view's full transform.
func (p *EmbeddedViewParams) Matrix() compositor.Matrix { return p.matrix }

// SizePoints returns the view size in logical points.
func (p *EmbeddedViewParams) SizePoints() compositor.Size { return p.sizePoints }

// Mutators returns the ancestor mutator stack.
func (p *EmbeddedViewParams) Mutators() *Stack { return p.mutators }

// FinalBoundingRect is the transformed view bounds in screen coordinates,
// before clipping.
func (p *EmbeddedViewParams) FinalBoundingRect() compositor.Rect { return p.finalBoundingRect }

// PixelOffset returns the top-left corner of FinalBoundingRect.
func (p *EmbeddedViewParams) PixelOffset() compositor.Point {
	return compositor.Point{X: p.finalBoundingRect.Left, Y: p.finalBoundingRect.Top}
}

// Equal reports whether two params describe the same view geometry.
func (p *EmbeddedViewParams) Equal(other *EmbeddedViewParams) bool {
	return p.matrix == other.matrix && p.sizePoints == other.sizePoints &&
		p.finalBoundingRect == other.finalBoundingRect && p.mutators.Equal(other.mutators)
}
