package recording

import (
	"image"

	"github.com/gogpu/compositor"
)

// PaintStyle selects whether geometry is filled or stroked.
type PaintStyle uint8

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
)

// BlendMode is a Porter-Duff or separable blend mode. The zero value is
// source-over.
type BlendMode uint8

const (
	BlendModeSrcOver BlendMode = iota
	BlendModeClear
	BlendModeSrc
	BlendModeDst
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeDstIn
	BlendModeSrcOut
	BlendModeDstOut
	BlendModeSrcATop
	BlendModeDstATop
	BlendModeXor
	BlendModePlus
	BlendModeModulate
	BlendModeScreen
	BlendModeMultiply
)

// ColorSource supplies per-pixel colors in place of the paint color.
// This is a sealed interface: only types in this package implement it.
type ColorSource interface {
	colorSourceMarker()
}

// ColorColorSource is a color source producing one solid color.
type ColorColorSource struct {
	Color compositor.Color
}

func (ColorColorSource) colorSourceMarker() {}

// LinearGradient interpolates Colors between Start and End in local
// coordinates. Stops are offsets in [0, 1]; nil means evenly spaced.
type LinearGradient struct {
	Start, End compositor.Point
	Colors     []compositor.Color
	Stops      []float64
}

func (*LinearGradient) colorSourceMarker() {}

// ColorAt returns the gradient color at parameter t, clamped to [0, 1].
func (g *LinearGradient) ColorAt(t float64) compositor.Color {
	if len(g.Colors) == 0 {
		return compositor.ColorTransparent
	}
	if t <= 0 || len(g.Colors) == 1 {
		return g.Colors[0]
	}
	if t >= 1 {
		return g.Colors[len(g.Colors)-1]
	}
	stop := func(i int) float64 {
		if len(g.Stops) == len(g.Colors) {
			return g.Stops[i]
		}
		return float64(i) / float64(len(g.Colors)-1)
	}
	for i := 1; i < len(g.Colors); i++ {
		s0, s1 := stop(i-1), stop(i)
		if t > s1 {
			continue
		}
		f := 0.0
		if s1 > s0 {
			f = (t - s0) / (s1 - s0)
		}
		return lerpColor(g.Colors[i-1], g.Colors[i], f)
	}
	return g.Colors[len(g.Colors)-1]
}

func lerpColor(a, b compositor.Color, t float64) compositor.Color {
	mix := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return compositor.ARGB(mix(a.A(), b.A()), mix(a.R(), b.R()), mix(a.G(), b.G()), mix(a.B(), b.B()))
}

// ImageColorSource samples an image in local coordinates.
type ImageColorSource struct {
	Image image.Image
}

func (*ImageColorSource) colorSourceMarker() {}

// Paint holds the attributes used by draw operations.
//
// A zero-value Paint fills with transparent black using source-over, so it
// draws nothing. Use DefaultPaint for opaque black.
type Paint struct {
	Color       compositor.Color
	ColorSource ColorSource
	Style       PaintStyle
	// StrokeWidth of zero draws hairlines.
	StrokeWidth float64
	BlendMode   BlendMode
}

// DefaultPaint returns an opaque black fill paint.
func DefaultPaint() Paint {
	return Paint{Color: compositor.ColorBlack}
}

// NewPaint returns a fill paint of color c.
func NewPaint(c compositor.Color) Paint {
	return Paint{Color: c}
}

// PointMode controls how DrawPoints interprets its points.
type PointMode uint8

const (
	// PointModePoints draws each point as a square dot.
	PointModePoints PointMode = iota
	// PointModeLines draws each consecutive pair as a separate line.
	PointModeLines
	// PointModePolygon draws a connected polyline.
	PointModePolygon
)

// VertexMode controls how DrawVertices groups its vertices.
type VertexMode uint8

const (
	VertexModeTriangles VertexMode = iota
	VertexModeTriangleStrip
	VertexModeTriangleFan
)

// Vertices is a triangle mesh with optional per-vertex colors.
type Vertices struct {
	Mode      VertexMode
	Positions []compositor.Point
	Colors    []compositor.Color
	Indices   []uint16
}

// Bounds returns the bounding box of the vertex positions.
func (v *Vertices) Bounds() compositor.Rect {
	if v == nil {
		return compositor.Rect{}
	}
	return compositor.RectFromPoints(v.Positions...)
}

// Triangles returns the mesh expanded into independent triangles.
func (v *Vertices) Triangles() [][3]int {
	idx := make([]int, 0, len(v.Positions))
	if len(v.Indices) > 0 {
		for _, i := range v.Indices {
			if int(i) < len(v.Positions) {
				idx = append(idx, int(i))
			}
		}
	} else {
		for i := range v.Positions {
			idx = append(idx, i)
		}
	}
	var tris [][3]int
	switch v.Mode {
	case VertexModeTriangleStrip:
		for i := 2; i < len(idx); i++ {
			tris = append(tris, [3]int{idx[i-2], idx[i-1], idx[i]})
		}
	case VertexModeTriangleFan:
		for i := 2; i < len(idx); i++ {
			tris = append(tris, [3]int{idx[0], idx[i-1], idx[i]})
		}
	default:
		for i := 0; i+2 < len(idx); i += 3 {
			tris = append(tris, [3]int{idx[i], idx[i+1], idx[i+2]})
		}
	}
	return tris
}

// RSTransform is a rotation-scale plus translation used by DrawAtlas:
//
//	x' = SCos*x - SSin*y + TX
//	y' = SSin*x + SCos*y + TY
type RSTransform struct {
	SCos, SSin, TX, TY float64
}

// Matrix converts the transform to a matrix.
func (t RSTransform) Matrix() compositor.Matrix {
	return compositor.Matrix{
		ScaleX: t.SCos, SkewX: -t.SSin, TransX: t.TX,
		SkewY: t.SSin, ScaleY: t.SCos, TransY: t.TY,
		Pers2: 1,
	}
}
