package compositor

import (
	"fmt"
	"math"
)

// Size is a width and height in logical or physical units.
type Size struct {
	Width, Height float64
}

// IsEmpty reports whether either dimension is not positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ISize is an integer pixel size. Frame and render target sizes use it.
type ISize struct {
	Width, Height int64
}

// IsEmpty reports whether either dimension is not positive.
func (s ISize) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// ToSize converts to a floating point size.
func (s ISize) ToSize() Size {
	return Size{Width: float64(s.Width), Height: float64(s.Height)}
}

func (s ISize) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromLTWH creates a rectangle from its origin and dimensions.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// RectFromSize creates a rectangle at the origin with the given size.
func RectFromSize(s Size) Rect {
	return Rect{Right: s.Width, Bottom: s.Height}
}

// RectFromPoints returns the bounding box of the given points.
func RectFromPoints(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	r := Rect{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts[1:] {
		r.Left = math.Min(r.Left, p.X)
		r.Top = math.Min(r.Top, p.Y)
		r.Right = math.Max(r.Right, p.X)
		r.Bottom = math.Max(r.Bottom, p.Y)
	}
	return r
}

func (r Rect) Width() float64  { return r.Right - r.Left }
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Size returns the rectangle dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Center returns the center point.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// IsEmpty reports whether the rectangle encloses no area.
// NaN edges count as empty.
func (r Rect) IsEmpty() bool {
	return !(r.Left < r.Right && r.Top < r.Bottom)
}

// Intersect returns the overlap of r and other, or the zero Rect when they
// do not overlap.
func (r Rect) Intersect(other Rect) Rect {
	out := Rect{
		Left:   math.Max(r.Left, other.Left),
		Top:    math.Max(r.Top, other.Top),
		Right:  math.Min(r.Right, other.Right),
		Bottom: math.Min(r.Bottom, other.Bottom),
	}
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Intersects reports whether r and other share a region of positive area.
// Empty rectangles never intersect anything.
func (r Rect) Intersects(other Rect) bool {
	return !r.Intersect(other).IsEmpty()
}

// Union returns the smallest rectangle containing both r and other.
// Empty operands are ignored.
func (r Rect) Union(other Rect) Rect {
	if r.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return r
	}
	return Rect{
		Left:   math.Min(r.Left, other.Left),
		Top:    math.Min(r.Top, other.Top),
		Right:  math.Max(r.Right, other.Right),
		Bottom: math.Max(r.Bottom, other.Bottom),
	}
}

// Translate offsets the rectangle.
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// Outset grows the rectangle by d on every side.
func (r Rect) Outset(d float64) Rect {
	return Rect{Left: r.Left - d, Top: r.Top - d, Right: r.Right + d, Bottom: r.Bottom + d}
}

// Contains reports whether p lies inside r (right and bottom exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// RoundOut returns the smallest integer rectangle containing r.
func (r Rect) RoundOut() IRect {
	if r.IsEmpty() {
		return IRect{}
	}
	return IRect{
		Left:   int64(math.Floor(r.Left)),
		Top:    int64(math.Floor(r.Top)),
		Right:  int64(math.Ceil(r.Right)),
		Bottom: int64(math.Ceil(r.Bottom)),
	}
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g)", r.Left, r.Top, r.Right, r.Bottom)
}

// IRect is an integer rectangle. Regions are made of them.
type IRect struct {
	Left, Top, Right, Bottom int64
}

func (r IRect) Width() int64  { return r.Right - r.Left }
func (r IRect) Height() int64 { return r.Bottom - r.Top }

// IsEmpty reports whether the rectangle encloses no pixels.
func (r IRect) IsEmpty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Intersects reports whether r and other share at least one pixel.
func (r IRect) Intersects(other IRect) bool {
	if r.IsEmpty() || other.IsEmpty() {
		return false
	}
	return r.Left < other.Right && other.Left < r.Right &&
		r.Top < other.Bottom && other.Top < r.Bottom
}

// ToRect converts to a floating point rectangle.
func (r IRect) ToRect() Rect {
	return Rect{Left: float64(r.Left), Top: float64(r.Top), Right: float64(r.Right), Bottom: float64(r.Bottom)}
}

// Size returns the integer dimensions.
func (r IRect) Size() ISize {
	return ISize{Width: r.Width(), Height: r.Height()}
}

// Radius holds the elliptical radii of one rounded corner.
type Radius struct {
	X, Y float64
}

// RRect is a rectangle with independently rounded corners.
type RRect struct {
	Rect        Rect
	TopLeft     Radius
	TopRight    Radius
	BottomRight Radius
	BottomLeft  Radius
}

// RRectFromRectXY creates a rounded rectangle with uniform corner radii.
func RRectFromRectXY(r Rect, rx, ry float64) RRect {
	rad := Radius{X: rx, Y: ry}
	return RRect{Rect: r, TopLeft: rad, TopRight: rad, BottomRight: rad, BottomLeft: rad}
}

// Bounds returns the enclosing rectangle.
func (r RRect) Bounds() Rect {
	return r.Rect
}

// IsRect reports whether every corner radius is zero.
func (r RRect) IsRect() bool {
	return r.TopLeft == Radius{} && r.TopRight == Radius{} &&
		r.BottomRight == Radius{} && r.BottomLeft == Radius{}
}
