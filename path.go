package compositor

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path is a vector path used for clip-path and draw-path operations.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{elements: make([]PathElement, 0, 16)}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
func (p *Path) LineTo(x, y float64) {
	if len(p.elements) == 0 {
		p.MoveTo(x, y)
		return
	}
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	if len(p.elements) == 0 {
		p.MoveTo(cx, cy)
	}
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, QuadTo{Control: Point{X: cx, Y: cy}, Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if len(p.elements) == 0 {
		p.MoveTo(c1x, c1y)
	}
	pt := Point{X: x, Y: y}
	p.elements = append(p.elements, CubicTo{
		Control1: Point{X: c1x, Y: c1y},
		Control2: Point{X: c2x, Y: c2y},
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath.
func (p *Path) Close() {
	if len(p.elements) == 0 {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Bounds returns the control-point bounding box, which contains the curve.
func (p *Path) Bounds() Rect {
	if p.IsEmpty() {
		return Rect{}
	}
	pts := make([]Point, 0, len(p.elements)*2)
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pts = append(pts, e.Point)
		case LineTo:
			pts = append(pts, e.Point)
		case QuadTo:
			pts = append(pts, e.Control, e.Point)
		case CubicTo:
			pts = append(pts, e.Control1, e.Control2, e.Point)
		}
	}
	return RectFromPoints(pts...)
}

// Transform returns a copy of the path with every point transformed.
func (p *Path) Transform(m Matrix) *Path {
	result := NewPath()
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			c1 := m.TransformPoint(e.Control1)
			c2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// AddRect adds a closed rectangle subpath.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.Left, r.Top)
	p.LineTo(r.Right, r.Top)
	p.LineTo(r.Right, r.Bottom)
	p.LineTo(r.Left, r.Bottom)
	p.Close()
}

// circleK is 4/3 * (sqrt(2) - 1), the cubic control distance for a quarter circle.
const circleK = 0.5522847498307936

// AddOval adds an ellipse inscribed in r.
func (p *Path) AddOval(r Rect) {
	cx, cy := r.Center().X, r.Center().Y
	rx, ry := r.Width()/2, r.Height()/2
	ox, oy := rx*circleK, ry*circleK

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// AddRRect adds a rounded rectangle, clamping radii to the rectangle size.
func (p *Path) AddRRect(rr RRect) {
	if rr.IsRect() {
		p.AddRect(rr.Rect)
		return
	}
	r := rr.Rect
	clamp := func(rad Radius) Radius {
		return Radius{X: math.Min(rad.X, r.Width()/2), Y: math.Min(rad.Y, r.Height()/2)}
	}
	tl, tr, br, bl := clamp(rr.TopLeft), clamp(rr.TopRight), clamp(rr.BottomRight), clamp(rr.BottomLeft)

	p.MoveTo(r.Left+tl.X, r.Top)
	p.LineTo(r.Right-tr.X, r.Top)
	p.CubicTo(r.Right-tr.X*(1-circleK), r.Top, r.Right, r.Top+tr.Y*(1-circleK), r.Right, r.Top+tr.Y)
	p.LineTo(r.Right, r.Bottom-br.Y)
	p.CubicTo(r.Right, r.Bottom-br.Y*(1-circleK), r.Right-br.X*(1-circleK), r.Bottom, r.Right-br.X, r.Bottom)
	p.LineTo(r.Left+bl.X, r.Bottom)
	p.CubicTo(r.Left+bl.X*(1-circleK), r.Bottom, r.Left, r.Bottom-bl.Y*(1-circleK), r.Left, r.Bottom-bl.Y)
	p.LineTo(r.Left, r.Top+tl.Y)
	p.CubicTo(r.Left, r.Top+tl.Y*(1-circleK), r.Left+tl.X*(1-circleK), r.Top, r.Left+tl.X, r.Top)
	p.Close()
}

// AddArc adds an elliptical arc inscribed in oval, from startAngle sweeping by
// sweepAngle (both in radians). When useCenter is set the arc is closed
// through the oval center, forming a wedge.
func (p *Path) AddArc(oval Rect, startAngle, sweepAngle float64, useCenter bool) {
	if sweepAngle == 0 || oval.IsEmpty() {
		return
	}
	cx, cy := oval.Center().X, oval.Center().Y
	rx, ry := oval.Width()/2, oval.Height()/2
	if math.Abs(sweepAngle) > 2*math.Pi {
		sweepAngle = math.Copysign(2*math.Pi, sweepAngle)
	}

	// At most 90 degrees per cubic segment.
	n := int(math.Ceil(math.Abs(sweepAngle) / (math.Pi / 2)))
	step := sweepAngle / float64(n)
	alpha := 4.0 / 3.0 * math.Tan(step/4)

	x0, y0 := cx+rx*math.Cos(startAngle), cy+ry*math.Sin(startAngle)
	if useCenter {
		p.MoveTo(cx, cy)
		p.LineTo(x0, y0)
	} else {
		p.MoveTo(x0, y0)
	}
	a := startAngle
	for i := 0; i < n; i++ {
		b := a + step
		cosA, sinA := math.Cos(a), math.Sin(a)
		cosB, sinB := math.Cos(b), math.Sin(b)
		p.CubicTo(
			cx+rx*(cosA-alpha*sinA), cy+ry*(sinA+alpha*cosA),
			cx+rx*(cosB+alpha*sinB), cy+ry*(sinB-alpha*cosB),
			cx+rx*cosB, cy+ry*sinB,
		)
		a = b
	}
	if useCenter {
		p.Close()
	}
}

// AddPath appends every element of other.
func (p *Path) AddPath(other *Path) {
	if other.IsEmpty() {
		return
	}
	for _, elem := range other.elements {
		switch e := elem.(type) {
		case MoveTo:
			p.MoveTo(e.Point.X, e.Point.Y)
		case LineTo:
			p.LineTo(e.Point.X, e.Point.Y)
		case QuadTo:
			p.QuadraticTo(e.Control.X, e.Control.Y, e.Point.X, e.Point.Y)
		case CubicTo:
			p.CubicTo(e.Control1.X, e.Control1.Y, e.Control2.X, e.Control2.Y, e.Point.X, e.Point.Y)
		case Close:
			p.Close()
		}
	}
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := NewPath()
	result.elements = append(result.elements, p.elements...)
	result.start = p.start
	result.current = p.current
	return result
}

// Flatten converts the path into polylines, one per subpath. Curves are
// subdivided into segments no longer than roughly tolerance. The second
// result reports per subpath whether it was closed.
func (p *Path) Flatten(tolerance float64) ([][]Point, []bool) {
	if tolerance <= 0 {
		tolerance = 0.5
	}
	var (
		polys  [][]Point
		closed []bool
		cur    []Point
	)
	flush := func(isClosed bool) {
		if len(cur) > 1 {
			polys = append(polys, cur)
			closed = append(closed, isClosed)
		}
		cur = nil
	}
	last := Point{}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush(false)
			cur = []Point{e.Point}
			last = e.Point
		case LineTo:
			if cur == nil {
				cur = []Point{last}
			}
			cur = append(cur, e.Point)
			last = e.Point
		case QuadTo:
			if cur == nil {
				cur = []Point{last}
			}
			n := segments(last.Distance(e.Control)+e.Control.Distance(e.Point), tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				a := last.Lerp(e.Control, t)
				b := e.Control.Lerp(e.Point, t)
				cur = append(cur, a.Lerp(b, t))
			}
			last = e.Point
		case CubicTo:
			if cur == nil {
				cur = []Point{last}
			}
			n := segments(last.Distance(e.Control1)+e.Control1.Distance(e.Control2)+e.Control2.Distance(e.Point), tolerance)
			for i := 1; i <= n; i++ {
				t := float64(i) / float64(n)
				a := last.Lerp(e.Control1, t)
				b := e.Control1.Lerp(e.Control2, t)
				c := e.Control2.Lerp(e.Point, t)
				ab := a.Lerp(b, t)
				bc := b.Lerp(c, t)
				cur = append(cur, ab.Lerp(bc, t))
			}
			last = e.Point
		case Close:
			if len(cur) > 0 {
				last = cur[0]
			}
			flush(true)
		}
	}
	flush(false)
	return polys, closed
}

func segments(length, tolerance float64) int {
	n := int(math.Ceil(length / (tolerance * 8)))
	if n < 1 {
		return 1
	}
	if n > 64 {
		return 64
	}
	return n
}
