package compositor

import "math"

// Matrix is a 3x3 transformation matrix in row-major order:
//
//	| ScaleX  SkewX   TransX |
//	| SkewY   ScaleY  TransY |
//	| Pers0   Pers1   Pers2  |
//
// Points are transformed as column vectors (x, y, 1) followed by a divide by
// the resulting w. The field order matches the host's transformation ABI.
type Matrix struct {
	ScaleX, SkewX, TransX float64
	SkewY, ScaleY, TransY float64
	Pers0, Pers1, Pers2   float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{ScaleX: 1, ScaleY: 1, Pers2: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	m := Identity()
	m.TransX, m.TransY = x, y
	return m
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	m := Identity()
	m.ScaleX, m.ScaleY = x, y
	return m
}

// Rotate creates a rotation matrix (angle in radians).
func Rotate(angle float64) Matrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Matrix{
		ScaleX: cos, SkewX: -sin,
		SkewY: sin, ScaleY: cos,
		Pers2: 1,
	}
}

// Multiply returns m * other: other is applied first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	a := m.rows()
	b := other.rows()
	var r [9]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i*3+j] = a[i*3]*b[j] + a[i*3+1]*b[3+j] + a[i*3+2]*b[6+j]
		}
	}
	return fromRows(r)
}

// TransformPoint applies the transformation to a point, including the
// perspective divide.
func (m Matrix) TransformPoint(p Point) Point {
	x := m.ScaleX*p.X + m.SkewX*p.Y + m.TransX
	y := m.SkewY*p.X + m.ScaleY*p.Y + m.TransY
	w := m.Pers0*p.X + m.Pers1*p.Y + m.Pers2
	if w == 1 {
		return Point{X: x, Y: y}
	}
	if math.Abs(w) < minW {
		w = math.Copysign(minW, w)
	}
	return Point{X: x / w, Y: y / w}
}

// minW bounds the perspective divisor for points at or behind the eye.
const minW = 1e-6

// TransformRect returns the axis-aligned bounding box of the transformed
// rectangle.
func (m Matrix) TransformRect(r Rect) Rect {
	if m.IsIdentity() || r.IsEmpty() {
		return r
	}
	return RectFromPoints(
		m.TransformPoint(Point{X: r.Left, Y: r.Top}),
		m.TransformPoint(Point{X: r.Right, Y: r.Top}),
		m.TransformPoint(Point{X: r.Right, Y: r.Bottom}),
		m.TransformPoint(Point{X: r.Left, Y: r.Bottom}),
	)
}

// Invert returns the inverse matrix and whether m was invertible.
func (m Matrix) Invert() (Matrix, bool) {
	a := m.rows()
	c00 := a[4]*a[8] - a[5]*a[7]
	c01 := a[5]*a[6] - a[3]*a[8]
	c02 := a[3]*a[7] - a[4]*a[6]
	det := a[0]*c00 + a[1]*c01 + a[2]*c02
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}
	inv := 1 / det
	r := [9]float64{
		c00 * inv, (a[2]*a[7] - a[1]*a[8]) * inv, (a[1]*a[5] - a[2]*a[4]) * inv,
		c01 * inv, (a[0]*a[8] - a[2]*a[6]) * inv, (a[2]*a[3] - a[0]*a[5]) * inv,
		c02 * inv, (a[1]*a[6] - a[0]*a[7]) * inv, (a[0]*a[4] - a[1]*a[3]) * inv,
	}
	return fromRows(r), true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// IsAffine reports whether the matrix has no perspective component.
func (m Matrix) IsAffine() bool {
	return m.Pers0 == 0 && m.Pers1 == 0 && m.Pers2 == 1
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.IsAffine() && m.ScaleX == 1 && m.SkewX == 0 && m.SkewY == 0 && m.ScaleY == 1
}

// IsZero reports whether the matrix is the zero value, which callers treat
// as "no transform set".
func (m Matrix) IsZero() bool {
	return m == Matrix{}
}

func (m Matrix) rows() [9]float64 {
	return [9]float64{
		m.ScaleX, m.SkewX, m.TransX,
		m.SkewY, m.ScaleY, m.TransY,
		m.Pers0, m.Pers1, m.Pers2,
	}
}

func fromRows(r [9]float64) Matrix {
	return Matrix{
		ScaleX: r[0], SkewX: r[1], TransX: r[2],
		SkewY: r[3], ScaleY: r[4], TransY: r[5],
		Pers0: r[6], Pers1: r[7], Pers2: r[8],
	}
}
