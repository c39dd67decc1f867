// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/compositor"
)

// flattenTolerance is the maximum deviation, in pixels, between a curve and
// its polyline approximation.
const flattenTolerance = 0.2

// joinSegments is the number of sides of the polygon standing in for a round
// stroke join.
const joinSegments = 16

// coverage rasterizes a device-space path into an alpha mask restricted to
// the current clip. The mask is positioned in device coordinates. A nil mask
// means nothing is covered.
func (s *ImageSurface) coverage(dev *compositor.Path) (*image.Alpha, image.Rectangle) {
	r := roundOut(dev.Bounds()).Intersect(s.state.clip).Intersect(s.base.Bounds())
	if r.Empty() {
		return nil, image.Rectangle{}
	}
	polys, _ := dev.Flatten(flattenTolerance)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	local := compositor.Rect{Right: float64(r.Dx()), Bottom: float64(r.Dy())}
	shift := compositor.Pt(-float64(r.Min.X), -float64(r.Min.Y))
	drawn := false
	for _, poly := range polys {
		for i := range poly {
			poly[i] = poly[i].Add(shift)
		}
		// The rasterizer only accepts points inside its bounds.
		poly = clipPolygon(poly, local)
		if len(poly) < 3 {
			continue
		}
		z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			z.LineTo(float32(p.X), float32(p.Y))
		}
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return nil, image.Rectangle{}
	}
	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	// Rebase to device coordinates; Pix is laid out relative to Rect.Min.
	mask.Rect = r
	return mask, r
}

// multiplyMask scales dst coverage inside r by clip coverage.
func multiplyMask(dst, clip *image.Alpha, r image.Rectangle) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			i := dst.PixOffset(x, y)
			c := clip.AlphaAt(x, y).A
			dst.Pix[i] = uint8(uint16(dst.Pix[i]) * uint16(c) / 255)
		}
	}
}

// alphaMask returns a uniform mask for opacity, or nil when fully opaque.
func alphaMask(opacity float64) image.Image {
	if opacity >= 1 {
		return nil
	}
	return image.NewUniform(alphaColor(opacity))
}

// strokeOutline converts a path into a fillable outline of the given width
// with round joins and caps. A zero width strokes a hairline one unit wide.
func strokeOutline(path *compositor.Path, width float64) *compositor.Path {
	hw := max(width, 1) / 2
	out := compositor.NewPath()
	polys, closed := path.Flatten(flattenTolerance)
	for i, poly := range polys {
		n := len(poly)
		if n == 0 {
			continue
		}
		for j := 0; j+1 < n; j++ {
			addSegmentQuad(out, poly[j], poly[j+1], hw)
		}
		if closed[i] && n > 2 {
			addSegmentQuad(out, poly[n-1], poly[0], hw)
		}
		for _, p := range poly {
			addOriented(out, circlePolygon(p, hw), -1)
		}
	}
	return out
}

func addSegmentQuad(out *compositor.Path, a, b compositor.Point, hw float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := compositor.Pt(-d.Y/l*hw, d.X/l*hw)
	addOriented(out, []compositor.Point{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}, -1)
}

func circlePolygon(c compositor.Point, r float64) []compositor.Point {
	pts := make([]compositor.Point, joinSegments)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / joinSegments
		pts[i] = compositor.Pt(c.X+r*math.Cos(a), c.Y+r*math.Sin(a))
	}
	return pts
}

// ringPath returns the area inside outer but outside inner. The rasterizer
// accumulates signed area, so the inner contours are wound against the
// outer ones.
func ringPath(outer, inner *compositor.Path) *compositor.Path {
	out := compositor.NewPath()
	polys, _ := outer.Flatten(flattenTolerance)
	for _, p := range polys {
		addOriented(out, p, -1)
	}
	polys, _ = inner.Flatten(flattenTolerance)
	for _, p := range polys {
		addOriented(out, p, 1)
	}
	return out
}

// addOriented appends pts as a closed polygon whose signed area has the
// given sign.
func addOriented(out *compositor.Path, pts []compositor.Point, sign float64) {
	if len(pts) < 3 {
		return
	}
	if signedArea(pts)*sign < 0 {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	out.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		out.LineTo(p.X, p.Y)
	}
	out.Close()
}

func signedArea(pts []compositor.Point) float64 {
	var a float64
	for i, p := range pts {
		q := pts[(i+1)%len(pts)]
		a += p.X*q.Y - q.X*p.Y
	}
	return a / 2
}

// clipPolygon clips a closed polygon to r (Sutherland-Hodgman). Winding
// inside r is preserved.
func clipPolygon(pts []compositor.Point, r compositor.Rect) []compositor.Point {
	type edge struct {
		inside func(compositor.Point) bool
		cross  func(a, b compositor.Point) compositor.Point
	}
	atX := func(x float64) func(a, b compositor.Point) compositor.Point {
		return func(a, b compositor.Point) compositor.Point {
			t := (x - a.X) / (b.X - a.X)
			return compositor.Pt(x, a.Y+t*(b.Y-a.Y))
		}
	}
	atY := func(y float64) func(a, b compositor.Point) compositor.Point {
		return func(a, b compositor.Point) compositor.Point {
			t := (y - a.Y) / (b.Y - a.Y)
			return compositor.Pt(a.X+t*(b.X-a.X), y)
		}
	}
	edges := [4]edge{
		{func(p compositor.Point) bool { return p.X >= r.Left }, atX(r.Left)},
		{func(p compositor.Point) bool { return p.X <= r.Right }, atX(r.Right)},
		{func(p compositor.Point) bool { return p.Y >= r.Top }, atY(r.Top)},
		{func(p compositor.Point) bool { return p.Y <= r.Bottom }, atY(r.Bottom)},
	}
	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			break
		}
		in := out
		out = make([]compositor.Point, 0, len(in)+4)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch {
			case e.inside(cur):
				if !e.inside(prev) {
					out = append(out, e.cross(prev, cur))
				}
				out = append(out, cur)
			case e.inside(prev):
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}
