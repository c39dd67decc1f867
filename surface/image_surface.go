// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/textblob"
)

// ImageSurface is a CPU-based canvas that renders to an *image.RGBA.
//
// ImageSurface is NOT thread-safe. Each surface should be used from a single
// goroutine.
type ImageSurface struct {
	width  int
	height int

	base *image.RGBA
	// dst is the image draws land in: base, or the top SaveLayer buffer.
	dst *image.RGBA

	state canvasState
	stack []savedState

	closed bool
}

type canvasState struct {
	matrix compositor.Matrix
	// clip is the device-space clip bounds.
	clip image.Rectangle
	// mask is the device-space coverage of a non-rectangular clip, nil when
	// the clip is exactly clip.
	mask *image.Alpha
}

type savedState struct {
	state canvasState
	layer *offscreenLayer
}

type offscreenLayer struct {
	parent  *image.RGBA
	bounds  image.Rectangle
	opacity float64
}

var _ recording.Canvas = (*ImageSurface)(nil)

// NewImageSurface creates a surface with the given dimensions. Sizes below
// one pixel are clamped to 1.
func NewImageSurface(width, height int) *ImageSurface {
	width = max(width, 1)
	height = max(height, 1)
	return NewImageSurfaceFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
}

// NewImageSurfaceFromImage creates a surface backed by an existing image.
// The surface will render into the provided image directly.
func NewImageSurfaceFromImage(img *image.RGBA) *ImageSurface {
	b := img.Bounds()
	s := &ImageSurface{width: b.Dx(), height: b.Dy(), base: img, dst: img}
	s.state = canvasState{matrix: compositor.Identity(), clip: b}
	return s
}

// Width returns the surface width.
func (s *ImageSurface) Width() int {
	return s.width
}

// Height returns the surface height.
func (s *ImageSurface) Height() int {
	return s.height
}

// Size returns the surface dimensions.
func (s *ImageSurface) Size() compositor.ISize {
	return compositor.ISize{Width: int64(s.width), Height: int64(s.height)}
}

// Image returns the underlying image.RGBA.
// This is a direct reference, not a copy.
func (s *ImageSurface) Image() *image.RGBA {
	return s.base
}

// Snapshot returns a copy of the current surface contents.
func (s *ImageSurface) Snapshot() *image.RGBA {
	if s.closed {
		return nil
	}
	out := image.NewRGBA(s.base.Bounds())
	copy(out.Pix, s.base.Pix)
	return out
}

// Close releases the pixel buffer. Close is idempotent.
func (s *ImageSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.base = nil
	s.dst = nil
	s.stack = nil
	return nil
}

// Closed reports whether Close has been called.
func (s *ImageSurface) Closed() bool {
	return s.closed
}

// Flush is a no-op: draws are applied immediately.
func (s *ImageSurface) Flush() {}

// --------------------------------------------------------------------------
// State management
// --------------------------------------------------------------------------

func (s *ImageSurface) Save() {
	s.stack = append(s.stack, savedState{state: s.state})
}

func (s *ImageSurface) SaveLayer(bounds *compositor.Rect, opacity float64) {
	r := s.state.clip
	if bounds != nil {
		r = r.Intersect(roundOut(s.state.matrix.TransformRect(*bounds)))
	}
	layer := &offscreenLayer{parent: s.dst, bounds: r, opacity: opacity}
	s.stack = append(s.stack, savedState{state: s.state, layer: layer})
	if s.closed {
		return
	}
	s.dst = image.NewRGBA(s.base.Bounds())
	s.state.clip = r
}

func (s *ImageSurface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	s.state = top.state
	if top.layer == nil || s.closed {
		return
	}
	layer := s.dst
	s.dst = top.layer.parent
	if top.layer.opacity <= 0 || top.layer.bounds.Empty() {
		return
	}
	alpha := uint8(math.Round(min(top.layer.opacity, 1) * 255))
	r := top.layer.bounds
	draw.DrawMask(s.dst, r, layer, r.Min, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
}

func (s *ImageSurface) SaveCount() int {
	return len(s.stack) + 1
}

func (s *ImageSurface) RestoreToCount(count int) {
	for len(s.stack)+1 > max(count, 1) {
		s.Restore()
	}
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

func (s *ImageSurface) Translate(dx, dy float64) { s.Transform(compositor.Translate(dx, dy)) }
func (s *ImageSurface) Scale(sx, sy float64)     { s.Transform(compositor.Scale(sx, sy)) }
func (s *ImageSurface) Rotate(radians float64)   { s.Transform(compositor.Rotate(radians)) }

func (s *ImageSurface) Transform(m compositor.Matrix) {
	s.state.matrix = s.state.matrix.Multiply(m)
}

func (s *ImageSurface) SetTransform(m compositor.Matrix) {
	s.state.matrix = m
}

func (s *ImageSurface) TotalMatrix() compositor.Matrix {
	return s.state.matrix
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

func (s *ImageSurface) ClipRect(r compositor.Rect) {
	m := s.state.matrix
	if m.IsAffine() && m.SkewX == 0 && m.SkewY == 0 {
		s.state.clip = s.state.clip.Intersect(roundNearest(m.TransformRect(r)))
		return
	}
	p := compositor.NewPath()
	p.AddRect(r)
	s.ClipPath(p)
}

func (s *ImageSurface) ClipRRect(rr compositor.RRect) {
	if rr.IsRect() {
		s.ClipRect(rr.Rect)
		return
	}
	p := compositor.NewPath()
	p.AddRRect(rr)
	s.ClipPath(p)
}

func (s *ImageSurface) ClipPath(p *compositor.Path) {
	if p == nil || s.closed {
		return
	}
	cov, r := s.coverage(p.Transform(s.state.matrix))
	full := image.NewAlpha(s.base.Bounds())
	if cov != nil {
		draw.Draw(full, r, cov, r.Min, draw.Src)
	}
	if s.state.mask != nil {
		multiplyMask(full, s.state.mask, r)
	}
	s.state.clip = r
	s.state.mask = full
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

func (s *ImageSurface) Clear(c compositor.Color) {
	s.DrawColor(c, recording.BlendModeSrc)
}

func (s *ImageSurface) DrawColor(c compositor.Color, mode recording.BlendMode) {
	if mode == recording.BlendModeClear {
		c = compositor.ColorTransparent
	}
	s.fillClip(image.NewUniform(c), compositeOp(mode))
}

func (s *ImageSurface) DrawPaint(p recording.Paint) {
	s.fillClip(s.paintSource(p), compositeOp(p.BlendMode))
}

func (s *ImageSurface) DrawLine(p0, p1 compositor.Point, p recording.Paint) {
	line := compositor.NewPath()
	line.MoveTo(p0.X, p0.Y)
	line.LineTo(p1.X, p1.Y)
	s.fill(strokeOutline(line, p.StrokeWidth), p)
}

func (s *ImageSurface) DrawRect(r compositor.Rect, p recording.Paint) {
	path := compositor.NewPath()
	path.AddRect(r)
	s.drawShape(path, p)
}

func (s *ImageSurface) DrawOval(r compositor.Rect, p recording.Paint) {
	path := compositor.NewPath()
	path.AddOval(r)
	s.drawShape(path, p)
}

func (s *ImageSurface) DrawCircle(center compositor.Point, radius float64, p recording.Paint) {
	s.DrawOval(compositor.Rect{
		Left: center.X - radius, Top: center.Y - radius,
		Right: center.X + radius, Bottom: center.Y + radius,
	}, p)
}

func (s *ImageSurface) DrawRRect(rr compositor.RRect, p recording.Paint) {
	path := compositor.NewPath()
	path.AddRRect(rr)
	s.drawShape(path, p)
}

func (s *ImageSurface) DrawDRRect(outer, inner compositor.RRect, p recording.Paint) {
	o := compositor.NewPath()
	o.AddRRect(outer)
	in := compositor.NewPath()
	in.AddRRect(inner)
	if p.Style == recording.PaintStyleStroke {
		o.AddPath(in)
		s.fill(strokeOutline(o, p.StrokeWidth), p)
		return
	}
	s.fill(ringPath(o, in), p)
}

func (s *ImageSurface) DrawPath(path *compositor.Path, p recording.Paint) {
	if path == nil {
		return
	}
	s.drawShape(path, p)
}

func (s *ImageSurface) DrawArc(oval compositor.Rect, startDeg, sweepDeg float64, useCenter bool, p recording.Paint) {
	path := compositor.NewPath()
	path.AddArc(oval, startDeg*math.Pi/180, sweepDeg*math.Pi/180, useCenter)
	s.drawShape(path, p)
}

func (s *ImageSurface) DrawPoints(mode recording.PointMode, pts []compositor.Point, p recording.Paint) {
	path := compositor.NewPath()
	switch mode {
	case recording.PointModePoints:
		half := max(p.StrokeWidth, 1) / 2
		for _, pt := range pts {
			path.AddRect(compositor.Rect{Left: pt.X - half, Top: pt.Y - half, Right: pt.X + half, Bottom: pt.Y + half})
		}
		s.fill(path, p)
		return
	case recording.PointModeLines:
		for i := 0; i+1 < len(pts); i += 2 {
			path.MoveTo(pts[i].X, pts[i].Y)
			path.LineTo(pts[i+1].X, pts[i+1].Y)
		}
	case recording.PointModePolygon:
		for i, pt := range pts {
			if i == 0 {
				path.MoveTo(pt.X, pt.Y)
			} else {
				path.LineTo(pt.X, pt.Y)
			}
		}
	}
	s.fill(strokeOutline(path, p.StrokeWidth), p)
}

// DrawVertices fills each triangle flat. Per-vertex colors are averaged per
// triangle and replace the paint.
func (s *ImageSurface) DrawVertices(v *recording.Vertices, mode recording.BlendMode, p recording.Paint) {
	if v == nil {
		return
	}
	for _, tri := range v.Triangles() {
		path := compositor.NewPath()
		a, b, c := v.Positions[tri[0]], v.Positions[tri[1]], v.Positions[tri[2]]
		path.MoveTo(a.X, a.Y)
		path.LineTo(b.X, b.Y)
		path.LineTo(c.X, c.Y)
		path.Close()
		tp := p
		tp.Style = recording.PaintStyleFill
		if len(v.Colors) == len(v.Positions) {
			tp.ColorSource = nil
			tp.Color = averageColor(v.Colors[tri[0]], v.Colors[tri[1]], v.Colors[tri[2]])
			tp.BlendMode = mode
		}
		s.fill(path, tp)
	}
}

func (s *ImageSurface) DrawDisplayList(r *recording.Recording, opacity float64) {
	if r == nil || opacity <= 0 {
		return
	}
	if opacity >= 1 {
		r.Playback(s)
		return
	}
	s.SaveLayer(nil, opacity)
	r.Playback(s)
	s.Restore()
}

func (s *ImageSurface) DrawText(blob *textblob.Blob, x, y float64, p recording.Paint) {
	if blob == nil {
		return
	}
	outline, err := blob.Outline()
	if err != nil {
		compositor.Logger().Warn("surface: text outline failed", "text", blob.Text(), "err", err)
		return
	}
	s.drawShape(outline.Transform(compositor.Translate(x, y)), p)
}

// DrawShadow draws an unblurred shadow of path offset by half the elevation,
// at half the color's alpha.
func (s *ImageSurface) DrawShadow(path *compositor.Path, c compositor.Color, elevation float64, _ bool, dpr float64) {
	if path == nil || c.IsTransparent() || elevation <= 0 {
		return
	}
	offset := elevation * max(dpr, 1) / 2
	s.fill(path.Transform(compositor.Translate(0, offset)), recording.NewPaint(c.ModulateAlpha(0.5)))
}

func (s *ImageSurface) drawShape(path *compositor.Path, p recording.Paint) {
	if p.Style == recording.PaintStyleStroke {
		path = strokeOutline(path, p.StrokeWidth)
	}
	s.fill(path, p)
}

// fill composites the paint through the coverage of a local-space path.
func (s *ImageSurface) fill(local *compositor.Path, p recording.Paint) {
	if s.closed || local == nil || local.IsEmpty() {
		return
	}
	cov, r := s.coverage(local.Transform(s.state.matrix))
	if cov == nil {
		return
	}
	if s.state.mask != nil {
		multiplyMask(cov, s.state.mask, r)
	}
	draw.DrawMask(s.dst, r, s.paintSource(p), r.Min, cov, r.Min, compositeOp(p.BlendMode))
}

// fillClip composites src over the whole clip.
func (s *ImageSurface) fillClip(src image.Image, op draw.Op) {
	if s.closed {
		return
	}
	r := s.state.clip.Intersect(s.dst.Bounds())
	if r.Empty() {
		return
	}
	if s.state.mask == nil {
		draw.Draw(s.dst, r, src, r.Min, op)
		return
	}
	draw.DrawMask(s.dst, r, src, r.Min, s.state.mask, r.Min, op)
}

func compositeOp(mode recording.BlendMode) draw.Op {
	switch mode {
	case recording.BlendModeSrc, recording.BlendModeClear:
		return draw.Src
	default:
		return draw.Over
	}
}

func averageColor(cs ...compositor.Color) compositor.Color {
	var a, r, g, b int
	for _, c := range cs {
		a += int(c.A())
		r += int(c.R())
		g += int(c.G())
		b += int(c.B())
	}
	n := len(cs)
	return compositor.ARGB(uint8(a/n), uint8(r/n), uint8(g/n), uint8(b/n))
}

func roundOut(r compositor.Rect) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(r.Left)), int(math.Floor(r.Top)),
		int(math.Ceil(r.Right)), int(math.Ceil(r.Bottom)),
	)
}

func roundNearest(r compositor.Rect) image.Rectangle {
	if r.IsEmpty() {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Round(r.Left)), int(math.Round(r.Top)),
		int(math.Round(r.Right)), int(math.Round(r.Bottom)),
	)
}
