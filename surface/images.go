// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
)

func (s *ImageSurface) DrawImage(img image.Image, topLeft compositor.Point, p *recording.Paint) {
	if img == nil {
		return
	}
	b := img.Bounds()
	src := compositor.Rect{Left: float64(b.Min.X), Top: float64(b.Min.Y), Right: float64(b.Max.X), Bottom: float64(b.Max.Y)}
	s.DrawImageRect(img, src, compositor.RectFromLTWH(topLeft.X, topLeft.Y, src.Width(), src.Height()), p)
}

func (s *ImageSurface) DrawImageRect(img image.Image, src, dst compositor.Rect, p *recording.Paint) {
	if img == nil || src.IsEmpty() || dst.IsEmpty() {
		return
	}
	local := compositor.Translate(dst.Left, dst.Top).
		Multiply(compositor.Scale(dst.Width()/src.Width(), dst.Height()/src.Height())).
		Multiply(compositor.Translate(-src.Left, -src.Top))
	s.drawImageTransformed(img, roundNearest(src).Intersect(img.Bounds()), local, paintOpacity(p))
}

// DrawImageNine keeps the four corners of img outside center at their
// natural size and stretches the rest. Corners shrink proportionally when
// dst is too small to hold them.
func (s *ImageSurface) DrawImageNine(img image.Image, center image.Rectangle, dst compositor.Rect, p *recording.Paint) {
	if img == nil || dst.IsEmpty() {
		return
	}
	b := img.Bounds()
	center = center.Intersect(b)
	xs := nineCuts(float64(b.Min.X), float64(center.Min.X), float64(center.Max.X), float64(b.Max.X), dst.Left, dst.Right)
	ys := nineCuts(float64(b.Min.Y), float64(center.Min.Y), float64(center.Max.Y), float64(b.Max.Y), dst.Top, dst.Bottom)
	for row := range 3 {
		for col := range 3 {
			src := compositor.Rect{Left: xs.src[col], Top: ys.src[row], Right: xs.src[col+1], Bottom: ys.src[row+1]}
			d := compositor.Rect{Left: xs.dst[col], Top: ys.dst[row], Right: xs.dst[col+1], Bottom: ys.dst[row+1]}
			s.DrawImageRect(img, src, d, p)
		}
	}
}

type cuts struct {
	src, dst [4]float64
}

func nineCuts(s0, s1, s2, s3, d0, d3 float64) cuts {
	lead, trail := s1-s0, s3-s2
	if span := d3 - d0; lead+trail > span && lead+trail > 0 {
		k := span / (lead + trail)
		lead, trail = lead*k, trail*k
	}
	return cuts{
		src: [4]float64{s0, s1, s2, s3},
		dst: [4]float64{d0, d0 + lead, d3 - trail, d3},
	}
}

// DrawAtlas draws sprites from atlas. Per-sprite colors modulate opacity.
func (s *ImageSurface) DrawAtlas(atlas image.Image, xforms []recording.RSTransform, tex []compositor.Rect, colors []compositor.Color, _ recording.BlendMode, p *recording.Paint) {
	if atlas == nil {
		return
	}
	base := paintOpacity(p)
	for i := range min(len(xforms), len(tex)) {
		opacity := base
		if i < len(colors) {
			opacity *= float64(colors[i].A()) / 255
		}
		local := xforms[i].Matrix().Multiply(compositor.Translate(-tex[i].Left, -tex[i].Top))
		s.drawImageTransformed(atlas, roundNearest(tex[i]).Intersect(atlas.Bounds()), local, opacity)
	}
}

// drawImageTransformed resamples sr of img through local and the current
// transform. Perspective is dropped.
func (s *ImageSurface) drawImageTransformed(img image.Image, sr image.Rectangle, local compositor.Matrix, opacity float64) {
	if s.closed || sr.Empty() || opacity <= 0 {
		return
	}
	m := s.state.matrix.Multiply(local)
	dev := roundOut(m.TransformRect(compositor.Rect{
		Left: float64(sr.Min.X), Top: float64(sr.Min.Y), Right: float64(sr.Max.X), Bottom: float64(sr.Max.Y),
	}))
	r := dev.Intersect(s.state.clip).Intersect(s.dst.Bounds())
	if r.Empty() {
		return
	}
	target := s.dst.SubImage(r).(*image.RGBA)
	opts := &draw.Options{}
	if mask := alphaMask(opacity); mask != nil {
		opts.SrcMask = mask
	}
	if s.state.mask != nil {
		opts.DstMask = s.state.mask
	}
	if m.IsTranslation() && isIntegral(m.TransX) && isIntegral(m.TransY) && opts.DstMask == nil {
		draw.DrawMask(target, r, img, sr.Min.Add(r.Min.Sub(dev.Min)), opts.SrcMask, image.Point{}, draw.Over)
		return
	}
	aff := f64.Aff3{m.ScaleX, m.SkewX, m.TransX, m.SkewY, m.ScaleY, m.TransY}
	draw.ApproxBiLinear.Transform(target, aff, img, sr, draw.Over, opts)
}

func paintOpacity(p *recording.Paint) float64 {
	if p == nil {
		return 1
	}
	return float64(p.Color.A()) / 255
}

func isIntegral(v float64) bool {
	return v == math.Trunc(v)
}
