// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
)

// paintSource returns the device-space source image for a paint.
func (s *ImageSurface) paintSource(p recording.Paint) image.Image {
	switch src := p.ColorSource.(type) {
	case nil:
		return image.NewUniform(p.Color)
	case recording.ColorColorSource:
		return image.NewUniform(src.Color)
	case *recording.LinearGradient:
		inv, ok := s.state.matrix.Invert()
		if !ok {
			return image.Transparent
		}
		return &gradientImage{g: src, inv: inv}
	case *recording.ImageColorSource:
		inv, ok := s.state.matrix.Invert()
		if !ok || src.Image == nil || src.Image.Bounds().Empty() {
			return image.Transparent
		}
		return &tiledImage{img: src.Image, inv: inv}
	default:
		return image.NewUniform(p.Color)
	}
}

// gradientImage evaluates a linear gradient at device pixel centers.
type gradientImage struct {
	g   *recording.LinearGradient
	inv compositor.Matrix
}

func (gi *gradientImage) ColorModel() color.Model { return color.NRGBAModel }

func (gi *gradientImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (gi *gradientImage) At(x, y int) color.Color {
	p := gi.inv.TransformPoint(compositor.Pt(float64(x)+0.5, float64(y)+0.5))
	d := gi.g.End.Sub(gi.g.Start)
	l2 := d.X*d.X + d.Y*d.Y
	t := 0.0
	if l2 > 0 {
		v := p.Sub(gi.g.Start)
		t = (v.X*d.X + v.Y*d.Y) / l2
	}
	return gi.g.ColorAt(t).NRGBA()
}

// tiledImage repeats an image in local space.
type tiledImage struct {
	img image.Image
	inv compositor.Matrix
}

func (ti *tiledImage) ColorModel() color.Model { return ti.img.ColorModel() }

func (ti *tiledImage) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (ti *tiledImage) At(x, y int) color.Color {
	p := ti.inv.TransformPoint(compositor.Pt(float64(x)+0.5, float64(y)+0.5))
	b := ti.img.Bounds()
	sx := b.Min.X + wrap(int(math.Floor(p.X))-b.Min.X, b.Dx())
	sy := b.Min.Y + wrap(int(math.Floor(p.Y))-b.Min.Y, b.Dy())
	return ti.img.At(sx, sy)
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func alphaColor(opacity float64) color.Alpha {
	return color.Alpha{A: uint8(math.Round(max(0, min(opacity, 1)) * 255))}
}
