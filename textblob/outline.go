package textblob

import (
	"fmt"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/compositor"
)

// Outline returns the glyph outlines of the blob as one path in pixels,
// relative to the baseline origin with y growing downward.
func (b *Blob) Outline() (*compositor.Path, error) {
	path := compositor.NewPath()
	if len(b.runs) == 0 {
		return path, nil
	}
	var buf sfnt.Buffer
	ppem := fixed.Int26_6(b.size * 64)
	for _, run := range b.runs {
		for _, g := range run.Glyphs {
			segs, err := b.shaper.sfnt.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
			if err != nil {
				return nil, fmt.Errorf("textblob: load glyph %d: %w", g.ID, err)
			}
			appendSegments(path, segs, g.X, g.Y)
		}
	}
	return path, nil
}

func appendSegments(path *compositor.Path, segs sfnt.Segments, dx, dy float64) {
	pt := func(p fixed.Point26_6) (float64, float64) {
		return fixedToFloat(p.X) + dx, fixedToFloat(p.Y) + dy
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				path.Close()
			}
			x, y := pt(s.Args[0])
			path.MoveTo(x, y)
			open = true
		case sfnt.SegmentOpLineTo:
			x, y := pt(s.Args[0])
			path.LineTo(x, y)
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(s.Args[0])
			x, y := pt(s.Args[1])
			path.QuadraticTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(s.Args[0])
			c2x, c2y := pt(s.Args[1])
			x, y := pt(s.Args[2])
			path.CubicTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		path.Close()
	}
}
