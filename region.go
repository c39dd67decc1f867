package compositor

import (
	"slices"
)

// Region is a set of pixels described by non-overlapping integer rectangles.
// The rectangles are kept in y-x banded order: sorted by top edge, then left
// edge, with vertically adjacent bands holding identical spans merged.
//
// The zero Region is empty and ready to use. Regions are immutable values.
type Region struct {
	rects  []IRect
	bounds IRect
}

// NewRegion returns the union of rects as a Region. Empty rectangles are
// ignored.
func NewRegion(rects ...IRect) Region {
	return buildRegion(rects)
}

// Rects returns the disjoint rectangles of the region. The slice must not be
// modified.
func (r Region) Rects() []IRect {
	return r.rects
}

// Bounds returns the bounding box of the region.
func (r Region) Bounds() IRect {
	return r.bounds
}

// IsEmpty reports whether the region covers no pixels.
func (r Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Union returns the region covering both r and other.
func (r Region) Union(other Region) Region {
	if other.IsEmpty() {
		return r
	}
	if r.IsEmpty() {
		return other
	}
	all := make([]IRect, 0, len(r.rects)+len(other.rects))
	all = append(all, r.rects...)
	all = append(all, other.rects...)
	return buildRegion(all)
}

// IntersectsRect reports whether any pixel of rect lies in the region.
func (r Region) IntersectsRect(rect IRect) bool {
	if !r.bounds.Intersects(rect) {
		return false
	}
	for _, rr := range r.rects {
		if rr.Top >= rect.Bottom {
			break
		}
		if rr.Intersects(rect) {
			return true
		}
	}
	return false
}

// Intersects reports whether r and other share any pixel.
func (r Region) Intersects(other Region) bool {
	if !r.bounds.Intersects(other.bounds) {
		return false
	}
	for _, rect := range other.rects {
		if r.IntersectsRect(rect) {
			return true
		}
	}
	return false
}

type span struct{ left, right int64 }

// buildRegion sweeps the horizontal bands formed by every distinct top and
// bottom edge, merges the x spans covering each band and coalesces equal
// adjacent bands.
func buildRegion(rects []IRect) Region {
	in := make([]IRect, 0, len(rects))
	for _, rc := range rects {
		if !rc.IsEmpty() {
			in = append(in, rc)
		}
	}
	if len(in) == 0 {
		return Region{}
	}

	ys := make([]int64, 0, len(in)*2)
	for _, rc := range in {
		ys = append(ys, rc.Top, rc.Bottom)
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var (
		out       []IRect
		prevSpans []span
		prevStart int // index in out where the previous band's rects begin
	)
	for i := 0; i+1 < len(ys); i++ {
		top, bottom := ys[i], ys[i+1]
		spans := bandSpans(in, top, bottom)
		if len(spans) == 0 {
			prevSpans = nil
			continue
		}
		if prevSpans != nil && slices.Equal(spans, prevSpans) && out[prevStart].Bottom == top {
			for j := prevStart; j < len(out); j++ {
				out[j].Bottom = bottom
			}
			continue
		}
		prevStart = len(out)
		for _, s := range spans {
			out = append(out, IRect{Left: s.left, Top: top, Right: s.right, Bottom: bottom})
		}
		prevSpans = spans
	}

	b := out[0]
	for _, rc := range out[1:] {
		b.Left = min(b.Left, rc.Left)
		b.Top = min(b.Top, rc.Top)
		b.Right = max(b.Right, rc.Right)
		b.Bottom = max(b.Bottom, rc.Bottom)
	}
	return Region{rects: out, bounds: b}
}

func bandSpans(rects []IRect, top, bottom int64) []span {
	var spans []span
	for _, rc := range rects {
		if rc.Top <= top && rc.Bottom >= bottom {
			spans = append(spans, span{rc.Left, rc.Right})
		}
	}
	if len(spans) == 0 {
		return nil
	}
	slices.SortFunc(spans, func(a, b span) int {
		switch {
		case a.left < b.left:
			return -1
		case a.left > b.left:
			return 1
		}
		return 0
	})
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.left <= last.right {
			last.right = max(last.right, s.right)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
