package compositor

import (
	"math"
	"testing"
)

func TestPathBounds(t *testing.T) {
	p := NewPath()
	if !p.IsEmpty() {
		t.Error("new path should be empty")
	}
	if got := p.Bounds(); !got.IsEmpty() {
		t.Errorf("Bounds() of empty path = %v, want empty", got)
	}

	p.AddRect(RectFromLTWH(10, 20, 30, 40))
	if got, want := p.Bounds(), (Rect{10, 20, 40, 60}); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestPathOvalBounds(t *testing.T) {
	p := NewPath()
	p.AddOval(RectFromLTWH(0, 0, 100, 50))
	got := p.Bounds()
	if math.Abs(got.Left) > 1e-9 || math.Abs(got.Right-100) > 1e-9 ||
		math.Abs(got.Top) > 1e-9 || math.Abs(got.Bottom-50) > 1e-9 {
		t.Errorf("Bounds() = %v, want Rect(0, 0, 100, 50)", got)
	}
}

func TestPathTransform(t *testing.T) {
	p := NewPath()
	p.AddRect(RectFromLTWH(0, 0, 10, 10))
	got := p.Transform(Translate(5, 5)).Bounds()
	if want := (Rect{5, 5, 15, 15}); got != want {
		t.Errorf("transformed Bounds() = %v, want %v", got, want)
	}
}

func TestPathFlatten(t *testing.T) {
	p := NewPath()
	p.AddRect(RectFromLTWH(0, 0, 10, 10))
	p.MoveTo(20, 20)
	p.QuadraticTo(30, 20, 30, 30)

	polys, closed := p.Flatten(0.25)
	if len(polys) != 2 {
		t.Fatalf("Flatten() returned %d polylines, want 2", len(polys))
	}
	if !closed[0] || closed[1] {
		t.Errorf("closed = %v, want [true false]", closed)
	}
	if len(polys[0]) != 4 {
		t.Errorf("rect polyline has %d points, want 4", len(polys[0]))
	}
	end := polys[1][len(polys[1])-1]
	if math.Abs(end.X-30) > 1e-9 || math.Abs(end.Y-30) > 1e-9 {
		t.Errorf("quad end = %v, want (30, 30)", end)
	}
}

func TestPathArcWedge(t *testing.T) {
	p := NewPath()
	p.AddArc(RectFromLTWH(0, 0, 20, 20), 0, math.Pi/2, true)
	got := p.Bounds()
	if got.Left < 10-1e-9 || got.Top < 10-1e-9 || got.Right > 20+1e-9 || got.Bottom > 20+1e-9 {
		t.Errorf("quarter wedge Bounds() = %v, want within Rect(10, 10, 20, 20)", got)
	}
	if _, ok := p.Elements()[len(p.Elements())-1].(Close); !ok {
		t.Error("wedge should end with Close")
	}
}
