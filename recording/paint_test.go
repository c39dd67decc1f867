package recording

import (
	"testing"

	"github.com/gogpu/compositor"
)

func TestLinearGradientColorAt(t *testing.T) {
	g := &LinearGradient{Colors: []compositor.Color{compositor.ColorBlack, compositor.ColorWhite}}
	tests := []struct {
		t    float64
		want compositor.Color
	}{
		{-1, compositor.ColorBlack},
		{0, compositor.ColorBlack},
		{1, compositor.ColorWhite},
		{2, compositor.ColorWhite},
		{0.5, compositor.RGB(128, 128, 128)},
	}
	for _, tt := range tests {
		if got := g.ColorAt(tt.t); got != tt.want {
			t.Errorf("ColorAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestVerticesTriangles(t *testing.T) {
	pts := []compositor.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	tests := []struct {
		mode VertexMode
		want int
	}{
		{VertexModeTriangles, 1},
		{VertexModeTriangleStrip, 2},
		{VertexModeTriangleFan, 2},
	}
	for _, tt := range tests {
		v := &Vertices{Mode: tt.mode, Positions: pts}
		if got := len(v.Triangles()); got != tt.want {
			t.Errorf("mode %d: len(Triangles()) = %d, want %d", tt.mode, got, tt.want)
		}
	}
	v := &Vertices{Positions: pts, Indices: []uint16{0, 1, 2, 0, 2, 3}}
	if got := len(v.Triangles()); got != 2 {
		t.Errorf("indexed len(Triangles()) = %d, want 2", got)
	}
	if got, want := v.Bounds(), (compositor.Rect{Right: 1, Bottom: 1}); got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestRSTransformMatrix(t *testing.T) {
	m := RSTransform{SCos: 1, TX: 3, TY: 4}.Matrix()
	if got := m.TransformPoint(compositor.Pt(1, 1)); got != compositor.Pt(4, 5) {
		t.Errorf("TransformPoint() = %v, want (4, 5)", got)
	}
}
