package mutators

import (
	"testing"

	"github.com/gogpu/compositor"
)

func TestStackTraversalOrder(t *testing.T) {
	s := NewStack()
	s.PushClipRect(compositor.RectFromLTWH(0, 0, 10, 10))
	s.PushTransform(compositor.Translate(1, 1))
	s.PushOpacity(128)

	var forward []Type
	for m := range s.All() {
		forward = append(forward, m.Type)
	}
	want := []Type{ClipRect, Transform, Opacity}
	if len(forward) != len(want) {
		t.Fatalf("All() yielded %v, want %v", forward, want)
	}
	for i := range want {
		if forward[i] != want[i] {
			t.Errorf("All()[%d] = %v, want %v", i, forward[i], want[i])
		}
	}

	var backward []Type
	for m := range s.Backward() {
		backward = append(backward, m.Type)
	}
	for i := range want {
		if backward[i] != want[len(want)-1-i] {
			t.Errorf("Backward()[%d] = %v, want %v", i, backward[i], want[len(want)-1-i])
		}
	}
}

func TestStackPopAndClone(t *testing.T) {
	s := NewStack()
	s.Pop()
	if s.Len() != 0 {
		t.Fatalf("Len() after popping empty stack = %d", s.Len())
	}
	s.PushOpacity(10)
	s.PushOpacity(20)
	c := s.Clone()
	s.Pop()
	if s.Len() != 1 || c.Len() != 2 {
		t.Errorf("Len() = %d, clone Len() = %d, want 1 and 2", s.Len(), c.Len())
	}
	if s.Equal(c) {
		t.Error("Equal() = true after diverging")
	}
	var nilStack *Stack
	if nilStack.Len() != 0 {
		t.Error("nil stack Len() != 0")
	}
}

func TestMutatorClipBounds(t *testing.T) {
	r := compositor.RectFromLTWH(1, 2, 3, 4)
	p := compositor.NewPath()
	p.AddRect(r)
	tests := []struct {
		m    Mutator
		clip bool
	}{
		{Mutator{Type: ClipRect, Rect: r}, true},
		{Mutator{Type: ClipRRect, RRect: compositor.RRectFromRectXY(r, 1, 1)}, true},
		{Mutator{Type: ClipRSE, RRect: compositor.RRectFromRectXY(r, 1, 1)}, true},
		{Mutator{Type: ClipPath, Path: p}, true},
		{Mutator{Type: BackdropClipRect, Rect: r}, false},
	}
	for _, tt := range tests {
		if got := tt.m.ClipBounds(); got != r {
			t.Errorf("%v ClipBounds() = %v, want %v", tt.m.Type, got, r)
		}
		if got := tt.m.IsClip(); got != tt.clip {
			t.Errorf("%v IsClip() = %v, want %v", tt.m.Type, got, tt.clip)
		}
	}
}

func TestEmbeddedViewParams(t *testing.T) {
	s := NewStack()
	s.PushOpacity(255)
	p := NewEmbeddedViewParams(compositor.Translate(10, 20), compositor.Size{Width: 30, Height: 40}, s)

	if got, want := p.FinalBoundingRect(), compositor.RectFromLTWH(10, 20, 30, 40); got != want {
		t.Errorf("FinalBoundingRect() = %v, want %v", got, want)
	}
	if got := p.PixelOffset(); got != compositor.Pt(10, 20) {
		t.Errorf("PixelOffset() = %v", got)
	}

	s.PushOpacity(0)
	if p.Mutators().Len() != 1 {
		t.Error("params must not alias the caller's stack")
	}

	q := NewEmbeddedViewParams(compositor.Translate(10, 20), compositor.Size{Width: 30, Height: 40}, p.Mutators())
	if !p.Equal(q) {
		t.Error("Equal() = false for identical params")
	}
}
