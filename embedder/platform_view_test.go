package embedder

import (
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/mutators"
)

func TestClippedFrame(t *testing.T) {
	bounds := ltwh(0, 0, 100, 100)
	r1 := compositor.Rect{Left: 10, Top: 10, Right: 90, Bottom: 90}
	r2 := compositor.Rect{Left: 0, Top: 0, Right: 50, Bottom: 50}
	m := compositor.Translate(20, 0)

	tests := []struct {
		name  string
		build func(s *mutators.Stack)
		want  compositor.Rect
	}{
		{"no mutators", func(*mutators.Stack) {}, bounds},
		{"clip, transform, clip", func(s *mutators.Stack) {
			s.PushClipRect(r1)
			s.PushTransform(m)
			s.PushClipRect(r2)
		}, compositor.Rect{Left: 20, Top: 10, Right: 70, Bottom: 50}},
		{"transform after both clips", func(s *mutators.Stack) {
			s.PushClipRect(r1)
			s.PushClipRect(r2)
			s.PushTransform(m)
		}, compositor.Rect{Left: 10, Top: 10, Right: 50, Bottom: 50}},
		{"rounded clip uses its bounds", func(s *mutators.Stack) {
			s.PushClipRRect(compositor.RRectFromRectXY(r2, 5, 5))
		}, r2},
		{"path clip uses its bounds", func(s *mutators.Stack) {
			p := compositor.NewPath()
			p.AddOval(ltwh(60, 60, 20, 30))
			s.PushClipPath(p)
		}, ltwh(60, 60, 20, 30)},
		{"opacity and backdrop are ignored", func(s *mutators.Stack) {
			s.PushOpacity(10)
			s.PushBackdropFilter(r2)
			s.PushBackdropClipRect(r2)
			s.PushBackdropClipRRect(compositor.RRectFromRectXY(r2, 2, 2))
		}, bounds},
		{"disjoint clip", func(s *mutators.Stack) {
			s.PushClipRect(ltwh(200, 200, 10, 10))
		}, compositor.Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mutators.NewStack()
			tt.build(s)
			params := mutators.NewEmbeddedViewParams(compositor.Identity(), bounds.Size(), s)
			if got := ClippedFrame(params); got != tt.want {
				t.Errorf("ClippedFrame() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProjectPlatformView(t *testing.T) {
	stack := mutators.NewStack()
	stack.PushClipRect(ltwh(0, 0, 30, 30))
	v := platformView(compositor.ISize{Width: 100, Height: 100}, 4, ltwh(20, 20, 40, 40), stack, compositor.Rect{})

	pv := ProjectPlatformView(v)
	if id, ok := pv.ViewIdentifier().PlatformViewID(); !ok || id != 4 {
		t.Errorf("ViewIdentifier() = %v, want platform view 4", pv.ViewIdentifier())
	}
	want := compositor.Rect{Left: 20, Top: 20, Right: 30, Bottom: 30}
	if got := pv.ClippedFrame(); got != want {
		t.Errorf("ClippedFrame() = %v, want %v", got, want)
	}
	if pv.Params() != v.Params() {
		t.Error("Params() does not return the view's params")
	}
}

func TestProjectPlatformViewRootPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("ProjectPlatformView(root) did not panic")
		}
	}()
	ProjectPlatformView(NewRootView(compositor.ISize{Width: 1, Height: 1}, compositor.Identity()))
}
