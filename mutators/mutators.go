// Package mutators holds the clip, transform and opacity operations that
// ancestors of a platform view apply to it, and the per-view parameters the
// engine records for each platform view during preroll.
package mutators

import (
	"iter"
	"slices"

	"github.com/gogpu/compositor"
)

// Type identifies the kind of a Mutator.
type Type int

const (
	ClipRect Type = iota
	ClipRRect
	// ClipRSE is a rounded superellipse clip. It is carried as its bounding
	// rounded rectangle.
	ClipRSE
	ClipPath
	Transform
	Opacity
	BackdropFilter
	BackdropClipRect
	BackdropClipRRect
	BackdropClipRSE
	BackdropClipPath
)

var typeNames = [...]string{
	ClipRect:          "ClipRect",
	ClipRRect:         "ClipRRect",
	ClipRSE:           "ClipRSE",
	ClipPath:          "ClipPath",
	Transform:         "Transform",
	Opacity:           "Opacity",
	BackdropFilter:    "BackdropFilter",
	BackdropClipRect:  "BackdropClipRect",
	BackdropClipRRect: "BackdropClipRRect",
	BackdropClipRSE:   "BackdropClipRSE",
	BackdropClipPath:  "BackdropClipPath",
}

func (t Type) String() string {
	if int(t) >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "Unknown"
}

// Mutator is one entry of a MutatorsStack. Only the fields relevant to Type
// are set.
type Mutator struct {
	Type   Type
	Rect   compositor.Rect
	RRect  compositor.RRect
	Path   *compositor.Path
	Matrix compositor.Matrix
	// Alpha is the opacity in the range 0-255.
	Alpha uint8
	// FilterBounds is the area affected by a backdrop filter.
	FilterBounds compositor.Rect
}

// AlphaFloat returns the opacity in [0, 1].
func (m Mutator) AlphaFloat() float64 {
	return float64(m.Alpha) / 255
}

// IsClip reports whether the mutator is a clip that bounds the view.
// Backdrop clips do not.
func (m Mutator) IsClip() bool {
	switch m.Type {
	case ClipRect, ClipRRect, ClipRSE, ClipPath:
		return true
	}
	return false
}

// ClipBounds returns the local-space bounds of a clip mutator.
func (m Mutator) ClipBounds() compositor.Rect {
	switch m.Type {
	case ClipRect, BackdropClipRect:
		return m.Rect
	case ClipRRect, ClipRSE, BackdropClipRRect, BackdropClipRSE:
		return m.RRect.Bounds()
	case ClipPath, BackdropClipPath:
		return m.Path.Bounds()
	}
	return compositor.Rect{}
}

// Stack is an ordered list of mutators. Index 0 is the outermost mutator
// (pushed first, closest to the root of the layer tree); the last entry is
// the one closest to the platform view.
type Stack struct {
	items []Mutator
}

// NewStack returns an empty stack.
func NewStack() *Stack {
	return &Stack{}
}

func (s *Stack) push(m Mutator) {
	s.items = append(s.items, m)
}

// PushClipRect pushes a rectangular clip.
func (s *Stack) PushClipRect(r compositor.Rect) {
	s.push(Mutator{Type: ClipRect, Rect: r})
}

// PushClipRRect pushes a rounded rectangle clip.
func (s *Stack) PushClipRRect(r compositor.RRect) {
	s.push(Mutator{Type: ClipRRect, RRect: r})
}

// PushClipRSE pushes a rounded superellipse clip bounded by r.
func (s *Stack) PushClipRSE(r compositor.RRect) {
	s.push(Mutator{Type: ClipRSE, RRect: r})
}

// PushClipPath pushes a path clip.
func (s *Stack) PushClipPath(p *compositor.Path) {
	s.push(Mutator{Type: ClipPath, Path: p})
}

// PushTransform pushes a transform applied to everything above it.
func (s *Stack) PushTransform(m compositor.Matrix) {
	s.push(Mutator{Type: Transform, Matrix: m})
}

// PushOpacity pushes an opacity in [0, 255].
func (s *Stack) PushOpacity(alpha uint8) {
	s.push(Mutator{Type: Opacity, Alpha: alpha})
}

// PushBackdropFilter records a backdrop filter covering filterBounds.
func (s *Stack) PushBackdropFilter(filterBounds compositor.Rect) {
	s.push(Mutator{Type: BackdropFilter, FilterBounds: filterBounds})
}

// PushBackdropClipRect pushes a backdrop clip. Backdrop clips do not bound
// the view.
func (s *Stack) PushBackdropClipRect(r compositor.Rect) {
	s.push(Mutator{Type: BackdropClipRect, Rect: r})
}

// PushBackdropClipRRect pushes a rounded backdrop clip.
func (s *Stack) PushBackdropClipRRect(r compositor.RRect) {
	s.push(Mutator{Type: BackdropClipRRect, RRect: r})
}

// PushBackdropClipRSE pushes a superellipse backdrop clip.
func (s *Stack) PushBackdropClipRSE(r compositor.RRect) {
	s.push(Mutator{Type: BackdropClipRSE, RRect: r})
}

// PushBackdropClipPath pushes a path backdrop clip.
func (s *Stack) PushBackdropClipPath(p *compositor.Path) {
	s.push(Mutator{Type: BackdropClipPath, Path: p})
}

// Pop removes the most recently pushed mutator. Popping an empty stack is a
// no-op.
func (s *Stack) Pop() {
	if len(s.items) > 0 {
		s.items = s.items[:len(s.items)-1]
	}
}

// Len returns the number of mutators.
func (s *Stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// At returns the i-th mutator in push order.
func (s *Stack) At(i int) Mutator {
	return s.items[i]
}

// All yields mutators in push order, outermost first.
func (s *Stack) All() iter.Seq[Mutator] {
	return func(yield func(Mutator) bool) {
		if s == nil {
			return
		}
		for _, m := range s.items {
			if !yield(m) {
				return
			}
		}
	}
}

// Backward yields mutators innermost first.
func (s *Stack) Backward() iter.Seq[Mutator] {
	return func(yield func(Mutator) bool) {
		if s == nil {
			return
		}
		for _, m := range slices.Backward(s.items) {
			if !yield(m) {
				return
			}
		}
	}
}

// Clone returns an independent copy. Paths are shared.
func (s *Stack) Clone() *Stack {
	if s == nil {
		return NewStack()
	}
	return &Stack{items: slices.Clone(s.items)}
}

// Equal reports whether both stacks hold the same mutators. Paths compare
// by identity.
func (s *Stack) Equal(other *Stack) bool {
	return slices.Equal(s.Clone().items, other.Clone().items)
}
