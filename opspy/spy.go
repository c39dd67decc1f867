// Package opspy detects whether a recording draws any visible pixel.
//
// The check works on paint state only. Image pixels are never inspected, so
// any image draw counts as visible.
package opspy

import (
	"image"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/textblob"
)

// Spy is a recording.Receiver that records whether any dispatched draw
// would produce non-transparent pixels. Use a fresh Spy per query.
type Spy struct {
	recording.IgnoreSaveRestore
	recording.IgnoreTransforms
	recording.IgnoreClipping

	willDraw  bool
	didDraw   bool
	lastColor compositor.Color
	visited   int
}

// New returns a Spy in its initial state: the default paint is opaque black,
// so draws are assumed visible until a transparent color is set.
func New() *Spy {
	return &Spy{willDraw: true, lastColor: compositor.ColorBlack}
}

// DidDraw reports whether a visible draw was observed. Once true it stays
// true.
func (s *Spy) DidDraw() bool {
	return s.didDraw
}

// Visited returns how many draw commands the spy has been dispatched,
// including those of nested recordings it descended into.
func (s *Spy) Visited() int {
	return s.visited
}

// DidDraw dispatches r through a fresh Spy.
func DidDraw(r *recording.Recording) bool {
	s := New()
	r.Dispatch(s)
	return s.DidDraw()
}

// --------------------------------------------------------------------------
// Attributes
// --------------------------------------------------------------------------

// SetColor makes later paint draws visible unless c is transparent.
func (s *Spy) SetColor(c compositor.Color) {
	s.lastColor = c
	s.willDraw = !c.IsTransparent()
}

// SetColorSource makes draws visible unless the source is a transparent
// solid color. Clearing the source falls back to the last solid color.
func (s *Spy) SetColorSource(src recording.ColorSource) {
	switch cs := src.(type) {
	case nil:
		s.willDraw = !s.lastColor.IsTransparent()
	case recording.ColorColorSource:
		s.willDraw = !cs.Color.IsTransparent()
	default:
		s.willDraw = true
	}
}

// SetStyle is ignored: stroke and fill draw alike.
func (s *Spy) SetStyle(recording.PaintStyle) {}

// SetStrokeWidth is ignored.
func (s *Spy) SetStrokeWidth(float64) {}

// SetBlendMode is ignored.
func (s *Spy) SetBlendMode(recording.BlendMode) {}

// --------------------------------------------------------------------------
// Draws
// --------------------------------------------------------------------------

func (s *Spy) paintDraw() {
	s.visited++
	s.didDraw = s.didDraw || s.willDraw
}

func (s *Spy) imageDraw() {
	s.visited++
	s.didDraw = true
}

// DrawColor tests c directly, ignoring the paint.
func (s *Spy) DrawColor(c compositor.Color, _ recording.BlendMode) {
	s.visited++
	s.didDraw = s.didDraw || !c.IsTransparent()
}

// DrawPaint counts when the current paint is visible.
func (s *Spy) DrawPaint() { s.paintDraw() }

// DrawLine counts when the current paint is visible.
func (s *Spy) DrawLine(_, _ compositor.Point) { s.paintDraw() }

// DrawRect counts when the current paint is visible.
func (s *Spy) DrawRect(compositor.Rect) { s.paintDraw() }

// DrawOval counts when the current paint is visible.
func (s *Spy) DrawOval(compositor.Rect) { s.paintDraw() }

// DrawCircle counts when the current paint is visible.
func (s *Spy) DrawCircle(compositor.Point, float64) { s.paintDraw() }

// DrawRRect counts when the current paint is visible.
func (s *Spy) DrawRRect(compositor.RRect) { s.paintDraw() }

// DrawDRRect counts when the current paint is visible.
func (s *Spy) DrawDRRect(_, _ compositor.RRect) { s.paintDraw() }

// DrawPath counts when the current paint is visible.
func (s *Spy) DrawPath(*compositor.Path) { s.paintDraw() }

// DrawArc counts when the current paint is visible.
func (s *Spy) DrawArc(compositor.Rect, float64, float64, bool) { s.paintDraw() }

// DrawPoints counts when the current paint is visible.
func (s *Spy) DrawPoints(recording.PointMode, []compositor.Point) { s.paintDraw() }

// DrawVertices follows the paint even when vertices carry colors.
func (s *Spy) DrawVertices(*recording.Vertices, recording.BlendMode) { s.paintDraw() }

// DrawText counts when the current paint is visible.
func (s *Spy) DrawText(*textblob.Blob, float64, float64) { s.paintDraw() }

// DrawShadow tests the shadow color directly.
func (s *Spy) DrawShadow(_ *compositor.Path, c compositor.Color, _ float64, _ bool, _ float64) {
	s.visited++
	s.didDraw = s.didDraw || !c.IsTransparent()
}

// DrawImage always counts. Image pixels are not inspected.
func (s *Spy) DrawImage(image.Image, compositor.Point, bool) { s.imageDraw() }

// DrawImageRect always counts.
func (s *Spy) DrawImageRect(image.Image, compositor.Rect, compositor.Rect, bool) { s.imageDraw() }

// DrawImageNine always counts.
func (s *Spy) DrawImageNine(image.Image, image.Rectangle, compositor.Rect, bool) { s.imageDraw() }

// DrawAtlas always counts, whatever the sprite colors.
func (s *Spy) DrawAtlas(image.Image, []recording.RSTransform, []compositor.Rect, []compositor.Color, recording.BlendMode, bool) {
	s.imageDraw()
}

// DrawDisplayList descends into r only while nothing visible has been seen
// and the opacity is nonzero.
func (s *Spy) DrawDisplayList(r *recording.Recording, opacity float64) {
	s.visited++
	if s.didDraw || opacity == 0 || r == nil {
		return
	}
	nested := New()
	r.Dispatch(nested)
	s.visited += nested.visited
	s.didDraw = s.didDraw || nested.didDraw
}
