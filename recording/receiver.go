package recording

import (
	"image"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/textblob"
)

// Receiver consumes a recording command by command. Unlike Canvas it sees
// paint attribute changes as separate calls, which lets visitors reason
// about the paint state in effect for each draw.
//
// Visitors that do not care about a category embed IgnoreSaveRestore,
// IgnoreTransforms or IgnoreClipping to inherit no-op handlers.
type Receiver interface {
	SetColor(c compositor.Color)
	SetColorSource(s ColorSource)
	SetStyle(s PaintStyle)
	SetStrokeWidth(w float64)
	SetBlendMode(m BlendMode)

	Save()
	SaveLayer(bounds compositor.Rect, opacity float64)
	Restore()

	Transform(m compositor.Matrix)
	SetTransform(m compositor.Matrix)

	ClipRect(r compositor.Rect)
	ClipRRect(r compositor.RRect)
	ClipPath(p *compositor.Path)

	DrawColor(c compositor.Color, mode BlendMode)
	DrawPaint()
	DrawLine(p0, p1 compositor.Point)
	DrawRect(r compositor.Rect)
	DrawOval(r compositor.Rect)
	DrawCircle(center compositor.Point, radius float64)
	DrawRRect(r compositor.RRect)
	DrawDRRect(outer, inner compositor.RRect)
	DrawPath(p *compositor.Path)
	DrawArc(oval compositor.Rect, startDeg, sweepDeg float64, useCenter bool)
	DrawPoints(mode PointMode, pts []compositor.Point)
	DrawVertices(v *Vertices, mode BlendMode)
	DrawImage(img image.Image, topLeft compositor.Point, withPaint bool)
	DrawImageRect(img image.Image, src, dst compositor.Rect, withPaint bool)
	DrawImageNine(img image.Image, center image.Rectangle, dst compositor.Rect, withPaint bool)
	DrawAtlas(atlas image.Image, xforms []RSTransform, tex []compositor.Rect, colors []compositor.Color, mode BlendMode, withPaint bool)
	DrawDisplayList(r *Recording, opacity float64)
	DrawText(blob *textblob.Blob, x, y float64)
	DrawShadow(path *compositor.Path, c compositor.Color, elevation float64, transparentOccluder bool, dpr float64)
}

// IgnoreSaveRestore provides no-op save and restore handlers.
type IgnoreSaveRestore struct{}

func (IgnoreSaveRestore) Save()                              {}
func (IgnoreSaveRestore) SaveLayer(compositor.Rect, float64) {}
func (IgnoreSaveRestore) Restore()                           {}

// IgnoreTransforms provides no-op transform handlers.
type IgnoreTransforms struct{}

func (IgnoreTransforms) Transform(compositor.Matrix)    {}
func (IgnoreTransforms) SetTransform(compositor.Matrix) {}

// IgnoreClipping provides no-op clip handlers.
type IgnoreClipping struct{}

func (IgnoreClipping) ClipRect(compositor.Rect)   {}
func (IgnoreClipping) ClipRRect(compositor.RRect) {}
func (IgnoreClipping) ClipPath(*compositor.Path)  {}

func dispatch(cmds []Command, recv Receiver) {
	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case SaveCommand:
			recv.Save()
		case SaveLayerCommand:
			recv.SaveLayer(c.Bounds, c.Opacity)
		case RestoreCommand:
			recv.Restore()
		case TransformCommand:
			recv.Transform(c.Matrix)
		case SetTransformCommand:
			recv.SetTransform(c.Matrix)
		case ClipRectCommand:
			recv.ClipRect(c.Rect)
		case ClipRRectCommand:
			recv.ClipRRect(c.RRect)
		case ClipPathCommand:
			recv.ClipPath(c.Path)
		case SetColorCommand:
			recv.SetColor(c.Color)
		case SetColorSourceCommand:
			recv.SetColorSource(c.Source)
		case SetStyleCommand:
			recv.SetStyle(c.Style)
		case SetStrokeWidthCommand:
			recv.SetStrokeWidth(c.Width)
		case SetBlendModeCommand:
			recv.SetBlendMode(c.Mode)
		case DrawColorCommand:
			recv.DrawColor(c.Color, c.Mode)
		case DrawPaintCommand:
			recv.DrawPaint()
		case DrawLineCommand:
			recv.DrawLine(c.P0, c.P1)
		case DrawRectCommand:
			recv.DrawRect(c.Rect)
		case DrawOvalCommand:
			recv.DrawOval(c.Bounds)
		case DrawCircleCommand:
			recv.DrawCircle(c.Center, c.Radius)
		case DrawRRectCommand:
			recv.DrawRRect(c.RRect)
		case DrawDRRectCommand:
			recv.DrawDRRect(c.Outer, c.Inner)
		case DrawPathCommand:
			recv.DrawPath(c.Path)
		case DrawArcCommand:
			recv.DrawArc(c.Oval, c.StartDeg, c.SweepDeg, c.UseCenter)
		case DrawPointsCommand:
			recv.DrawPoints(c.Mode, c.Points)
		case DrawVerticesCommand:
			recv.DrawVertices(c.Vertices, c.Mode)
		case DrawImageCommand:
			recv.DrawImage(c.Image, c.TopLeft, c.WithPaint)
		case DrawImageRectCommand:
			recv.DrawImageRect(c.Image, c.Src, c.Dst, c.WithPaint)
		case DrawImageNineCommand:
			recv.DrawImageNine(c.Image, c.Center, c.Dst, c.WithPaint)
		case DrawAtlasCommand:
			recv.DrawAtlas(c.Atlas, c.Xforms, c.Tex, c.Colors, c.Mode, c.WithPaint)
		case DrawDisplayListCommand:
			recv.DrawDisplayList(c.Recording, c.Opacity)
		case DrawTextCommand:
			recv.DrawText(c.Blob, c.X, c.Y)
		case DrawShadowCommand:
			recv.DrawShadow(c.Path, c.Color, c.Elevation, c.TransparentOccluder, c.DevicePixelRatio)
		}
	}
}

// canvasReceiver replays commands into a Canvas, rebuilding the Paint from
// attribute commands.
type canvasReceiver struct {
	canvas Canvas
	paint  Paint
	// base is the canvas transform when playback began. SetTransform
	// commands are relative to it.
	base compositor.Matrix
	// saves counts Save/SaveLayer calls not yet restored, so playback never
	// pops state it did not push.
	saves int
}

func newCanvasReceiver(c Canvas) *canvasReceiver {
	return &canvasReceiver{canvas: c, paint: DefaultPaint(), base: c.TotalMatrix()}
}

func (r *canvasReceiver) optionalPaint(withPaint bool) *Paint {
	if !withPaint {
		return nil
	}
	p := r.paint
	return &p
}

func (r *canvasReceiver) SetColor(c compositor.Color)   { r.paint.Color = c }
func (r *canvasReceiver) SetColorSource(s ColorSource)  { r.paint.ColorSource = s }
func (r *canvasReceiver) SetStyle(s PaintStyle)         { r.paint.Style = s }
func (r *canvasReceiver) SetStrokeWidth(w float64)      { r.paint.StrokeWidth = w }
func (r *canvasReceiver) SetBlendMode(m BlendMode)      { r.paint.BlendMode = m }
func (r *canvasReceiver) Transform(m compositor.Matrix) { r.canvas.Transform(m) }

func (r *canvasReceiver) Save() {
	r.saves++
	r.canvas.Save()
}

func (r *canvasReceiver) SaveLayer(bounds compositor.Rect, opacity float64) {
	r.saves++
	if bounds.IsEmpty() {
		r.canvas.SaveLayer(nil, opacity)
		return
	}
	r.canvas.SaveLayer(&bounds, opacity)
}

func (r *canvasReceiver) Restore() {
	if r.saves == 0 {
		return
	}
	r.saves--
	r.canvas.Restore()
}

func (r *canvasReceiver) SetTransform(m compositor.Matrix) {
	r.canvas.SetTransform(r.base.Multiply(m))
}

func (r *canvasReceiver) ClipRect(rect compositor.Rect)    { r.canvas.ClipRect(rect) }
func (r *canvasReceiver) ClipRRect(rr compositor.RRect)    { r.canvas.ClipRRect(rr) }
func (r *canvasReceiver) ClipPath(p *compositor.Path)      { r.canvas.ClipPath(p) }
func (r *canvasReceiver) DrawPaint()                       { r.canvas.DrawPaint(r.paint) }
func (r *canvasReceiver) DrawRect(rect compositor.Rect)    { r.canvas.DrawRect(rect, r.paint) }
func (r *canvasReceiver) DrawOval(rect compositor.Rect)    { r.canvas.DrawOval(rect, r.paint) }
func (r *canvasReceiver) DrawRRect(rr compositor.RRect)    { r.canvas.DrawRRect(rr, r.paint) }
func (r *canvasReceiver) DrawPath(p *compositor.Path)      { r.canvas.DrawPath(p, r.paint) }
func (r *canvasReceiver) DrawLine(p0, p1 compositor.Point) { r.canvas.DrawLine(p0, p1, r.paint) }

func (r *canvasReceiver) DrawColor(c compositor.Color, mode BlendMode) {
	r.canvas.DrawColor(c, mode)
}

func (r *canvasReceiver) DrawCircle(center compositor.Point, radius float64) {
	r.canvas.DrawCircle(center, radius, r.paint)
}

func (r *canvasReceiver) DrawDRRect(outer, inner compositor.RRect) {
	r.canvas.DrawDRRect(outer, inner, r.paint)
}

func (r *canvasReceiver) DrawArc(oval compositor.Rect, startDeg, sweepDeg float64, useCenter bool) {
	r.canvas.DrawArc(oval, startDeg, sweepDeg, useCenter, r.paint)
}

func (r *canvasReceiver) DrawPoints(mode PointMode, pts []compositor.Point) {
	r.canvas.DrawPoints(mode, pts, r.paint)
}

func (r *canvasReceiver) DrawVertices(v *Vertices, mode BlendMode) {
	r.canvas.DrawVertices(v, mode, r.paint)
}

func (r *canvasReceiver) DrawImage(img image.Image, topLeft compositor.Point, withPaint bool) {
	r.canvas.DrawImage(img, topLeft, r.optionalPaint(withPaint))
}

func (r *canvasReceiver) DrawImageRect(img image.Image, src, dst compositor.Rect, withPaint bool) {
	r.canvas.DrawImageRect(img, src, dst, r.optionalPaint(withPaint))
}

func (r *canvasReceiver) DrawImageNine(img image.Image, center image.Rectangle, dst compositor.Rect, withPaint bool) {
	r.canvas.DrawImageNine(img, center, dst, r.optionalPaint(withPaint))
}

func (r *canvasReceiver) DrawAtlas(atlas image.Image, xforms []RSTransform, tex []compositor.Rect, colors []compositor.Color, mode BlendMode, withPaint bool) {
	r.canvas.DrawAtlas(atlas, xforms, tex, colors, mode, r.optionalPaint(withPaint))
}

func (r *canvasReceiver) DrawDisplayList(rec *Recording, opacity float64) {
	r.canvas.DrawDisplayList(rec, opacity)
}

func (r *canvasReceiver) DrawText(blob *textblob.Blob, x, y float64) {
	r.canvas.DrawText(blob, x, y, r.paint)
}

func (r *canvasReceiver) DrawShadow(path *compositor.Path, c compositor.Color, elevation float64, transparentOccluder bool, dpr float64) {
	r.canvas.DrawShadow(path, c, elevation, transparentOccluder, dpr)
}
