package recording

import (
	"image"
	"math"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/textblob"
)

// Recorder captures drawing operations as commands. It implements Canvas,
// so painting code can target it directly, and tracks the device-space
// bounds of every draw so the finished Recording can report where content
// was drawn.
//
// Paint attributes are recorded as separate attribute commands, emitted only
// when they differ from the attributes already in effect.
//
// Example:
//
//	rec := recording.NewRecorder(compositor.RectFromLTWH(0, 0, 800, 600))
//	rec.DrawRect(compositor.RectFromLTWH(10, 10, 100, 100), recording.DefaultPaint())
//	r := rec.FinishRecording()
//
// The Recorder is not safe for concurrent use.
type Recorder struct {
	cull     compositor.Rect
	commands []Command
	attrs    Paint

	state      recorderState
	stateStack []recorderState

	bounds   compositor.Rect
	opRects  []compositor.IRect
	finished bool
}

// recorderState stores the geometry state for Save/Restore.
type recorderState struct {
	transform compositor.Matrix
	// clip is the device-space bounding box of the current clip.
	clip compositor.Rect
}

// NewRecorder creates a Recorder whose content is culled to cull. Draws
// outside cull are recorded but do not contribute to bounds.
func NewRecorder(cull compositor.Rect) *Recorder {
	return &Recorder{
		cull:       cull,
		commands:   make([]Command, 0, 64),
		attrs:      DefaultPaint(),
		state:      recorderState{transform: compositor.Identity(), clip: cull},
		stateStack: make([]recorderState, 0, 8),
	}
}

// FinishRecording returns an immutable Recording containing all recorded
// commands. It panics if called twice.
func (r *Recorder) FinishRecording() *Recording {
	if r.finished {
		panic("recording: FinishRecording called twice")
	}
	r.finished = true
	rec := &Recording{
		commands: r.commands,
		bounds:   r.bounds,
		region:   compositor.NewRegion(r.opRects...),
	}
	r.commands = nil
	r.opRects = nil
	return rec
}

// Finished reports whether FinishRecording has been called.
func (r *Recorder) Finished() bool {
	return r.finished
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// setAttributes records the attribute commands needed to make p current.
func (r *Recorder) setAttributes(p Paint) {
	if p.Color != r.attrs.Color {
		r.record(SetColorCommand{Color: p.Color})
	}
	if p.ColorSource != r.attrs.ColorSource {
		r.record(SetColorSourceCommand{Source: p.ColorSource})
	}
	if p.Style != r.attrs.Style {
		r.record(SetStyleCommand{Style: p.Style})
	}
	if p.StrokeWidth != r.attrs.StrokeWidth {
		r.record(SetStrokeWidthCommand{Width: p.StrokeWidth})
	}
	if p.BlendMode != r.attrs.BlendMode {
		r.record(SetBlendModeCommand{Mode: p.BlendMode})
	}
	r.attrs = p
}

// accumulate adds a local-space rectangle to the recording bounds.
func (r *Recorder) accumulate(local compositor.Rect) {
	if local.IsEmpty() {
		return
	}
	r.accumulateDevice(r.state.transform.TransformRect(local))
}

func (r *Recorder) accumulateDevice(dev compositor.Rect) {
	dev = dev.Intersect(r.state.clip)
	if dev.IsEmpty() {
		return
	}
	r.bounds = r.bounds.Union(dev)
	r.opRects = append(r.opRects, dev.RoundOut())
}

// strokeOutset returns how far stroked geometry extends past its outline.
// Hairlines count as one pixel wide.
func strokeOutset(p Paint) float64 {
	if p.Style != PaintStyleStroke {
		return 0
	}
	return math.Max(p.StrokeWidth, 1) / 2
}

// --------------------------------------------------------------------------
// State management
// --------------------------------------------------------------------------

// Save saves the current transform and clip.
func (r *Recorder) Save() {
	r.stateStack = append(r.stateStack, r.state)
	r.record(SaveCommand{})
}

// SaveLayer saves state and opens an offscreen layer.
func (r *Recorder) SaveLayer(bounds *compositor.Rect, opacity float64) {
	r.stateStack = append(r.stateStack, r.state)
	cmd := SaveLayerCommand{Opacity: opacity}
	if bounds != nil {
		cmd.Bounds = *bounds
		r.state.clip = r.state.clip.Intersect(r.state.transform.TransformRect(*bounds))
	}
	r.record(cmd)
}

// Restore restores the previously saved state. If the stack is empty this is
// a no-op.
func (r *Recorder) Restore() {
	if len(r.stateStack) == 0 {
		return
	}
	r.state = r.stateStack[len(r.stateStack)-1]
	r.stateStack = r.stateStack[:len(r.stateStack)-1]
	r.record(RestoreCommand{})
}

// SaveCount returns the save depth, starting at 1.
func (r *Recorder) SaveCount() int {
	return len(r.stateStack) + 1
}

// RestoreToCount restores until SaveCount equals count.
func (r *Recorder) RestoreToCount(count int) {
	if count < 1 {
		count = 1
	}
	for r.SaveCount() > count {
		r.Restore()
	}
}

// --------------------------------------------------------------------------
// Transforms
// --------------------------------------------------------------------------

func (r *Recorder) Translate(dx, dy float64) { r.Transform(compositor.Translate(dx, dy)) }
func (r *Recorder) Scale(sx, sy float64)     { r.Transform(compositor.Scale(sx, sy)) }
func (r *Recorder) Rotate(radians float64)   { r.Transform(compositor.Rotate(radians)) }

// Transform concatenates m onto the current transform.
func (r *Recorder) Transform(m compositor.Matrix) {
	if m.IsIdentity() {
		return
	}
	r.state.transform = r.state.transform.Multiply(m)
	r.record(TransformCommand{Matrix: m})
}

// SetTransform replaces the current transform.
func (r *Recorder) SetTransform(m compositor.Matrix) {
	r.state.transform = m
	r.record(SetTransformCommand{Matrix: m})
}

// TotalMatrix returns the current transform.
func (r *Recorder) TotalMatrix() compositor.Matrix {
	return r.state.transform
}

// --------------------------------------------------------------------------
// Clipping
// --------------------------------------------------------------------------

func (r *Recorder) clipDevice(local compositor.Rect) {
	r.state.clip = r.state.clip.Intersect(r.state.transform.TransformRect(local))
}

func (r *Recorder) ClipRect(rect compositor.Rect) {
	r.clipDevice(rect)
	r.record(ClipRectCommand{Rect: rect})
}

func (r *Recorder) ClipRRect(rr compositor.RRect) {
	r.clipDevice(rr.Bounds())
	r.record(ClipRRectCommand{RRect: rr})
}

func (r *Recorder) ClipPath(p *compositor.Path) {
	r.clipDevice(p.Bounds())
	r.record(ClipPathCommand{Path: p})
}

// --------------------------------------------------------------------------
// Drawing
// --------------------------------------------------------------------------

// Clear records a source-mode fill of the clip.
func (r *Recorder) Clear(c compositor.Color) {
	r.DrawColor(c, BlendModeSrc)
}

func (r *Recorder) DrawColor(c compositor.Color, mode BlendMode) {
	r.record(DrawColorCommand{Color: c, Mode: mode})
	r.accumulateDevice(r.state.clip)
}

func (r *Recorder) DrawPaint(p Paint) {
	r.setAttributes(p)
	r.record(DrawPaintCommand{})
	r.accumulateDevice(r.state.clip)
}

func (r *Recorder) DrawLine(p0, p1 compositor.Point, p Paint) {
	r.setAttributes(p)
	r.record(DrawLineCommand{P0: p0, P1: p1})
	r.accumulate(compositor.RectFromPoints(p0, p1).Outset(math.Max(p.StrokeWidth, 1) / 2))
}

func (r *Recorder) DrawRect(rect compositor.Rect, p Paint) {
	r.setAttributes(p)
	r.record(DrawRectCommand{Rect: rect})
	r.accumulate(rect.Outset(strokeOutset(p)))
}

func (r *Recorder) DrawOval(rect compositor.Rect, p Paint) {
	r.setAttributes(p)
	r.record(DrawOvalCommand{Bounds: rect})
	r.accumulate(rect.Outset(strokeOutset(p)))
}

func (r *Recorder) DrawCircle(center compositor.Point, radius float64, p Paint) {
	r.setAttributes(p)
	r.record(DrawCircleCommand{Center: center, Radius: radius})
	bounds := compositor.Rect{Left: center.X - radius, Top: center.Y - radius, Right: center.X + radius, Bottom: center.Y + radius}
	r.accumulate(bounds.Outset(strokeOutset(p)))
}

func (r *Recorder) DrawRRect(rr compositor.RRect, p Paint) {
	r.setAttributes(p)
	r.record(DrawRRectCommand{RRect: rr})
	r.accumulate(rr.Bounds().Outset(strokeOutset(p)))
}

func (r *Recorder) DrawDRRect(outer, inner compositor.RRect, p Paint) {
	r.setAttributes(p)
	r.record(DrawDRRectCommand{Outer: outer, Inner: inner})
	r.accumulate(outer.Bounds().Outset(strokeOutset(p)))
}

func (r *Recorder) DrawPath(path *compositor.Path, p Paint) {
	r.setAttributes(p)
	r.record(DrawPathCommand{Path: path})
	r.accumulate(path.Bounds().Outset(strokeOutset(p)))
}

func (r *Recorder) DrawArc(oval compositor.Rect, startDeg, sweepDeg float64, useCenter bool, p Paint) {
	r.setAttributes(p)
	r.record(DrawArcCommand{Oval: oval, StartDeg: startDeg, SweepDeg: sweepDeg, UseCenter: useCenter})
	arc := compositor.NewPath()
	arc.AddArc(oval, startDeg*math.Pi/180, sweepDeg*math.Pi/180, useCenter)
	r.accumulate(arc.Bounds().Outset(strokeOutset(p)))
}

func (r *Recorder) DrawPoints(mode PointMode, pts []compositor.Point, p Paint) {
	r.setAttributes(p)
	r.record(DrawPointsCommand{Mode: mode, Points: append([]compositor.Point(nil), pts...)})
	if len(pts) > 0 {
		r.accumulate(compositor.RectFromPoints(pts...).Outset(math.Max(p.StrokeWidth, 1) / 2))
	}
}

func (r *Recorder) DrawVertices(v *Vertices, mode BlendMode, p Paint) {
	r.setAttributes(p)
	r.record(DrawVerticesCommand{Vertices: v, Mode: mode})
	r.accumulate(v.Bounds())
}

func (r *Recorder) imagePaint(p *Paint) bool {
	if p == nil {
		return false
	}
	r.setAttributes(*p)
	return true
}

func (r *Recorder) DrawImage(img image.Image, topLeft compositor.Point, p *Paint) {
	withPaint := r.imagePaint(p)
	r.record(DrawImageCommand{Image: img, TopLeft: topLeft, WithPaint: withPaint})
	b := img.Bounds()
	r.accumulate(compositor.RectFromLTWH(topLeft.X, topLeft.Y, float64(b.Dx()), float64(b.Dy())))
}

func (r *Recorder) DrawImageRect(img image.Image, src, dst compositor.Rect, p *Paint) {
	withPaint := r.imagePaint(p)
	r.record(DrawImageRectCommand{Image: img, Src: src, Dst: dst, WithPaint: withPaint})
	r.accumulate(dst)
}

func (r *Recorder) DrawImageNine(img image.Image, center image.Rectangle, dst compositor.Rect, p *Paint) {
	withPaint := r.imagePaint(p)
	r.record(DrawImageNineCommand{Image: img, Center: center, Dst: dst, WithPaint: withPaint})
	r.accumulate(dst)
}

func (r *Recorder) DrawAtlas(atlas image.Image, xforms []RSTransform, tex []compositor.Rect, colors []compositor.Color, mode BlendMode, p *Paint) {
	withPaint := r.imagePaint(p)
	r.record(DrawAtlasCommand{Atlas: atlas, Xforms: xforms, Tex: tex, Colors: colors, Mode: mode, WithPaint: withPaint})
	var bounds compositor.Rect
	for i := 0; i < len(xforms) && i < len(tex); i++ {
		quad := compositor.RectFromLTWH(0, 0, tex[i].Width(), tex[i].Height())
		bounds = bounds.Union(xforms[i].Matrix().TransformRect(quad))
	}
	r.accumulate(bounds)
}

// DrawDisplayList records a nested recording. Its bounds are transformed
// into this recording's space.
func (r *Recorder) DrawDisplayList(rec *Recording, opacity float64) {
	r.record(DrawDisplayListCommand{Recording: rec, Opacity: opacity})
	if rec != nil {
		r.accumulate(rec.Bounds())
	}
}

func (r *Recorder) DrawText(blob *textblob.Blob, x, y float64, p Paint) {
	r.setAttributes(p)
	r.record(DrawTextCommand{Blob: blob, X: x, Y: y})
	r.accumulate(blob.Bounds().Translate(x, y))
}

// DrawShadow records a shadow. Its bounds grow with elevation.
func (r *Recorder) DrawShadow(path *compositor.Path, c compositor.Color, elevation float64, transparentOccluder bool, dpr float64) {
	r.record(DrawShadowCommand{Path: path, Color: c, Elevation: elevation, TransparentOccluder: transparentOccluder, DevicePixelRatio: dpr})
	r.accumulate(shadowBounds(path.Bounds(), elevation, dpr))
}

// shadowBounds approximates the area a shadow of elevation can touch.
func shadowBounds(r compositor.Rect, elevation, dpr float64) compositor.Rect {
	if dpr <= 0 {
		dpr = 1
	}
	return r.Outset(elevation * dpr * 2)
}

// Flush is a no-op for recorders.
func (r *Recorder) Flush() {}
