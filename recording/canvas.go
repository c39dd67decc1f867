package recording

import (
	"image"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/textblob"
)

// Canvas is the drawing API shared by the Recorder and by raster surfaces.
// Painting code draws into a Canvas without knowing whether the commands are
// captured or rasterized.
//
// Angles are in degrees for DrawArc and radians for Rotate.
type Canvas interface {
	// State management

	Save()
	// SaveLayer saves state and redirects drawing into an offscreen layer
	// that is composited with opacity on the matching Restore. A nil bounds
	// means the layer covers the current clip.
	SaveLayer(bounds *compositor.Rect, opacity float64)
	Restore()
	// SaveCount returns the depth of the save stack, starting at 1.
	SaveCount() int
	RestoreToCount(count int)

	// Transforms

	Translate(dx, dy float64)
	Scale(sx, sy float64)
	Rotate(radians float64)
	// Transform concatenates m onto the current transform.
	Transform(m compositor.Matrix)
	// SetTransform replaces the current transform.
	SetTransform(m compositor.Matrix)
	// TotalMatrix returns the current transform.
	TotalMatrix() compositor.Matrix

	// Clipping

	ClipRect(r compositor.Rect)
	ClipRRect(r compositor.RRect)
	ClipPath(p *compositor.Path)

	// Drawing

	// Clear replaces every pixel inside the clip with c.
	Clear(c compositor.Color)
	DrawColor(c compositor.Color, mode BlendMode)
	DrawPaint(p Paint)
	DrawLine(p0, p1 compositor.Point, p Paint)
	DrawRect(r compositor.Rect, p Paint)
	DrawOval(r compositor.Rect, p Paint)
	DrawCircle(center compositor.Point, radius float64, p Paint)
	DrawRRect(r compositor.RRect, p Paint)
	DrawDRRect(outer, inner compositor.RRect, p Paint)
	DrawPath(path *compositor.Path, p Paint)
	DrawArc(oval compositor.Rect, startDeg, sweepDeg float64, useCenter bool, p Paint)
	DrawPoints(mode PointMode, pts []compositor.Point, p Paint)
	DrawVertices(v *Vertices, mode BlendMode, p Paint)
	DrawImage(img image.Image, topLeft compositor.Point, p *Paint)
	DrawImageRect(img image.Image, src, dst compositor.Rect, p *Paint)
	// DrawImageNine draws img stretched into dst keeping the corners outside
	// center unscaled.
	DrawImageNine(img image.Image, center image.Rectangle, dst compositor.Rect, p *Paint)
	DrawAtlas(atlas image.Image, xforms []RSTransform, tex []compositor.Rect, colors []compositor.Color, mode BlendMode, p *Paint)
	DrawDisplayList(r *Recording, opacity float64)
	DrawText(blob *textblob.Blob, x, y float64, p Paint)
	DrawShadow(path *compositor.Path, c compositor.Color, elevation float64, transparentOccluder bool, dpr float64)

	// Flush pushes pending work to the destination.
	Flush()
}
