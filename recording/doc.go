// Package recording provides a command-based drawing recording system for
// the compositor.
//
// The engine paints each view of a frame into a Recorder. The finished
// Recording is later inspected (did anything visible get drawn, and where)
// and replayed into the render target chosen for the view's layer.
//
// # Architecture
//
// The system follows a Command Pattern with three main components:
//
//   - Recorder: captures drawing operations as commands and tracks the
//     device-space bounds of every draw
//   - Recording: an immutable command list with its bounds and covered
//     region
//   - Receiver: consumes commands one by one, with paint attribute changes
//     delivered as separate calls
//
// Recorder and the raster surfaces of package surface both implement
// Canvas, so painting code does not know whether it is recorded or
// rasterized.
//
// # Basic Usage
//
//	rec := recording.NewRecorder(compositor.RectFromLTWH(0, 0, 800, 600))
//	rec.DrawRect(compositor.RectFromLTWH(100, 100, 200, 150), recording.NewPaint(compositor.ColorRed))
//	rec.Save()
//	rec.ClipRect(compositor.RectFromLTWH(0, 0, 400, 300))
//	rec.DrawCircle(compositor.Pt(400, 300), 50, recording.DefaultPaint())
//	rec.Restore()
//
//	r := rec.FinishRecording()
//	r.Bounds()  // union of the clipped draw bounds
//	r.Region()  // disjoint rectangles covered by draws
//
// # Playback
//
// Playback replays the commands into any Canvas. The canvas keeps its own
// transform and clip as the base for the replayed ones:
//
//	s := surface.NewImageSurface(800, 600)
//	s.SetTransform(compositor.Scale(2, 2))
//	r.Playback(s)
//
// # Paint Attributes
//
// Draw calls take a Paint, but the recording stores attributes (color,
// color source, style, stroke width, blend mode) as separate commands that
// are emitted only when they change. A Receiver therefore sees the paint
// state in effect for each draw, the way a GPU display list would.
//
// # Thread Safety
//
// Recorder is NOT safe for concurrent use. Recording objects are immutable
// after FinishRecording and can be shared and played back from multiple
// goroutines.
package recording
