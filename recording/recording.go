package recording

import "github.com/gogpu/compositor"

// Recording is an immutable list of drawing commands together with the
// device-space bounds and covered region of what they draw.
type Recording struct {
	commands []Command
	bounds   compositor.Rect
	region   compositor.Region
}

// Commands returns the recorded commands.
func (r *Recording) Commands() []Command {
	return r.commands
}

// Len returns the number of recorded commands.
func (r *Recording) Len() int {
	return len(r.commands)
}

// Bounds returns the union of the bounds of every draw, clipped to the cull
// rectangle.
func (r *Recording) Bounds() compositor.Rect {
	return r.bounds
}

// Region returns the non-overlapping rectangles covering every draw.
func (r *Recording) Region() compositor.Region {
	return r.region
}

// IsEmpty reports whether nothing was drawn inside the cull rectangle.
func (r *Recording) IsEmpty() bool {
	return r.bounds.IsEmpty()
}

// Dispatch sends every command to recv in order.
func (r *Recording) Dispatch(recv Receiver) {
	dispatch(r.commands, recv)
}

// Playback replays the recording into c. The canvas save stack is restored
// to its depth on entry.
func (r *Recording) Playback(c Canvas) {
	count := c.SaveCount()
	c.Save()
	r.Dispatch(newCanvasReceiver(c))
	c.RestoreToCount(count)
}
