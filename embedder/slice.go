package embedder

import (
	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/opspy"
	"github.com/gogpu/compositor/recording"
)

// ContentSlice records the engine's drawing for one view.
type ContentSlice struct {
	recorder *recording.Recorder
	rec      *recording.Recording
}

// NewContentSlice starts a recording culled to viewBounds.
func NewContentSlice(viewBounds compositor.Rect) *ContentSlice {
	return &ContentSlice{recorder: recording.NewRecorder(viewBounds)}
}

// Canvas returns the canvas to draw into, or nil once the recording has
// ended.
func (s *ContentSlice) Canvas() recording.Canvas {
	if s.rec != nil {
		return nil
	}
	return s.recorder
}

// EndRecording finalizes the recording. It panics if the recording has
// already ended; callers check RecordingEnded first.
func (s *ContentSlice) EndRecording() {
	if s.rec != nil {
		panic("embedder: EndRecording called on an ended content slice")
	}
	s.rec = s.recorder.FinishRecording()
	s.recorder = nil
}

// RecordingEnded reports whether EndRecording has been called.
func (s *ContentSlice) RecordingEnded() bool {
	return s.rec != nil
}

// Recording returns the finished recording, or nil while recording.
func (s *ContentSlice) Recording() *recording.Recording {
	return s.rec
}

// Region returns the disjoint rectangles covered by drawn content.
func (s *ContentSlice) Region() compositor.Region {
	s.mustBeEnded()
	return s.rec.Region()
}

// HasRenderedContent reports whether any recorded op draws a visible pixel
// inside non-empty bounds.
func (s *ContentSlice) HasRenderedContent() bool {
	s.mustBeEnded()
	return opspy.DidDraw(s.rec) && !s.rec.Bounds().IsEmpty()
}

// RenderInto replays the recording into c.
func (s *ContentSlice) RenderInto(c recording.Canvas) {
	s.mustBeEnded()
	s.rec.Playback(c)
}

// Dispatch sends the recorded commands to recv.
func (s *ContentSlice) Dispatch(recv recording.Receiver) {
	s.mustBeEnded()
	s.rec.Dispatch(recv)
}

func (s *ContentSlice) mustBeEnded() {
	if s.rec == nil {
		panic("embedder: content slice queried before EndRecording")
	}
}
