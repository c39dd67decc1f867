package opspy

import (
	"image"
	"testing"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/textblob"
)

var frame = compositor.RectFromLTWH(0, 0, 100, 100)

func record(fn func(r *recording.Recorder)) *recording.Recording {
	r := recording.NewRecorder(frame)
	fn(r)
	return r.FinishRecording()
}

func TestEmptyRecordingDoesNotDraw(t *testing.T) {
	if DidDraw(record(func(*recording.Recorder) {})) {
		t.Error("empty recording reported as drawing")
	}
}

func TestSolidPaint(t *testing.T) {
	blob, err := textblob.Shape("Hi", 12)
	if err != nil {
		t.Fatalf("Shape() error = %v", err)
	}
	var tri compositor.Path
	tri.MoveTo(10, 10)
	tri.LineTo(30, 10)
	tri.LineTo(20, 30)
	tri.Close()
	rr := compositor.RRectFromRectXY(compositor.RectFromLTWH(10, 10, 40, 40), 4, 4)
	inner := compositor.RRectFromRectXY(compositor.RectFromLTWH(20, 20, 10, 10), 2, 2)
	mesh := &recording.Vertices{
		Mode:      recording.VertexModeTriangles,
		Positions: []compositor.Point{compositor.Pt(0, 0), compositor.Pt(20, 0), compositor.Pt(0, 20)},
	}

	verbs := []struct {
		name string
		draw func(r *recording.Recorder, p recording.Paint)
	}{
		{"paint", func(r *recording.Recorder, p recording.Paint) { r.DrawPaint(p) }},
		{"line", func(r *recording.Recorder, p recording.Paint) {
			r.DrawLine(compositor.Pt(0, 0), compositor.Pt(20, 20), p)
		}},
		{"rect", func(r *recording.Recorder, p recording.Paint) {
			r.DrawRect(compositor.RectFromLTWH(10, 10, 20, 20), p)
		}},
		{"oval", func(r *recording.Recorder, p recording.Paint) {
			r.DrawOval(compositor.RectFromLTWH(10, 10, 30, 20), p)
		}},
		{"circle", func(r *recording.Recorder, p recording.Paint) { r.DrawCircle(compositor.Pt(50, 50), 10, p) }},
		{"rrect", func(r *recording.Recorder, p recording.Paint) { r.DrawRRect(rr, p) }},
		{"drrect", func(r *recording.Recorder, p recording.Paint) { r.DrawDRRect(rr, inner, p) }},
		{"path", func(r *recording.Recorder, p recording.Paint) { r.DrawPath(&tri, p) }},
		{"arc", func(r *recording.Recorder, p recording.Paint) {
			r.DrawArc(compositor.RectFromLTWH(10, 10, 40, 40), 0, 90, true, p)
		}},
		{"points", func(r *recording.Recorder, p recording.Paint) {
			r.DrawPoints(recording.PointModePoints, []compositor.Point{compositor.Pt(5, 5), compositor.Pt(15, 5)}, p)
		}},
		{"vertices", func(r *recording.Recorder, p recording.Paint) {
			r.DrawVertices(mesh, recording.BlendModeSrcOver, p)
		}},
		{"text", func(r *recording.Recorder, p recording.Paint) { r.DrawText(blob, 10, 40, p) }},
	}
	colors := []struct {
		name  string
		color compositor.Color
		want  bool
	}{
		{"opaque", compositor.ColorRed, true},
		{"translucent", compositor.ARGB(1, 0, 0, 0), true},
		{"transparent", compositor.ColorTransparent, false},
	}
	for _, v := range verbs {
		for _, c := range colors {
			t.Run(v.name+"/"+c.name, func(t *testing.T) {
				rec := record(func(r *recording.Recorder) {
					v.draw(r, recording.NewPaint(c.color))
				})
				if got := DidDraw(rec); got != c.want {
					t.Errorf("DidDraw = %v, want %v", got, c.want)
				}
			})
		}
	}
}

func TestDrawColorUsesOwnColor(t *testing.T) {
	transparent := record(func(r *recording.Recorder) {
		r.DrawColor(compositor.ColorTransparent, recording.BlendModeSrcOver)
	})
	if DidDraw(transparent) {
		t.Error("transparent DrawColor reported as drawing")
	}

	// Paint color is transparent but the op carries its own.
	opaque := record(func(r *recording.Recorder) {
		r.DrawRect(compositor.RectFromLTWH(0, 0, 1, 1), recording.NewPaint(compositor.ColorTransparent))
		r.DrawColor(compositor.ColorBlue, recording.BlendModeSrcOver)
	})
	if !DidDraw(opaque) {
		t.Error("opaque DrawColor not reported")
	}
}

func TestShadowUsesOwnColor(t *testing.T) {
	var p compositor.Path
	p.AddRect(compositor.RectFromLTWH(10, 10, 10, 10))
	rec := record(func(r *recording.Recorder) {
		r.DrawShadow(&p, compositor.ColorTransparent, 4, false, 1)
	})
	if DidDraw(rec) {
		t.Error("transparent shadow reported as drawing")
	}
}

func TestImageAlwaysDraws(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	transparent := recording.NewPaint(compositor.ColorTransparent)
	src := compositor.RectFromLTWH(0, 0, 4, 4)

	tests := []struct {
		name string
		draw func(r *recording.Recorder)
	}{
		{"image", func(r *recording.Recorder) { r.DrawImage(img, compositor.Pt(0, 0), &transparent) }},
		{"image rect", func(r *recording.Recorder) {
			r.DrawImageRect(img, src, compositor.RectFromLTWH(10, 10, 8, 8), &transparent)
		}},
		{"image nine", func(r *recording.Recorder) {
			r.DrawImageNine(img, image.Rect(1, 1, 3, 3), compositor.RectFromLTWH(10, 10, 20, 20), &transparent)
		}},
		{"atlas", func(r *recording.Recorder) {
			xforms := []recording.RSTransform{{SCos: 1, TX: 5, TY: 5}}
			r.DrawAtlas(img, xforms, []compositor.Rect{src}, nil, recording.BlendModeSrcOver, &transparent)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !DidDraw(record(tt.draw)) {
				t.Error("image draw with transparent paint not reported")
			}
		})
	}
}

func TestColorSource(t *testing.T) {
	rect := compositor.RectFromLTWH(0, 0, 10, 10)

	gradient := record(func(r *recording.Recorder) {
		p := recording.NewPaint(compositor.ColorTransparent)
		p.ColorSource = &recording.LinearGradient{
			End:    compositor.Pt(10, 0),
			Colors: []compositor.Color{compositor.ColorTransparent, compositor.ColorTransparent},
		}
		r.DrawRect(rect, p)
	})
	if !DidDraw(gradient) {
		t.Error("non-color source not treated as visible")
	}

	solid := record(func(r *recording.Recorder) {
		p := recording.NewPaint(compositor.ColorRed)
		p.ColorSource = recording.ColorColorSource{Color: compositor.ColorTransparent}
		r.DrawRect(rect, p)
	})
	if DidDraw(solid) {
		t.Error("transparent solid source reported as drawing")
	}
}

func TestClearedColorSourceFallsBackToLastColor(t *testing.T) {
	rect := compositor.RectFromLTWH(0, 0, 10, 10)
	gradient := &recording.LinearGradient{End: compositor.Pt(1, 0)}

	s := New()
	s.SetColor(compositor.ColorTransparent)
	s.SetColorSource(gradient)
	s.SetColorSource(nil)
	s.DrawRect(rect)
	if s.DidDraw() {
		t.Error("cleared source did not fall back to the transparent color")
	}

	s = New()
	s.SetColor(compositor.ColorGreen)
	s.SetColorSource(recording.ColorColorSource{})
	s.SetColorSource(nil)
	s.DrawRect(rect)
	if !s.DidDraw() {
		t.Error("cleared source did not fall back to the opaque color")
	}
}

func TestBlackThenTransparent(t *testing.T) {
	rect := compositor.RectFromLTWH(0, 0, 10, 10)
	rec := record(func(r *recording.Recorder) {
		r.DrawRect(rect, recording.NewPaint(compositor.ColorBlack))
		r.DrawRect(rect, recording.NewPaint(compositor.ColorTransparent))
	})
	if !DidDraw(rec) {
		t.Error("later transparent draw reset the result")
	}
}

func nestedTransparent() *recording.Recording {
	return record(func(r *recording.Recorder) {
		p := recording.NewPaint(compositor.ColorTransparent)
		for i := range 3 {
			r.DrawRect(compositor.RectFromLTWH(float64(i), 0, 1, 1), p)
		}
	})
}

func TestNestedListVisitedUntilDrawn(t *testing.T) {
	nested := nestedTransparent()

	rec := record(func(r *recording.Recorder) {
		r.DrawDisplayList(nested, 1)
	})
	s := New()
	rec.Dispatch(s)
	if s.DidDraw() {
		t.Error("transparent nested list reported as drawing")
	}
	if got := s.Visited(); got != 4 {
		t.Errorf("Visited = %d, want 4", got)
	}
}

func TestNestedListSkippedAfterDraw(t *testing.T) {
	nested := nestedTransparent()
	rec := record(func(r *recording.Recorder) {
		r.DrawRect(compositor.RectFromLTWH(0, 0, 5, 5), recording.NewPaint(compositor.ColorRed))
		r.DrawDisplayList(nested, 1)
	})
	s := New()
	rec.Dispatch(s)
	if !s.DidDraw() {
		t.Fatal("DidDraw = false")
	}
	if got := s.Visited(); got != 2 {
		t.Errorf("Visited = %d, want 2 (nested list must not be entered)", got)
	}
}

func TestNestedListZeroOpacity(t *testing.T) {
	visible := record(func(r *recording.Recorder) {
		r.DrawRect(compositor.RectFromLTWH(0, 0, 5, 5), recording.NewPaint(compositor.ColorRed))
	})
	rec := record(func(r *recording.Recorder) {
		r.DrawDisplayList(visible, 0)
	})
	s := New()
	rec.Dispatch(s)
	if s.DidDraw() {
		t.Error("zero opacity nested list reported as drawing")
	}
	if s.Visited() != 1 {
		t.Errorf("Visited = %d, want 1", s.Visited())
	}

	rec = record(func(r *recording.Recorder) {
		r.DrawDisplayList(visible, 0.5)
	})
	if !DidDraw(rec) {
		t.Error("visible nested list not reported")
	}
}
