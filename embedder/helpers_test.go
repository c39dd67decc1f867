package embedder

import (
	"errors"
	"testing"
	"time"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/mutators"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/render"
)

// host fakes the embedder side of the ABI: it creates software render
// targets and records every presented frame.
type host struct {
	t        *testing.T
	events   []string
	configs  []abi.BackingStoreConfig
	created  int
	released int
	presents []abi.PresentInfo
	targets  []*render.SurfaceRenderTarget

	createErr   error
	createNil   bool
	presentFail bool
	opts        []render.Option
}

func newHost(t *testing.T) *host {
	return &host{t: t}
}

func (h *host) create(_ render.Context, cfg abi.BackingStoreConfig) (render.RenderTarget, error) {
	h.configs = append(h.configs, cfg)
	if h.createErr != nil {
		return nil, h.createErr
	}
	if h.createNil {
		return nil, nil
	}
	h.created++
	h.events = append(h.events, "create")
	size := compositor.ISize{Width: int64(cfg.Size.Width), Height: int64(cfg.Size.Height)}
	opts := append([]render.Option{render.WithReleaseCallback(func() {
		h.released++
		h.events = append(h.events, "release")
	})}, h.opts...)
	target, err := render.NewSoftwareRenderTarget(size, abi.BackingStore{UserData: h.created}, opts...)
	if err != nil {
		h.t.Fatalf("NewSoftwareRenderTarget() error = %v", err)
	}
	h.targets = append(h.targets, target)
	return target, nil
}

func (h *host) present(info abi.PresentInfo) bool {
	h.events = append(h.events, "present")
	h.presents = append(h.presents, info)
	return !h.presentFail
}

func (h *host) lastPresent() abi.PresentInfo {
	h.t.Helper()
	if len(h.presents) == 0 {
		h.t.Fatal("present callback was not invoked")
	}
	return h.presents[len(h.presents)-1]
}

type fakeFrame struct {
	info      SubmitInfo
	submitted int
	err       error
}

func (f *fakeFrame) SubmitInfo() SubmitInfo { return f.info }

func (f *fakeFrame) Submit() error {
	f.submitted++
	return f.err
}

var errHost = errors.New("host refused")

func fill(c compositor.Color) recording.Paint {
	return recording.NewPaint(c)
}

func ltwh(l, t, w, h float64) compositor.Rect {
	return compositor.RectFromLTWH(l, t, w, h)
}

// platformParams returns params for a platform view placed at r with no
// mutators.
func platformParams(r compositor.Rect, stack *mutators.Stack) *mutators.EmbeddedViewParams {
	return mutators.NewEmbeddedViewParams(compositor.Translate(r.Left, r.Top), r.Size(), stack)
}

// contentView returns a root view of frame size with a red rect drawn at r.
func contentView(frame compositor.ISize, r compositor.Rect) *ExternalView {
	v := NewRootView(frame, compositor.Identity())
	if !r.IsEmpty() {
		v.Canvas().DrawRect(r, fill(compositor.ColorRed))
	}
	return v
}

// platformView returns a platform view at frame with content drawn at
// content, if not empty.
func platformView(size compositor.ISize, id int64, frame compositor.Rect, stack *mutators.Stack, content compositor.Rect) *ExternalView {
	v := NewPlatformView(size, compositor.Identity(), id, platformParams(frame, stack))
	if !content.IsEmpty() {
		v.Canvas().DrawRect(content, fill(compositor.ColorBlue))
	}
	return v
}

func at(d time.Duration) time.Time {
	return time.Unix(0, int64(d))
}
