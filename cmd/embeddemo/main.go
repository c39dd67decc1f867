// Command embeddemo drives frames through the view embedder and writes the
// presented layers as PNG files.
//
// Each frame draws a background and a caption into the root view, places
// two platform views and draws a badge over the second one. The host side
// is simulated: render targets are CPU surfaces, or textures on a noop GPU
// device with -gpu. In GPU mode the host also composes the presented
// backing stores into a screen texture.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/config"
	"github.com/gogpu/compositor/embedder"
	"github.com/gogpu/compositor/mutators"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/render"
	"github.com/gogpu/compositor/textblob"
)

func main() {
	var (
		configPath = flag.String("config", "embedder.yaml", "configuration file (optional)")
		outDir     = flag.String("out", "frames", "output directory")
		frames     = flag.Int("frames", 3, "number of frames")
		width      = flag.Int("width", 480, "frame width")
		height     = flag.Int("height", 320, "frame height")
		rotate     = flag.Bool("rotate", false, "present in landscape-left orientation")
		useGPU     = flag.Bool("gpu", false, "render into textures on a noop GPU device")
	)
	flag.Parse()

	if err := run(*configPath, *outDir, *frames, compositor.ISize{Width: int64(*width), Height: int64(*height)}, *rotate, *useGPU); err != nil {
		fmt.Fprintln(os.Stderr, "embeddemo:", err)
		os.Exit(1)
	}
}

func run(configPath, outDir string, frames int, size compositor.ISize, rotate, useGPU bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	compositor.SetLogger(logger)
	defer compositor.SetLogger(nil)

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	h := &host{outDir: outDir, logger: logger}
	var ctx render.Context = &render.SoftwareContext{}
	if useGPU {
		gpu, cleanup, err := openNoopDevice()
		if err != nil {
			return err
		}
		defer cleanup()
		defer gpu.Close()
		format, err := cfg.Format()
		if err != nil {
			return err
		}
		h.gpu, h.format = gpu, format
		ctx = gpu
		defer func() {
			if h.screen != nil {
				h.screen.Destroy()
			}
		}()
	}

	opts := []embedder.Option{embedder.WithConfig(cfg)}
	if rotate {
		opts = append(opts, embedder.WithSurfaceTransformation(func() compositor.Matrix {
			return compositor.Translate(float64(size.Height), 0).Multiply(compositor.Rotate(math.Pi / 2))
		}))
	}
	e := embedder.New(h.create, h.present, opts...)
	defer func() {
		if err := e.Close(); err != nil {
			logger.Error("close embedder", "err", err)
		}
	}()

	caption, err := textblob.Shape("embedder demo", 24)
	if err != nil {
		return err
	}

	for i := range frames {
		h.frame = i
		paint(e, size, i, caption)
		frame := &frame{info: embedder.SubmitInfo{PresentationTime: time.Now().Add(16 * time.Millisecond)}}
		if err := e.SubmitFrame(ctx, frame); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
		logger.Info("frame presented", "frame", i, "layers", h.lastLayers, "cached", e.CachedTargetsCount())
	}
	stats := e.CacheStats()
	logger.Info("done", "targets", h.created, "cache_hits", stats.Hits, "cache_misses", stats.Misses)
	return nil
}

func paint(e *embedder.ExternalViewEmbedder, size compositor.ISize, i int, caption *textblob.Blob) {
	w, h := float64(size.Width), float64(size.Height)
	e.BeginFrame(size, 1)

	offset := float64(i * 20)
	video := mutators.NewStack()
	video.PushClipRRect(compositor.RRectFromRectXY(compositor.RectFromLTWH(40, 80, 200, 120), 12, 12))
	e.PrerollCompositeEmbeddedView(1, mutators.NewEmbeddedViewParams(
		compositor.Translate(40, 80), compositor.Size{Width: 200, Height: 120}, video))

	mapStack := mutators.NewStack()
	mapStack.PushOpacity(200)
	mapStack.PushTransform(compositor.Translate(offset, 0))
	e.PrerollCompositeEmbeddedView(2, mutators.NewEmbeddedViewParams(
		compositor.Translate(260+offset, 140), compositor.Size{Width: 160, Height: 140}, mapStack))

	root := e.GetRootCanvas()
	root.DrawRect(compositor.RectFromLTWH(0, 0, w, h), recording.NewPaint(compositor.RGB(32, 36, 48)))
	root.DrawRect(compositor.RectFromLTWH(0, 0, w, 56), recording.NewPaint(compositor.RGB(66, 133, 244)))
	root.DrawText(caption, 16, 36, recording.NewPaint(compositor.ColorWhite))

	badge := e.CompositeEmbeddedView(2)
	badge.DrawCircle(compositor.Point{X: 400 + offset, Y: 160}, 14, recording.NewPaint(compositor.ColorRed))
}

type frame struct {
	info embedder.SubmitInfo
}

func (f *frame) SubmitInfo() embedder.SubmitInfo { return f.info }
func (f *frame) Submit() error                   { return nil }

// host plays the embedder side: it allocates render targets and writes
// every presented backing store to disk.
type host struct {
	outDir     string
	logger     *slog.Logger
	gpu        *render.HALContext
	format     gputypes.TextureFormat
	screen     *render.Texture
	frame      int
	created    int
	lastLayers int
	targets    map[int]render.RenderTarget
}

func (h *host) create(_ render.Context, cfg abi.BackingStoreConfig) (render.RenderTarget, error) {
	h.created++
	id := h.created
	size := compositor.ISize{Width: int64(cfg.Size.Width), Height: int64(cfg.Size.Height)}
	store := abi.BackingStore{UserData: id}
	release := render.WithReleaseCallback(func() {
		h.logger.Debug("render target released", "id", id)
		delete(h.targets, id)
	})

	var (
		target render.RenderTarget
		err    error
	)
	if h.gpu != nil {
		target, err = h.gpu.NewTextureRenderTarget(size, h.format, store, release)
	} else {
		target, err = render.NewSoftwareRenderTarget(size, store, release)
	}
	if err != nil {
		return nil, err
	}
	if h.targets == nil {
		h.targets = make(map[int]render.RenderTarget)
	}
	h.targets[id] = target
	return target, nil
}

func (h *host) present(info abi.PresentInfo) bool {
	h.lastLayers = len(info.Layers)
	ok := true
	var stores []*render.Texture
	for i, layer := range info.Layers {
		switch layer.Type {
		case abi.LayerContentTypePlatformView:
			h.logger.Debug("platform view", "id", layer.PlatformView.Identifier,
				"offset", layer.Offset, "size", layer.Size, "mutations", len(layer.PlatformView.Mutations))
		case abi.LayerContentTypeBackingStore:
			name := filepath.Join(h.outDir, fmt.Sprintf("frame%02d_layer%d.png", h.frame, i))
			if err := h.write(name, layer.BackingStore); err != nil {
				h.logger.Error("write layer", "file", name, "err", err)
				ok = false
			}
			if tex := h.texture(layer.BackingStore); tex != nil {
				stores = append(stores, tex)
			}
		}
	}
	if h.gpu != nil && len(stores) > 0 {
		if err := h.compose(stores); err != nil {
			h.logger.Error("compose", "err", err)
			ok = false
		}
	}
	return ok
}

func (h *host) texture(store *abi.BackingStore) *render.Texture {
	id, _ := store.UserData.(int)
	if target, ok := h.targets[id]; ok {
		return target.Texture()
	}
	return nil
}

// compose draws the backing stores bottom to top into the screen texture.
func (h *host) compose(stores []*render.Texture) error {
	if h.screen == nil || h.screen.Size() != stores[0].Size() {
		if h.screen != nil {
			h.screen.Destroy()
		}
		screen, err := render.NewTexture(h.gpu.Device(), h.gpu.Queue(), stores[0].Size(), h.format)
		if err != nil {
			return err
		}
		h.screen = screen
	}
	if err := h.gpu.Compose(h.screen, stores); err != nil {
		return err
	}
	if err := h.gpu.FlushAndSubmit(); err != nil {
		return err
	}
	h.logger.Debug("composed screen", "layers", len(stores), "total", h.gpu.Composited())
	return nil
}

// write looks up the render target named by the store's user data and
// encodes its pixels.
func (h *host) write(name string, store *abi.BackingStore) error {
	id, _ := store.UserData.(int)
	target, ok := h.targets[id]
	if !ok {
		return fmt.Errorf("unknown backing store %v", store.UserData)
	}
	var img *image.RGBA
	if s := target.Surface(); s != nil {
		img = s.Snapshot()
	} else {
		img = target.Texture().Pixels()
	}
	if img == nil {
		return errors.New("backing store has no pixels")
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func openNoopDevice() (*render.HALContext, func(), error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, nil, errors.New("no adapters")
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, nil, fmt.Errorf("open adapter: %w", err)
	}
	var device hal.Device = open.Device
	cleanup := func() {
		device.Destroy()
		instance.Destroy()
	}
	return render.NewHALContext(device, open.Queue), cleanup, nil
}
