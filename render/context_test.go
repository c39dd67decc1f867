// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/recording"
)

// createNoopDevice creates a noop device and queue for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return openDev.Device, openDev.Queue
}

type halDeviceProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (halDeviceProvider) Device() gpucontext.Device   { return nil }
func (halDeviceProvider) Queue() gpucontext.Queue     { return nil }
func (halDeviceProvider) Adapter() gpucontext.Adapter { return nil }
func (halDeviceProvider) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}
func (p halDeviceProvider) HalDevice() any { return p.device }
func (p halDeviceProvider) HalQueue() any  { return p.queue }

type plainProvider struct{ halDeviceProvider }

func (plainProvider) HalDevice() {}

func TestNewHALContextFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	ctx, err := NewHALContextFromProvider(halDeviceProvider{device: device, queue: queue})
	if err != nil {
		t.Fatalf("NewHALContextFromProvider() error = %v", err)
	}
	if ctx.Device() != device || ctx.Queue() != queue {
		t.Error("context does not hold the provider's device and queue")
	}

	if _, err := NewHALContextFromProvider(halDeviceProvider{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("nil device error = %v, want ErrNoHALAccess", err)
	}
	if _, err := NewHALContextFromProvider(plainProvider{}); !errors.Is(err, ErrNoHALAccess) {
		t.Errorf("non-HAL provider error = %v, want ErrNoHALAccess", err)
	}
}

func TestHALContextFlushAndReset(t *testing.T) {
	device, queue := createNoopDevice(t)
	ctx := NewHALContext(device, queue)
	defer ctx.Close()

	if err := ctx.FlushAndSubmit(); err != nil {
		t.Fatalf("FlushAndSubmit() error = %v", err)
	}
	ctx.ResetContext()
	if ctx.Resets() != 1 {
		t.Errorf("Resets() = %d, want 1", ctx.Resets())
	}
	if err := ctx.FlushAndSubmit(); err != nil {
		t.Fatalf("FlushAndSubmit() after reset error = %v", err)
	}
	if ctx.Flushes() != 2 {
		t.Errorf("Flushes() = %d, want 2", ctx.Flushes())
	}
}

// layerTexture returns a texture of size holding a rect of color at r.
func layerTexture(t *testing.T, device hal.Device, queue hal.Queue, size compositor.ISize, r compositor.Rect, color compositor.Color) *Texture {
	t.Helper()
	tex, err := NewTexture(device, queue, size, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	t.Cleanup(tex.Destroy)
	rec := recording.NewRecorder(compositor.Rect{Right: float64(size.Width), Bottom: float64(size.Height)})
	rec.DrawRect(r, recording.NewPaint(color))
	if err := tex.Encode(rec.FinishRecording(), compositor.Identity(), true); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return tex
}

func TestHALContextCompose(t *testing.T) {
	device, queue := createNoopDevice(t)
	ctx := NewHALContext(device, queue)
	defer ctx.Close()

	size := compositor.ISize{Width: 16, Height: 16}
	dst, err := NewTexture(device, queue, size, gputypes.TextureFormatBGRA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	defer dst.Destroy()
	bottom := layerTexture(t, device, queue, size, compositor.RectFromLTWH(0, 0, 16, 16), compositor.ColorRed)
	top := layerTexture(t, device, queue, size, compositor.RectFromLTWH(4, 4, 8, 8), compositor.ColorBlue)

	if err := ctx.Compose(dst, []*Texture{bottom, top}); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if ctx.Composited() != 2 {
		t.Errorf("Composited() = %d, want 2", ctx.Composited())
	}
	if len(ctx.frame.buffers) != 1 || len(ctx.frame.groups) != 2 {
		t.Errorf("recorded %d buffers and %d bind groups, want 1 and 2",
			len(ctx.frame.buffers), len(ctx.frame.groups))
	}
	if ctx.blit == nil || ctx.blit.shader == nil {
		t.Fatal("Compose() did not build the blit pipeline")
	}
	shader := ctx.blit.shader

	ctx.ResetContext()
	if ctx.blit == nil || ctx.blit.shader != shader {
		t.Error("ResetContext() dropped the compiled blit shader")
	}
	if err := ctx.FlushAndSubmit(); err != nil {
		t.Fatalf("FlushAndSubmit() error = %v", err)
	}
	if len(ctx.frame.buffers) != 0 || len(ctx.frame.groups) != 0 {
		t.Error("FlushAndSubmit() kept the submitted frame resources")
	}

	// Same destination format reuses the pipeline, another format adds one.
	if err := ctx.Compose(dst, []*Texture{top}); err != nil {
		t.Fatalf("second Compose() error = %v", err)
	}
	rgba, err := NewTexture(device, queue, size, gputypes.TextureFormatRGBA8Unorm)
	if err != nil {
		t.Fatalf("NewTexture() error = %v", err)
	}
	defer rgba.Destroy()
	if err := ctx.Compose(rgba, []*Texture{bottom}); err != nil {
		t.Fatalf("Compose() into RGBA error = %v", err)
	}
	if got := len(ctx.blit.pipelines); got != 2 {
		t.Errorf("pipelines = %d, want 2", got)
	}
	if err := ctx.FlushAndSubmit(); err != nil {
		t.Fatalf("FlushAndSubmit() error = %v", err)
	}
	if ctx.Flushes() != 2 || ctx.Composited() != 4 {
		t.Errorf("flushes, composited = %d, %d, want 2, 4", ctx.Flushes(), ctx.Composited())
	}
}

func TestHALContextComposeRejectsBadTextures(t *testing.T) {
	device, queue := createNoopDevice(t)
	ctx := NewHALContext(device, queue)
	defer ctx.Close()

	size := compositor.ISize{Width: 4, Height: 4}
	dst := layerTexture(t, device, queue, size, compositor.Rect{}, compositor.ColorTransparent)
	released := layerTexture(t, device, queue, size, compositor.RectFromLTWH(0, 0, 2, 2), compositor.ColorRed)
	released.Destroy()

	if err := ctx.Compose(nil, nil); !errors.Is(err, ErrNilTexture) {
		t.Errorf("nil destination error = %v, want ErrNilTexture", err)
	}
	if err := ctx.Compose(dst, []*Texture{nil}); !errors.Is(err, ErrNilTexture) {
		t.Errorf("nil layer error = %v, want ErrNilTexture", err)
	}
	if err := ctx.Compose(dst, []*Texture{released}); !errors.Is(err, ErrReleased) {
		t.Errorf("released layer error = %v, want ErrReleased", err)
	}
	if err := ctx.Compose(released, nil); !errors.Is(err, ErrReleased) {
		t.Errorf("released destination error = %v, want ErrReleased", err)
	}
	if len(ctx.frame.buffers) != 0 || ctx.Composited() != 0 {
		t.Error("rejected Compose() recorded work")
	}
}

func TestCompileBlitShader(t *testing.T) {
	words, err := CompileBlitShader()
	if err != nil {
		t.Fatalf("CompileBlitShader() error = %v", err)
	}
	const spirvMagic = 0x07230203
	if len(words) == 0 || words[0] != spirvMagic {
		t.Errorf("missing SPIR-V magic, got %d words", len(words))
	}
}

func TestTextureRenderTarget(t *testing.T) {
	device, queue := createNoopDevice(t)
	ctx := NewHALContext(device, queue)

	released := false
	target, err := ctx.NewTextureRenderTarget(compositor.ISize{Width: 8, Height: 4}, gputypes.TextureFormatBGRA8Unorm,
		abi.BackingStore{UserData: 7}, WithReleaseCallback(func() { released = true }))
	if err != nil {
		t.Fatalf("NewTextureRenderTarget() error = %v", err)
	}
	if target.Surface() != nil {
		t.Error("Surface() != nil for a texture target")
	}
	tex := target.Texture()
	if tex == nil || tex.View() == nil || tex.HalTexture() == nil {
		t.Fatal("texture resources missing")
	}
	if got := target.Size(); got != (compositor.ISize{Width: 8, Height: 4}) {
		t.Errorf("Size() = %v, want 8x4", got)
	}
	if target.BackingStore().Type != abi.BackingStoreTypeTexture {
		t.Errorf("store type = %v, want texture", target.BackingStore().Type)
	}

	r := recording.NewRecorder(compositor.Rect{Right: 8, Bottom: 4})
	r.DrawRect(compositor.Rect{Right: 2, Bottom: 2}, recording.NewPaint(compositor.ColorRed))
	rec := r.FinishRecording()

	if err := tex.Encode(rec, compositor.Translate(2, 0), true); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if tex.Uploads() != 1 {
		t.Errorf("Uploads() = %d, want 1", tex.Uploads())
	}
	pix := tex.Pixels()
	if got := pix.RGBAAt(3, 1); got.R != 255 || got.A != 255 {
		t.Errorf("staged pixel = %v, want red", got)
	}
	if got := pix.RGBAAt(0, 1); got.A != 0 {
		t.Errorf("staged pixel outside the rect = %v, want transparent", got)
	}

	if err := target.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !released {
		t.Error("release callback not run")
	}
	if err := tex.Encode(rec, compositor.Identity(), true); !errors.Is(err, ErrReleased) {
		t.Errorf("Encode() after close error = %v, want ErrReleased", err)
	}
}

func TestNewTextureRejectsBadInput(t *testing.T) {
	device, queue := createNoopDevice(t)
	if _, err := NewTexture(device, queue, compositor.ISize{}, gputypes.TextureFormatRGBA8Unorm); !errors.Is(err, ErrEmptySize) {
		t.Errorf("empty size error = %v, want ErrEmptySize", err)
	}
	if _, err := NewTexture(device, queue, compositor.ISize{Width: 1, Height: 1}, gputypes.TextureFormatDepth24PlusStencil8); err == nil {
		t.Error("depth format accepted")
	}
	if _, err := NewTextureRenderTarget(nil, abi.BackingStore{}); !errors.Is(err, ErrNilTexture) {
		t.Errorf("nil texture error = %v, want ErrNilTexture", err)
	}
}

func TestParseTextureFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    gputypes.TextureFormat
		wantErr bool
	}{
		{"", gputypes.TextureFormatRGBA8Unorm, false},
		{"rgba8unorm", gputypes.TextureFormatRGBA8Unorm, false},
		{"BGRA8Unorm", gputypes.TextureFormatBGRA8Unorm, false},
		{"r8unorm", gputypes.TextureFormatUndefined, true},
	}
	for _, tt := range tests {
		got, err := ParseTextureFormat(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTextureFormat(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSoftwareContext(t *testing.T) {
	var ctx SoftwareContext
	ctx.ResetContext()
	if err := ctx.FlushAndSubmit(); err != nil {
		t.Fatalf("FlushAndSubmit() error = %v", err)
	}
	if ctx.Resets() != 1 || ctx.Flushes() != 1 {
		t.Errorf("resets, flushes = %d, %d", ctx.Resets(), ctx.Flushes())
	}
}
