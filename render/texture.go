// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/surface"
)

// Texture is a GPU texture a layer is uploaded into.
//
// Recordings are rasterized into a CPU staging surface of the same size and
// the pixels are written to the texture with Queue.WriteTexture.
type Texture struct {
	device hal.Device
	queue  hal.Queue
	tex    hal.Texture
	view   hal.TextureView
	size   compositor.ISize
	format gputypes.TextureFormat

	staging   *surface.ImageSurface
	uploads   int
	destroyed bool
}

// NewTexture creates a sampled, copyable 2D texture on device.
func NewTexture(device hal.Device, queue hal.Queue, size compositor.ISize, format gputypes.TextureFormat) (*Texture, error) {
	if size.IsEmpty() {
		return nil, ErrEmptySize
	}
	if format != gputypes.TextureFormatRGBA8Unorm && format != gputypes.TextureFormatBGRA8Unorm {
		return nil, fmt.Errorf("render: unsupported texture format %v", format)
	}
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "compositor_backing_store",
		Size:          hal.Extent3D{Width: uint32(size.Width), Height: uint32(size.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst |
			gputypes.TextureUsageCopySrc | gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "compositor_backing_store_view",
		Format:        format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create texture view: %w", err)
	}
	return &Texture{device: device, queue: queue, tex: tex, view: view, size: size, format: format}, nil
}

// Size returns the texture dimensions.
func (t *Texture) Size() compositor.ISize { return t.size }

// Format returns the texture pixel format.
func (t *Texture) Format() gputypes.TextureFormat { return t.format }

// HalTexture returns the underlying texture.
func (t *Texture) HalTexture() hal.Texture { return t.tex }

// View returns the texture view used to sample the layer.
func (t *Texture) View() hal.TextureView { return t.view }

// Uploads returns how many times pixels were written to the texture.
func (t *Texture) Uploads() int { return t.uploads }

// Pixels returns the staging copy of the last uploaded contents, or nil
// before the first Encode.
func (t *Texture) Pixels() *image.RGBA {
	if t.staging == nil {
		return nil
	}
	return t.staging.Snapshot()
}

// Encode replays rec under transform into the texture. When clear is set
// the previous contents are discarded first.
func (t *Texture) Encode(rec *recording.Recording, transform compositor.Matrix, clear bool) error {
	if t.destroyed {
		return ErrReleased
	}
	if t.staging == nil {
		t.staging = surface.NewImageSurface(int(t.size.Width), int(t.size.Height))
	}
	s := t.staging
	count := s.SaveCount()
	s.Save()
	s.SetTransform(compositor.Identity())
	if clear {
		s.Clear(compositor.ColorTransparent)
	}
	s.SetTransform(transform)
	rec.Playback(s)
	s.RestoreToCount(count)
	s.Flush()
	return t.upload(s.Image())
}

func (t *Texture) upload(img *image.RGBA) error {
	data := img.Pix
	if t.format == gputypes.TextureFormatBGRA8Unorm {
		data = swizzleRB(img.Pix)
	}
	w, h := uint32(t.size.Width), uint32(t.size.Height)
	err := t.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: t.tex, MipLevel: 0, Origin: hal.Origin3D{}, Aspect: gputypes.TextureAspectAll},
		data,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("render: write texture: %w", err)
	}
	t.uploads++
	return nil
}

// Destroy releases the GPU resources. Destroy is idempotent.
func (t *Texture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	if t.view != nil {
		t.device.DestroyTextureView(t.view)
	}
	if t.tex != nil {
		t.device.DestroyTexture(t.tex)
	}
	if t.staging != nil {
		_ = t.staging.Close()
	}
}

func swizzleRB(pix []byte) []byte {
	out := make([]byte, len(pix))
	for i := 0; i+3 < len(pix); i += 4 {
		out[i], out[i+1], out[i+2], out[i+3] = pix[i+2], pix[i+1], pix[i], pix[i+3]
	}
	return out
}

// ParseTextureFormat maps a configuration name to a texture format.
func ParseTextureFormat(name string) (gputypes.TextureFormat, error) {
	switch strings.ToLower(name) {
	case "", "rgba8unorm":
		return gputypes.TextureFormatRGBA8Unorm, nil
	case "bgra8unorm":
		return gputypes.TextureFormatBGRA8Unorm, nil
	default:
		return gputypes.TextureFormatUndefined, fmt.Errorf("render: unknown texture format %q", name)
	}
}
