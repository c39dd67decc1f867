// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
	"github.com/gogpu/compositor/surface"
)

var (
	// ErrReleased is returned when a render target is closed twice or used
	// after Close.
	ErrReleased = errors.New("render: render target released")
	// ErrNilSurface is returned when a surface target is created without a
	// surface.
	ErrNilSurface = errors.New("render: nil surface")
	// ErrNilTexture is returned when a texture target is created without a
	// texture.
	ErrNilTexture = errors.New("render: nil texture")
	// ErrEmptySize is returned for zero or negative target dimensions.
	ErrEmptySize = errors.New("render: empty size")
)

// SetCurrentResult is the outcome of binding or unbinding a render target's
// native context.
type SetCurrentResult struct {
	OK bool
	// InvalidatesAPIState reports that the host changed native graphics
	// state, so the engine's Context must be reset before further use.
	InvalidatesAPIState bool
}

// CurrentFunc binds or unbinds a render target on the host side.
type CurrentFunc func() SetCurrentResult

// RenderTarget is a destination a layer is rendered into.
//
// This is a sealed interface: only SurfaceRenderTarget and
// TextureRenderTarget implement it.
type RenderTarget interface {
	// Size returns the target dimensions in pixels.
	Size() compositor.ISize

	// BackingStore returns the host descriptor presented with the layer.
	BackingStore() *abi.BackingStore

	// Surface returns the CPU surface, or nil for a texture target.
	Surface() *surface.ImageSurface

	// Texture returns the GPU texture, or nil for a surface target.
	Texture() *Texture

	// MakeCurrent binds the target before rendering.
	MakeCurrent() SetCurrentResult

	// ClearCurrent unbinds the target after rendering.
	ClearCurrent() SetCurrentResult

	// Close releases the target and runs its release callback.
	// A second Close returns ErrReleased.
	Close() error

	sealed()
}

// Option configures a render target.
type Option func(*targetBase)

// WithMakeCurrent installs the host's make-current hook.
func WithMakeCurrent(fn CurrentFunc) Option {
	return func(b *targetBase) { b.makeCurrent = fn }
}

// WithClearCurrent installs the host's clear-current hook.
func WithClearCurrent(fn CurrentFunc) Option {
	return func(b *targetBase) { b.clearCurrent = fn }
}

// WithReleaseCallback installs the function run once when the target is
// closed.
func WithReleaseCallback(fn func()) Option {
	return func(b *targetBase) { b.onRelease = fn }
}

type targetBase struct {
	store        abi.BackingStore
	onRelease    func()
	makeCurrent  CurrentFunc
	clearCurrent CurrentFunc
	released     bool
}

func newTargetBase(store abi.BackingStore, opts []Option) targetBase {
	b := targetBase{store: store}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

func (b *targetBase) BackingStore() *abi.BackingStore {
	return &b.store
}

func (b *targetBase) MakeCurrent() SetCurrentResult {
	if b.released {
		return SetCurrentResult{}
	}
	if b.makeCurrent == nil {
		return SetCurrentResult{OK: true}
	}
	return b.makeCurrent()
}

func (b *targetBase) ClearCurrent() SetCurrentResult {
	if b.clearCurrent == nil {
		return SetCurrentResult{OK: true}
	}
	return b.clearCurrent()
}

func (b *targetBase) release() error {
	if b.released {
		return ErrReleased
	}
	b.released = true
	if b.onRelease != nil {
		b.onRelease()
	}
	return nil
}

func (*targetBase) sealed() {}

// SurfaceRenderTarget renders into a CPU surface.
type SurfaceRenderTarget struct {
	targetBase
	surface *surface.ImageSurface
}

// NewSurfaceRenderTarget wraps s. The store type is set to software.
func NewSurfaceRenderTarget(s *surface.ImageSurface, store abi.BackingStore, opts ...Option) (*SurfaceRenderTarget, error) {
	if s == nil {
		return nil, ErrNilSurface
	}
	store.Type = abi.BackingStoreTypeSoftware
	return &SurfaceRenderTarget{targetBase: newTargetBase(store, opts), surface: s}, nil
}

// NewSoftwareRenderTarget allocates a transparent surface of the given size.
func NewSoftwareRenderTarget(size compositor.ISize, store abi.BackingStore, opts ...Option) (*SurfaceRenderTarget, error) {
	if size.IsEmpty() {
		return nil, ErrEmptySize
	}
	return NewSurfaceRenderTarget(surface.NewImageSurface(int(size.Width), int(size.Height)), store, opts...)
}

func (t *SurfaceRenderTarget) Size() compositor.ISize { return t.surface.Size() }

func (t *SurfaceRenderTarget) Surface() *surface.ImageSurface { return t.surface }

func (t *SurfaceRenderTarget) Texture() *Texture { return nil }

// Close runs the release callback, then frees the surface pixels.
func (t *SurfaceRenderTarget) Close() error {
	if err := t.release(); err != nil {
		return err
	}
	return t.surface.Close()
}

// TextureRenderTarget renders into a GPU texture.
type TextureRenderTarget struct {
	targetBase
	texture *Texture
}

// NewTextureRenderTarget wraps tex. The store type is set to texture.
func NewTextureRenderTarget(tex *Texture, store abi.BackingStore, opts ...Option) (*TextureRenderTarget, error) {
	if tex == nil {
		return nil, ErrNilTexture
	}
	store.Type = abi.BackingStoreTypeTexture
	return &TextureRenderTarget{targetBase: newTargetBase(store, opts), texture: tex}, nil
}

func (t *TextureRenderTarget) Size() compositor.ISize { return t.texture.Size() }

func (t *TextureRenderTarget) Surface() *surface.ImageSurface { return nil }

func (t *TextureRenderTarget) Texture() *Texture { return t.texture }

// Close runs the release callback, then destroys the GPU texture.
func (t *TextureRenderTarget) Close() error {
	if err := t.release(); err != nil {
		return err
	}
	t.texture.Destroy()
	return nil
}

var (
	_ RenderTarget = (*SurfaceRenderTarget)(nil)
	_ RenderTarget = (*TextureRenderTarget)(nil)
)
