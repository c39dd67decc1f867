// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the render targets layers are drawn into and the
// graphics context they share.
//
// # Render targets
//
// RenderTarget is a sealed interface with two variants:
//
//   - SurfaceRenderTarget: a CPU surface.ImageSurface
//   - TextureRenderTarget: a GPU Texture created on a hal.Device
//
// Exactly one of Surface and Texture returns non-nil for a given target.
// Every target carries the host's abi.BackingStore and a release callback
// that runs exactly once, when the target is closed.
//
// # Graphics context
//
// Context is the state the host may invalidate when it runs code on the
// render thread. HALContext implements it over a hal.Device received from
// the host:
//
//	ctx, err := render.NewHALContextFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	target, err := ctx.NewTextureRenderTarget(size, gputypes.TextureFormatRGBA8Unorm, store)
//
// The package RECEIVES a device from the host, it does NOT create one.
package render
