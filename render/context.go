// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/abi"
)

// Context is the graphics state shared by every render target of a frame.
type Context interface {
	// ResetContext discards cached native state after host code may have
	// changed it.
	ResetContext()

	// FlushAndSubmit submits all recorded GPU work.
	FlushAndSubmit() error
}

// HALContext is a Context over a host-provided hal.Device.
//
// The blit shader and its pipelines are built once and survive
// ResetContext: every pass binds its own pipeline and resources, so no
// bound state outlives a pass.
type HALContext struct {
	device hal.Device
	queue  hal.Queue

	blit  *blitPipeline
	frame frameResources

	resets     int
	flushes    int
	composited int
}

// frameResources holds the work recorded since the last FlushAndSubmit.
type frameResources struct {
	encoders []hal.CommandEncoder
	buffers  []hal.CommandBuffer
	groups   []hal.BindGroup
}

var _ Context = (*HALContext)(nil)

// NewHALContext wraps an existing device and queue.
func NewHALContext(device hal.Device, queue hal.Queue) *HALContext {
	return &HALContext{device: device, queue: queue}
}

// NewHALContextFromProvider extracts the device and queue from a host
// provider.
func NewHALContextFromProvider(provider DeviceHandle) (*HALContext, error) {
	device, queue, err := halFromProvider(provider)
	if err != nil {
		return nil, err
	}
	return NewHALContext(device, queue), nil
}

// Device returns the HAL device.
func (c *HALContext) Device() hal.Device { return c.device }

// Queue returns the HAL queue.
func (c *HALContext) Queue() hal.Queue { return c.queue }

// Resets returns how many times ResetContext was called.
func (c *HALContext) Resets() int { return c.resets }

// Flushes returns how many submissions completed.
func (c *HALContext) Flushes() int { return c.flushes }

// Composited returns how many layer draws Compose has recorded.
func (c *HALContext) Composited() int { return c.composited }

// ResetContext records that host code ran on the device. Recorded passes
// and compiled pipelines stay valid.
func (c *HALContext) ResetContext() {
	c.resets++
	compositor.Logger().Debug("render: context reset", "resets", c.resets)
}

func (c *HALContext) blitPipeline() (*blitPipeline, error) {
	if c.blit != nil {
		return c.blit, nil
	}
	blit, err := newBlitPipeline(c.device)
	if err != nil {
		return nil, err
	}
	c.blit = blit
	return blit, nil
}

// FlushAndSubmit submits every pass recorded by Compose and waits for the
// device to go idle, which also completes queued texture writes.
func (c *HALContext) FlushAndSubmit() error {
	defer c.releaseFrame()
	if len(c.frame.buffers) > 0 {
		if _, err := c.queue.Submit(c.frame.buffers); err != nil {
			return fmt.Errorf("render: submit: %w", err)
		}
	}
	if err := c.device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait for GPU: %w", err)
	}
	c.flushes++
	return nil
}

func (c *HALContext) releaseFrame() {
	for _, buf := range c.frame.buffers {
		c.device.FreeCommandBuffer(buf)
	}
	for _, enc := range c.frame.encoders {
		enc.Destroy()
	}
	for _, g := range c.frame.groups {
		c.device.DestroyBindGroup(g)
	}
	c.frame = frameResources{}
}

// NewTextureRenderTarget creates a texture target on the context's device.
func (c *HALContext) NewTextureRenderTarget(size compositor.ISize, format gputypes.TextureFormat, store abi.BackingStore, opts ...Option) (*TextureRenderTarget, error) {
	tex, err := NewTexture(c.device, c.queue, size, format)
	if err != nil {
		return nil, err
	}
	return NewTextureRenderTarget(tex, store, opts...)
}

// Close drops unsubmitted passes and releases the blit pipelines. The
// device itself belongs to the host.
func (c *HALContext) Close() {
	c.releaseFrame()
	if c.blit != nil {
		c.blit.destroy(c.device)
		c.blit = nil
	}
}

// SoftwareContext is the Context of CPU-only frames. Surfaces apply draws
// immediately, so it only counts calls.
type SoftwareContext struct {
	resets  int
	flushes int
}

var _ Context = (*SoftwareContext)(nil)

func (c *SoftwareContext) ResetContext() { c.resets++ }

func (c *SoftwareContext) FlushAndSubmit() error {
	c.flushes++
	return nil
}

// Resets returns how many times ResetContext was called.
func (c *SoftwareContext) Resets() int { return c.resets }

// Flushes returns how many times FlushAndSubmit was called.
func (c *SoftwareContext) Flushes() int { return c.flushes }
