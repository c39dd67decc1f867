// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/compositor"
)

// blitPipeline draws layer textures onto a destination texture with the
// blit shader. One render pipeline is built per destination format.
type blitPipeline struct {
	shader     hal.ShaderModule
	layout     hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	pipelines  map[gputypes.TextureFormat]hal.RenderPipeline
}

func newBlitPipeline(device hal.Device) (*blitPipeline, error) {
	source := hal.ShaderSource{WGSL: blitShaderWGSL}
	if words, err := CompileBlitShader(); err == nil {
		source = hal.ShaderSource{SPIRV: words}
	} else {
		compositor.Logger().Warn("render: using WGSL blit shader", "err", err)
	}
	p := &blitPipeline{pipelines: make(map[gputypes.TextureFormat]hal.RenderPipeline)}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "compositor_blit_shader",
		Source: source,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create blit shader: %w", err)
	}
	p.shader = shader

	// Binding 0: layer texture, binding 1: sampler. Both fragment only.
	layout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "compositor_blit_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2D,
				},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("render: create blit bind group layout: %w", err)
	}
	p.layout = layout

	pipeLayout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "compositor_blit_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{layout},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("render: create blit pipeline layout: %w", err)
	}
	p.pipeLayout = pipeLayout

	sampler, err := device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "compositor_blit_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    gputypes.FilterModeLinear,
		MinFilter:    gputypes.FilterModeLinear,
		MipmapFilter: gputypes.FilterModeLinear,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("render: create blit sampler: %w", err)
	}
	p.sampler = sampler
	return p, nil
}

// pipeline returns the render pipeline targeting format, creating it on
// first use.
func (p *blitPipeline) pipeline(device hal.Device, format gputypes.TextureFormat) (hal.RenderPipeline, error) {
	if rp, ok := p.pipelines[format]; ok {
		return rp, nil
	}
	// Layer pixels are premultiplied.
	blend := gputypes.BlendStatePremultiplied()
	rp, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  "compositor_blit_pipeline",
		Layout: p.pipeLayout,
		Vertex: hal.VertexState{
			Module:     p.shader,
			EntryPoint: "vs_main",
		},
		Fragment: &hal.FragmentState{
			Module:     p.shader,
			EntryPoint: "fs_main",
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     &blend,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: create blit pipeline for %v: %w", format, err)
	}
	p.pipelines[format] = rp
	return rp, nil
}

func (p *blitPipeline) bindGroup(device hal.Device, layer *Texture) (hal.BindGroup, error) {
	group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "compositor_blit_group",
		Layout: p.layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.TextureViewBinding{TextureView: layer.view.NativeHandle()}},
			{Binding: 1, Resource: gputypes.SamplerBinding{Sampler: p.sampler.NativeHandle()}},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: create blit bind group: %w", err)
	}
	return group, nil
}

func (p *blitPipeline) destroy(device hal.Device) {
	for _, rp := range p.pipelines {
		device.DestroyRenderPipeline(rp)
	}
	clear(p.pipelines)
	if p.sampler != nil {
		device.DestroySampler(p.sampler)
		p.sampler = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.layout != nil {
		device.DestroyBindGroupLayout(p.layout)
		p.layout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}

// Compose records a render pass that clears dst and draws layers onto it
// bottom to top. Each layer is placed at the origin at its own size. The
// pass runs on the next FlushAndSubmit.
func (c *HALContext) Compose(dst *Texture, layers []*Texture) error {
	if dst == nil {
		return ErrNilTexture
	}
	if dst.destroyed {
		return ErrReleased
	}
	for _, layer := range layers {
		if layer == nil {
			return ErrNilTexture
		}
		if layer.destroyed {
			return ErrReleased
		}
	}
	blit, err := c.blitPipeline()
	if err != nil {
		return err
	}
	rp, err := blit.pipeline(c.device, dst.format)
	if err != nil {
		return err
	}

	groups := make([]hal.BindGroup, 0, len(layers))
	destroyGroups := func() {
		for _, g := range groups {
			c.device.DestroyBindGroup(g)
		}
	}
	for _, layer := range layers {
		group, err := blit.bindGroup(c.device, layer)
		if err != nil {
			destroyGroups()
			return err
		}
		groups = append(groups, group)
	}

	encoder, err := c.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "compositor_compose"})
	if err != nil {
		destroyGroups()
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("compositor_compose"); err != nil {
		encoder.Destroy()
		destroyGroups()
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	pass := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "compositor_compose_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       dst.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{},
		}},
	})
	pass.SetPipeline(rp)
	for i, layer := range layers {
		w := min(layer.size.Width, dst.size.Width)
		h := min(layer.size.Height, dst.size.Height)
		pass.SetViewport(0, 0, float32(layer.size.Width), float32(layer.size.Height), 0, 1)
		pass.SetScissorRect(0, 0, uint32(w), uint32(h))
		pass.SetBindGroup(0, groups[i], nil)
		pass.Draw(3, 1, 0, 0)
	}
	pass.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.Destroy()
		destroyGroups()
		return fmt.Errorf("render: end encoding: %w", err)
	}
	c.frame.encoders = append(c.frame.encoders, encoder)
	c.frame.buffers = append(c.frame.buffers, cmdBuf)
	c.frame.groups = append(c.frame.groups, groups...)
	c.composited += len(layers)
	compositor.Logger().Debug("render: compose recorded", "layers", len(layers), "format", dst.format)
	return nil
}
