// Package compositor composes engine-rendered content and host-owned
// platform views into an ordered list of presentation layers.
//
// # Overview
//
// Each frame the engine paints into per-view canvases handed out by the
// external view embedder (package embedder). At submit time the embedder
// groups the recorded content and the platform views into the smallest
// ordered list of layers that keeps the visible Z-order intact, renders each
// content layer into a render target obtained from the host (reusing targets
// across frames through package cache) and hands the layer list to the host's
// present callback in the shape described by package abi.
//
// # Packages
//
//   - compositor: geometry, matrices, colors, paths, regions, view identity
//   - recording: drawing command recorder and immutable recordings
//   - opspy: draw-detection visitor over recordings
//   - mutators: mutator stacks and embedded view parameters
//   - surface: CPU raster surface used as a render target canvas
//   - render: render targets backed by a surface or a GPU texture
//   - cache: one-frame generational render target cache
//   - embedder: content slices, external views, layering and frame protocol
//   - abi: structs exchanged with the host embedder
//   - config: YAML configuration
//
// # Logging
//
// The library is silent by default. Call [SetLogger] to route diagnostics
// from every sub-package to a [log/slog] logger.
package compositor
