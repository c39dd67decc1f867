// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface provides a CPU raster canvas that recordings replay into.
//
// ImageSurface implements recording.Canvas on top of an *image.RGBA. Shapes
// are converted to coverage masks with golang.org/x/image/vector and
// composited with golang.org/x/image/draw, which also resamples images under
// affine transforms. Text is drawn from the glyph outlines of a
// textblob.Blob.
//
// # Usage
//
//	s := surface.NewImageSurface(800, 600)
//	defer s.Close()
//
//	s.Clear(compositor.ColorWhite)
//	rec.Playback(s)
//	img := s.Snapshot()
//
// Rendering is approximate: blend modes other than source and source-over
// composite as source-over, and shadows are drawn without blur.
//
// # References
//
//   - Skia: https://skia.org/docs/user/api/skcanvas_overview/
package surface
