// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package gpu connects glyphbrush to a WebGPU device through gogpu/wgpu HAL.
//
// Storage implements atlas.TextureStorage with R8Unorm textures, so the
// glyph atlas lives directly on the GPU. VertexBuffer mirrors the vertex
// buffer contract of glyphbrush.BrushAction: it re-uploads on ActionDraw
// and keeps the previous contents on ActionRedraw. The text shader samples
// the atlas coverage and multiplies it with a uniform color.
//
// Usage:
//
//	storage, err := gpu.NewStorageFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	brush, err := glyphbrush.New[string](lib, glyphbrush.WithTextureStorage(storage))
//
// Build with the nogpu tag to exclude this package.
package gpu
