// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/text.wgsl
var textShaderSource string

// Entry points of the text shader.
const (
	VertexEntryPoint   = "vs_main"
	FragmentEntryPoint = "fs_main"
)

// UniformsSize is the size in bytes of the text shader uniform block.
const UniformsSize = 32

// TextShaderSource returns the WGSL source of the text shader.
func TextShaderSource() string {
	return textShaderSource
}

// CompileTextShader compiles the text shader to SPIR-V words.
func CompileTextShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(textShaderSource)
	if err != nil {
		return nil, fmt.Errorf("gpu: compile text shader: %w", err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("gpu: compile text shader: SPIR-V size %d is not a multiple of 4", len(spirvBytes))
	}

	// SPIR-V is little-endian 32-bit words
	code := make([]uint32, len(spirvBytes)/4)
	for i := range code {
		code[i] = binary.LittleEndian.Uint32(spirvBytes[i*4:])
	}
	return code, nil
}

// CreateTextShaderModule compiles the text shader and creates a shader
// module on device. The caller destroys it with DestroyShaderModule.
func CreateTextShaderModule(device hal.Device) (hal.ShaderModule, error) {
	code, err := CompileTextShader()
	if err != nil {
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "glyphbrush_text",
		Source: hal.ShaderSource{SPIRV: code},
	})
	if err != nil {
		return nil, fmt.Errorf("gpu: create text shader module: %w", err)
	}
	return module, nil
}

// Uniforms is the uniform block of the text shader.
type Uniforms struct {
	// Viewport is the target size in pixels.
	Viewport [2]float32

	// Color is the text color, RGBA in [0, 1].
	Color [4]float32
}

// Bytes encodes u in the std140 layout of the shader.
func (u Uniforms) Bytes() []byte {
	buf := make([]byte, UniformsSize)
	binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(u.Viewport[0]))
	binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(u.Viewport[1]))
	for i, c := range u.Color {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(c))
	}
	return buf
}
