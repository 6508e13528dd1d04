// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package light holds the point light uniform the shaders consume.
package light

import "math"

// UniformSize is the packed size of Uniform in bytes.
const UniformSize = 32

// Uniform is one point light: position and color, each padded to vec4 for
// uniform buffer alignment.
type Uniform struct {
	Position [4]float32
	Color    [4]float32
}

// Default returns the engine's default light: white, at (2, 2, 2).
func Default() Uniform {
	return Uniform{
		Position: [4]float32{2, 2, 2, 0},
		Color:    [4]float32{1, 1, 1, 0},
	}
}

// Bytes packs the uniform little-endian for a buffer write.
func (u *Uniform) Bytes() []byte {
	out := make([]byte, 0, UniformSize)
	for _, f := range u.Position {
		out = appendFloat(out, f)
	}
	for _, f := range u.Color {
		out = appendFloat(out, f)
	}
	return out
}

func appendFloat(dst []byte, f float32) []byte {
	bits := math.Float32bits(f)
	return append(dst, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}
