// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import "math"

// UniformSize is the packed size of Uniform in bytes.
const UniformSize = 80

// Uniform is the camera data uploaded to the shaders: the eye position
// (padded to vec4) and the combined view-projection matrix.
type Uniform struct {
	ViewPosition [4]float32
	ViewProj     [16]float32
}

// NewUniform computes the uniform for a camera and projection.
func NewUniform(cam *Camera, proj *Projection) Uniform {
	vp := proj.Matrix().Mul(cam.ViewMatrix())
	return Uniform{
		ViewPosition: [4]float32{cam.Position.X, cam.Position.Y, cam.Position.Z, 1},
		ViewProj:     [16]float32(vp),
	}
}

// Bytes packs the uniform little-endian for a buffer write.
func (u *Uniform) Bytes() []byte {
	out := make([]byte, 0, UniformSize)
	for _, f := range u.ViewPosition {
		out = appendFloat(out, f)
	}
	for _, f := range u.ViewProj {
		out = appendFloat(out, f)
	}
	return out
}

func appendFloat(dst []byte, f float32) []byte {
	bits := math.Float32bits(f)
	return append(dst, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}
