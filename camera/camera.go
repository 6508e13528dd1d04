// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import "github.com/chewxy/math32"

// Camera is a free-look camera: a position plus yaw and pitch in radians.
// Yaw 0 looks down +X; yaw -90° looks down -Z.
type Camera struct {
	Position Vec3
	Yaw      float32
	Pitch    float32
}

// New creates a camera at pos with the given yaw and pitch in radians.
func New(pos Vec3, yaw, pitch float32) *Camera {
	return &Camera{Position: pos, Yaw: yaw, Pitch: pitch}
}

// Default returns the engine's default camera: at (0, 5, 10), looking
// toward -Z and slightly down.
func Default() *Camera {
	return New(Vec3{X: 0, Y: 5, Z: 10}, Degrees(-90), Degrees(-20))
}

// Forward returns the unit view direction derived from yaw and pitch.
func (c *Camera) Forward() Vec3 {
	pitchSin, pitchCos := math32.Sincos(c.Pitch)
	yawSin, yawCos := math32.Sincos(c.Yaw)
	return Vec3{X: pitchCos * yawCos, Y: pitchSin, Z: pitchCos * yawSin}.Normalize()
}

// ViewMatrix returns the right-handed view matrix for the camera's current
// position and orientation.
func (c *Camera) ViewMatrix() Mat4 {
	return LookToRH(c.Position, c.Forward(), Vec3{Y: 1})
}

// Projection is a perspective projection with WebGPU clip-space output.
type Projection struct {
	Aspect float32
	Fovy   float32
	Znear  float32
	Zfar   float32
}

// NewProjection creates a projection for a surface of the given pixel size,
// with fovy in radians.
func NewProjection(width, height uint32, fovy, znear, zfar float32) *Projection {
	return &Projection{
		Aspect: float32(width) / float32(height),
		Fovy:   fovy,
		Znear:  znear,
		Zfar:   zfar,
	}
}

// DefaultProjection returns the engine's default projection: 45° vertical
// field of view, near 0.1, far 100.
func DefaultProjection(width, height uint32) *Projection {
	return NewProjection(width, height, Degrees(45), 0.1, 100)
}

// Resize updates the aspect ratio for a new surface size.
func (p *Projection) Resize(width, height uint32) {
	p.Aspect = float32(width) / float32(height)
}

// Matrix returns the projection matrix, including the OpenGL-to-WebGPU
// clip-space correction.
func (p *Projection) Matrix() Mat4 {
	return openglToWGPU.Mul(Perspective(p.Fovy, p.Aspect, p.Znear, p.Zfar))
}
