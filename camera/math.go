// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package camera provides the free-look camera, perspective projection, and
// the packed uniform the shaders consume.
//
// Matrices are column-major [16]float32, matching the layout uniform
// buffers expect; no conversion happens at upload time.
package camera

import "github.com/chewxy/math32"

// SafeHalfPi is the pitch clamp limit: just shy of straight up/down, so the
// view direction never becomes parallel to the world up vector.
const SafeHalfPi = math32.Pi/2 - 0.0001

// Degrees converts degrees to radians.
func Degrees(deg float32) float32 {
	return deg * math32.Pi / 180
}

// Vec3 is a 3-component float vector.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 { return Vec3{v.X + w.X, v.Y + w.Y, v.Z + w.Z} }

// Scale returns v scaled by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float32 { return v.X*w.X + v.Y*w.Y + v.Z*w.Z }

// Cross returns the cross product of v and w.
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		v.Y*w.Z - v.Z*w.Y,
		v.Z*w.X - v.X*w.Z,
		v.X*w.Y - v.Y*w.X,
	}
}

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec3) Normalize() Vec3 {
	l := math32.Sqrt(v.Dot(v))
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Mat4 is a 4x4 matrix in column-major order: element (row r, col c) is
// m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Mul returns m * n.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// openglToWGPU maps OpenGL clip space (z in [-1, 1]) to WebGPU clip space
// (z in [0, 1]): z' = 0.5z + 0.5w.
var openglToWGPU = Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

// Perspective returns a right-handed OpenGL-convention perspective
// projection. Combine with the WebGPU clip-space correction via
// Projection.Matrix.
func Perspective(fovy, aspect, znear, zfar float32) Mat4 {
	f := 1 / math32.Tan(fovy/2)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (zfar + znear) / (znear - zfar), -1,
		0, 0, 2 * zfar * znear / (znear - zfar), 0,
	}
}

// LookToRH returns a right-handed view matrix for a camera at eye looking
// along dir with the given up vector.
func LookToRH(eye, dir, up Vec3) Mat4 {
	f := dir.Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	return Mat4{
		s.X, u.X, -f.X, 0,
		s.Y, u.Y, -f.Y, 0,
		s.Z, u.Z, -f.Z, 0,
		-s.Dot(eye), -u.Dot(eye), f.Dot(eye), 1,
	}
}
