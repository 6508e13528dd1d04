// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package camera

import (
	"time"

	"github.com/chewxy/math32"
)

// Default controller tuning.
const (
	DefaultSpeed       = 4.0
	DefaultSensitivity = 0.4
)

// Controller accumulates movement and rotation input between frames and
// applies it to a Camera once per frame. Input delivery (key and mouse
// events) is the window system's job; the controller only consumes the
// resulting axis values.
type Controller struct {
	unitsLeft    float32
	unitsRight   float32
	unitsForward float32
	unitsBack    float32
	unitsUp      float32
	unitsDown    float32

	horizontalRotation float32
	verticalRotation   float32
	scroll             float32

	// Speed scales translation in units per second.
	Speed float32

	// Sensitivity scales rotation and zoom.
	Sensitivity float32
}

// NewController creates a controller with the given tuning.
func NewController(speed, sensitivity float32) *Controller {
	return &Controller{Speed: speed, Sensitivity: sensitivity}
}

// SetMovement sets the held movement axes, each 0 or 1 for a held key
// (forward/back along the view heading, left/right strafe, up/down along
// world Y).
func (c *Controller) SetMovement(forward, back, left, right, up, down float32) {
	c.unitsForward = forward
	c.unitsBack = back
	c.unitsLeft = left
	c.unitsRight = right
	c.unitsUp = up
	c.unitsDown = down
}

// ProcessMouse feeds one frame's mouse delta into the rotation axes.
func (c *Controller) ProcessMouse(dx, dy float32) {
	c.horizontalRotation = dx
	c.verticalRotation = dy
}

// ProcessScroll feeds a scroll delta into the zoom axis. Positive deltas
// zoom in.
func (c *Controller) ProcessScroll(delta float32) {
	c.scroll = -delta
}

// Update applies the accumulated input to cam, scaled by the frame's
// elapsed time, then resets the one-shot axes (rotation and scroll).
// Pitch is clamped to just short of vertical so the view direction never
// degenerates.
func (c *Controller) Update(cam *Camera, dt time.Duration) {
	secs := float32(dt.Seconds())

	// Forward/back and strafe move in the horizontal plane only.
	yawSin, yawCos := math32.Sincos(cam.Yaw)
	forward := Vec3{X: yawCos, Z: yawSin}.Normalize()
	right := Vec3{X: -yawSin, Z: yawCos}.Normalize()
	cam.Position = cam.Position.Add(forward.Scale((c.unitsForward - c.unitsBack) * c.Speed * secs))
	cam.Position = cam.Position.Add(right.Scale((c.unitsRight - c.unitsLeft) * c.Speed * secs))

	// Zoom moves along the actual view direction, pitch included.
	pitchSin, pitchCos := math32.Sincos(cam.Pitch)
	scrollward := Vec3{X: pitchCos * yawCos, Y: pitchSin, Z: pitchCos * yawSin}.Normalize()
	cam.Position = cam.Position.Add(scrollward.Scale(c.scroll * c.Speed * c.Sensitivity * secs))
	c.scroll = 0

	cam.Position.Y += (c.unitsUp - c.unitsDown) * c.Speed * secs

	cam.Yaw += c.horizontalRotation * c.Sensitivity * secs
	cam.Pitch += -c.verticalRotation * c.Sensitivity * secs
	c.horizontalRotation = 0
	c.verticalRotation = 0

	if cam.Pitch < -SafeHalfPi {
		cam.Pitch = -SafeHalfPi
	} else if cam.Pitch > SafeHalfPi {
		cam.Pitch = SafeHalfPi
	}
}
