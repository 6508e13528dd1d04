// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package forge

import "errors"

// Surface acquisition errors. RenderPass.render surfaces these from the
// gpu.Surface; DrawContext.Submit propagates the first one it sees.
var (
	// ErrSurfaceLost is returned when the surface has been lost and must be
	// reconfigured before the next frame.
	ErrSurfaceLost = errors.New("forge: surface lost")

	// ErrSurfaceOutdated is returned when the surface no longer matches the
	// window (typically after a resize) and must be reconfigured.
	ErrSurfaceOutdated = errors.New("forge: surface outdated")

	// ErrSurfaceOutOfMemory is returned when the driver cannot allocate a
	// presentable texture. Not recoverable within the session.
	ErrSurfaceOutOfMemory = errors.New("forge: surface out of memory")

	// ErrSurfaceTimeout is returned when acquiring the next presentable
	// texture timed out. The caller may retry next frame.
	ErrSurfaceTimeout = errors.New("forge: surface acquire timed out")

	// ErrContextSubmitted is returned when Submit is called on a DrawContext
	// that has already been submitted. A new context must be created for the
	// next frame.
	ErrContextSubmitted = errors.New("forge: draw context already submitted")
)

// IsRecoverable reports whether err is a surface error the frame loop can
// recover from by reconfiguring the surface and retrying next frame.
// Out-of-memory is fatal; everything else in the surface taxonomy is not.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) ||
		errors.Is(err, ErrSurfaceOutdated) ||
		errors.Is(err, ErrSurfaceTimeout)
}
