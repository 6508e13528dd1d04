// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package window owns the per-window GPU state the frame loop needs: the
// depth attachment, the camera and light uniforms with their bind groups,
// and the default render pipelines. A RenderWindow hands out one DrawContext
// per frame; everything else is setup and resize plumbing.
//
// The package is windowing-system agnostic. It consumes a gpu.Device and a
// gpu.Surface created by a backend and never touches the OS window itself;
// input events reach the camera through the camera.Controller the window
// exposes.
package window
