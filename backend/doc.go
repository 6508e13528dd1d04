// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend selects and instantiates GPU drivers.
//
// Drivers register themselves from init functions; importing a driver
// package for its side effect makes it available:
//
//	import _ "github.com/gogpu/forge/backend/wgpu"
//
// Default picks the best registered driver by priority.
package backend
