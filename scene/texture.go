// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// RGBAPixels converts img to tightly packed 8-bit RGBA rows, the layout
// texture uploads expect. Images that are already *image.RGBA with no
// sub-rectangle pass through without copying.
func RGBAPixels(img image.Image) (data []byte, width, height uint32) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && b.Min == image.Pt(0, 0) {
		return rgba.Pix, uint32(w), uint32(h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst.Pix, uint32(w), uint32(h)
}

// ScaledRGBAPixels converts img to RGBA at the given size, resampling with
// a bilinear kernel. Used to clamp oversized source images to device
// texture limits before upload.
func ScaledRGBAPixels(img image.Image, width, height uint32) []byte {
	dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst.Pix
}
