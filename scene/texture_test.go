// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scene

import (
	"image"
	"image/color"
	"testing"
)

func TestRGBAPixels_PassThrough(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 2))
	src.SetRGBA(1, 0, color.RGBA{R: 255, A: 255})

	data, w, h := RGBAPixels(src)
	if w != 4 || h != 2 {
		t.Fatalf("size = %dx%d, want 4x2", w, h)
	}
	if &data[0] != &src.Pix[0] {
		t.Error("tightly packed RGBA was copied instead of passed through")
	}
}

func TestRGBAPixels_Converts(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 128})

	data, w, h := RGBAPixels(src)
	if w != 2 || h != 2 {
		t.Fatalf("size = %dx%d, want 2x2", w, h)
	}
	if len(data) != 2*2*4 {
		t.Fatalf("len = %d, want 16", len(data))
	}
	if data[3] != 255 {
		t.Errorf("alpha = %d, want 255", data[3])
	}
}

func TestScaledRGBAPixels(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 8))
	data := ScaledRGBAPixels(src, 4, 4)
	if len(data) != 4*4*4 {
		t.Fatalf("len = %d, want 64", len(data))
	}
}
