/*
NAME
  bitmap_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package bitmap

import (
	"bytes"
	"testing"
)

// TestResolveRGB24AndExport reproduces §8 scenario 1's resolve step: a
// 4x1 paletted row of index 0 resolves to palette entry (10,20,30)
// repeated, and Export swaps it to BGR byte order at a caller stride.
func TestResolveRGB24AndExport(t *testing.T) {
	back := []byte{0, 0, 0, 0}
	var palette [768]byte
	palette[0], palette[1], palette[2] = 10, 20, 30

	rgb, err := ResolveRGB24(back, palette, 4, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	wantRGB := []byte{10, 20, 30, 10, 20, 30, 10, 20, 30, 10, 20, 30}
	if !bytes.Equal(rgb, wantRGB) {
		t.Fatalf("ResolveRGB24() = %v, want %v", rgb, wantRGB)
	}

	dst := make([]byte, 4*3)
	if err := Export(rgb, 4, 1, 4*3, dst); err != nil {
		t.Fatal(err)
	}
	wantBGR := []byte{30, 20, 10, 30, 20, 10, 30, 20, 10, 30, 20, 10}
	if !bytes.Equal(dst, wantBGR) {
		t.Fatalf("Export() = %v, want %v", dst, wantBGR)
	}
}

func TestResolveRGB24HighColor(t *testing.T) {
	// RGB555 pixel with R=31 (max), G=0, B=0: bits 14..10 = R.
	px := uint16(31) << 10
	back := []byte{byte(px), byte(px >> 8)}

	rgb, err := ResolveRGB24HighColor(back, 1, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if rgb[0] != 255 || rgb[1] != 0 || rgb[2] != 0 {
		t.Fatalf("ResolveRGB24HighColor() = %v, want [255 0 0]", rgb)
	}
}

func TestExportRejectsUndersizedStride(t *testing.T) {
	rgb := make([]byte, 3)
	if err := Export(rgb, 1, 1, 2, make([]byte, 2)); err == nil {
		t.Fatal("Export() with a stride smaller than width*3 did not error")
	}
}
