/*
NAME
  bitmap.go

DESCRIPTION
  bitmap.go resolves a SMUSH back-buffer (paletted 8bpp or high-colour
  16bpp) to RGB24 and exports it into a caller-supplied stride in BGR byte
  order, split the way GraphicsManager.blit/toBitmap are split in the
  reference decoder.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitmap converts a decoded SMUSH back-buffer into an RGB24 image
// for the host's presentation surface.
package bitmap

import "github.com/pkg/errors"

// ResolveRGB24 converts a paletted back-buffer (8bpp indices, pitch ==
// width) to an RGB24 scratch image (width*height*3 bytes, row-major,
// R,G,B per pixel). palette is 256 RGB triples.
func ResolveRGB24(back []byte, palette [768]byte, width, height, pitch int) ([]byte, error) {
	if len(back) < pitch*height {
		return nil, errors.New("bitmap: back-buffer too small")
	}
	rgb := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcRow := back[y*pitch:]
		dstRow := rgb[y*width*3:]
		for x := 0; x < width; x++ {
			idx := srcRow[x]
			p := int(idx) * 3
			dstRow[x*3] = palette[p]
			dstRow[x*3+1] = palette[p+1]
			dstRow[x*3+2] = palette[p+2]
		}
	}
	return rgb, nil
}

// ResolveRGB24HighColor converts a SANM 16bpp back-buffer (little-endian
// RGB555, pitch == width*2) directly to RGB24. RGB555 is an assumption:
// the source format leaves the exact 16bpp layout unspecified (see
// DESIGN.md).
func ResolveRGB24HighColor(back []byte, width, height, pitch int) ([]byte, error) {
	if len(back) < pitch*height {
		return nil, errors.New("bitmap: back-buffer too small")
	}
	rgb := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		srcRow := back[y*pitch:]
		dstRow := rgb[y*width*3:]
		for x := 0; x < width; x++ {
			px := uint16(srcRow[x*2]) | uint16(srcRow[x*2+1])<<8
			r := (px >> 10) & 0x1F
			g := (px >> 5) & 0x1F
			b := px & 0x1F
			dstRow[x*3] = byte(r<<3 | r>>2)
			dstRow[x*3+1] = byte(g<<3 | g>>2)
			dstRow[x*3+2] = byte(b<<3 | b>>2)
		}
	}
	return rgb, nil
}

// Export copies the width*height*3 RGB24 image rgb into dst at the given
// byte stride, one row at a time, swapping to BGR byte order
// (dst byte 0 = src.B, 1 = src.G, 2 = src.R) per §4.7.
func Export(rgb []byte, width, height, stride int, dst []byte) error {
	if stride < width*3 {
		return errors.New("bitmap: stride too small for width")
	}
	if len(dst) < stride*height {
		return errors.New("bitmap: destination buffer too small")
	}
	for y := 0; y < height; y++ {
		srcRow := rgb[y*width*3:]
		dstRow := dst[y*stride:]
		for x := 0; x < width; x++ {
			dstRow[x*3] = srcRow[x*3+2]
			dstRow[x*3+1] = srcRow[x*3+1]
			dstRow[x*3+2] = srcRow[x*3]
		}
	}
	return nil
}
