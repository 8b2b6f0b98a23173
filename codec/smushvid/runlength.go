/*
NAME
  runlength.go

DESCRIPTION
  runlength.go implements codec 1/3: per-row run-length over 8bpp indices
  with a transparency sentinel, per §4.3.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smushvid

import "github.com/ausocean/smush/container/smush"

// decodeCodec1 decodes height rows of run-length-compressed 8bpp pixels
// into the back-buffer at (left, top), very similar to bomp compression.
func (p *Pipeline) decodeCodec1(r *smush.Reader, left, top, width, height int) error {
	for y := 0; y < height; y++ {
		lineSize, err := r.ReadU16LE()
		if err != nil {
			return err
		}
		dst := (top+y)*int(p.Pitch) + left

		for lineSize > 0 {
			code, err := r.ReadByte()
			if err != nil {
				return err
			}
			lineSize--
			length := int(code>>1) + 1

			if code&1 != 0 {
				val, err := r.ReadByte()
				if err != nil {
					return err
				}
				lineSize--
				if val != 0 {
					for i := 0; i < length; i++ {
						p.Buffer[dst+i] = val
					}
				}
				dst += length
			} else {
				lineSize -= uint16(length)
				for i := 0; i < length; i++ {
					val, err := r.ReadByte()
					if err != nil {
						return err
					}
					if val != 0 {
						p.Buffer[dst] = val
					}
					dst++
				}
			}
		}
	}
	return nil
}
