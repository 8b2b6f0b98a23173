/*
NAME
  adpcm.go

DESCRIPTION
  adpcm.go decodes SMUSH IACT audio packets: a CMI-era 4-bit-shifted delta
  scheme distinct from standard IMA ADPCM, streaming across IACT sub-chunk
  boundaries via a fixed 4096-byte scratch buffer. Grounded on
  bufferIACTAudio in original_source/smushvideo.cpp.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package smushaud decodes SMUSH's interleaved IACT audio sub-chunks into
// raw PCM packets ready to hand to a queuing stream.
package smushaud

import "github.com/pkg/errors"

// Fixed output parameters for CMI IACT audio, regardless of what the
// container header claims (§4.4).
const (
	Rate     = 22050
	Channels = 2

	packetBytes = 4096 // 1024 stereo int16 samples.
)

// ByteSource is the minimal reader the Decoder needs from an IACT
// sub-chunk: sequential byte consumption with a remaining-length count.
// container/smush.Reader satisfies this via its Read method.
type ByteSource interface {
	Read(n int) ([]byte, error)
}

// Decoder holds the cross-sub-chunk streaming state for one CMI IACT
// audio track: a 4096-byte scratch buffer and a cursor into it. The zero
// value is ready to use.
type Decoder struct {
	buf [4096]byte
	pos int // iact_pos, invariant: 0 <= pos <= 4098 in the original; here bounded by len(buf).
}

// Reset clears the streaming state, e.g. when a new audio track begins.
func (d *Decoder) Reset() {
	d.pos = 0
}

// Feed consumes size bytes of IACT sub-chunk payload (the 18-byte track
// header already stripped by the caller) from src, emitting zero or more
// complete 4096-byte PCM packets via emit. Each emitted packet is exactly
// 1024 big-endian stereo int16 sample pairs per §4.4's packet decoder.
func (d *Decoder) Feed(src ByteSource, size int, emit func(packet []byte)) error {
	for size > 0 {
		if d.pos >= 2 {
			length := int(int(d.buf[0])<<8|int(d.buf[1])) + 2
			need := length - d.pos
			if need > size {
				chunk, err := src.Read(size)
				if err != nil && len(chunk) == 0 {
					return errors.Wrap(err, "smushaud: reading IACT payload")
				}
				copy(d.buf[d.pos:], chunk)
				d.pos += len(chunk)
				size -= len(chunk)
				continue
			}

			chunk, err := src.Read(need)
			if err != nil && len(chunk) < need {
				return errors.Wrap(err, "smushaud: reading IACT packet tail")
			}
			copy(d.buf[d.pos:], chunk)

			emit(decodePacket(d.buf[2:]))

			size -= need
			d.pos = 0
			continue
		}

		n := 1
		if size > 1 && d.pos == 0 {
			n = 2
		}
		chunk, err := src.Read(n)
		if err != nil && len(chunk) == 0 {
			return errors.Wrap(err, "smushaud: reading IACT length prefix")
		}
		copy(d.buf[d.pos:], chunk)
		d.pos += len(chunk)
		size -= len(chunk)
	}
	return nil
}

// decodePacket implements the packet decoder of §4.4: src starts just past
// the 2-byte length prefix with the shift byte, and always yields exactly
// packetBytes of big-endian stereo int16 output.
func decodePacket(src []byte) []byte {
	out := make([]byte, packetBytes)

	shiftByte := src[0]
	shiftRight := shiftByte >> 4
	shiftLeft := shiftByte & 0xF
	src = src[1:]

	di := 0
	for count := 0; count < 1024; count++ {
		// Left channel, shifted by shiftRight.
		v := src[0]
		src = src[1:]
		if v == 0x80 {
			out[di] = src[0]
			out[di+1] = src[1]
			src = src[2:]
		} else {
			sample := int16(int8(v)) << shiftRight
			out[di] = byte(sample >> 8)
			out[di+1] = byte(sample)
		}
		di += 2

		// Right channel, shifted by shiftLeft.
		v = src[0]
		src = src[1:]
		if v == 0x80 {
			out[di] = src[0]
			out[di+1] = src[1]
			src = src[2:]
		} else {
			sample := int16(int8(v)) << shiftLeft
			out[di] = byte(sample >> 8)
			out[di+1] = byte(sample)
		}
		di += 2
	}

	return out
}
