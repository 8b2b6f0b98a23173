/*
NAME
  reader.go

DESCRIPTION
  reader.go provides a bounded, seekable byte reader over an in-memory SMUSH
  stream, with the big/little-endian primitives the container and codec
  layers need.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package smush implements the SMUSH (ANIM/SANM) container format: chunked
// tag/size framing, header parsing and the per-frame sub-chunk iterator.
package smush

import (
	"github.com/pkg/errors"
)

// Whence values for Reader.Seek, mirroring io.Seeker.
const (
	SeekStart = iota
	SeekCurrent
	SeekEnd
)

// ErrShortRead is returned by Read when the requested span would run past
// the end of the stream. The bytes that were available are still returned.
var ErrShortRead = errors.New("smush: short read")

// Reader is a forward-and-seek reader over a bounded in-memory buffer. It
// has no notion of chunk structure; the header and frame readers in this
// package build on top of it.
type Reader struct {
	buf []byte
	pos int
	eos bool
}

// NewReader wraps buf for sequential and random-access reads. The returned
// Reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the total length of the underlying buffer.
func (r *Reader) Len() int { return len(r.buf) }

// Pos returns the current read offset.
func (r *Reader) Pos() int { return r.pos }

// EOS reports whether the last Read ran past the end of the stream.
func (r *Reader) EOS() bool { return r.eos }

// Read returns up to n bytes starting at the current position and advances
// past them. If fewer than n bytes remain, the available bytes are returned
// along with ErrShortRead and eos is set.
func (r *Reader) Read(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("smush: negative read length %d", n)
	}
	avail := len(r.buf) - r.pos
	if avail <= 0 {
		r.eos = true
		if n == 0 {
			return nil, nil
		}
		return nil, ErrShortRead
	}
	if n > avail {
		out := r.buf[r.pos:]
		r.pos = len(r.buf)
		r.eos = true
		return out, ErrShortRead
	}
	out := r.buf[r.pos : r.pos+n]
	r.pos += n
	r.eos = false
	return out, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16LE reads an unsigned 16-bit little-endian integer.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadU16BE reads an unsigned 16-bit big-endian integer.
func (r *Reader) ReadU16BE() (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

// ReadI16LE reads a signed 16-bit little-endian integer.
func (r *Reader) ReadI16LE() (int16, error) {
	u, err := r.ReadU16LE()
	return int16(u), err
}

// ReadU32LE reads an unsigned 32-bit little-endian integer.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadU32BE reads an unsigned 32-bit big-endian integer. Chunk tags and
// chunk sizes are both encoded this way.
func (r *Reader) ReadU32BE() (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

// ReadI32BE reads a signed 32-bit big-endian integer. Used for FTCH offsets.
func (r *Reader) ReadI32BE() (int32, error) {
	u, err := r.ReadU32BE()
	return int32(u), err
}

// Seek repositions the reader. Seeking past the end is permitted; eos is
// only cleared by a subsequent successful Read.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case SeekStart:
		base = 0
	case SeekCurrent:
		base = int64(r.pos)
	case SeekEnd:
		base = int64(len(r.buf))
	default:
		return 0, errors.Errorf("smush: invalid whence %d", whence)
	}
	np := base + offset
	if np < 0 {
		return 0, errors.Errorf("smush: negative seek position %d", np)
	}
	r.pos = int(np)
	return np, nil
}
