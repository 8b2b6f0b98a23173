/*
NAME
  stream.go

DESCRIPTION
  stream.go implements the queuing PCM stream: an ordered, mutex-guarded
  FIFO of owned PCM buffers presented to the mixer as a single logical
  audio source.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package audio provides the mixer-side of SMUSH playback: a queuing PCM
// stream, a rate converter that mixes a source-rate mono/stereo int16
// stream into a fixed-rate stereo output, and the N-channel mixer itself.
package audio

import "sync"

// SampleFormat names the bit depth/endianness a QueuingStream's buffers
// are encoded in before QueuingStream normalizes them to native int16.
type SampleFormat int

const (
	// S16LE is little-endian signed 16-bit, the mixer's native format.
	S16LE SampleFormat = iota
	// S16BE is big-endian signed 16-bit, used by IACT-decoded packets.
	S16BE
)

// QueuingStream is a FIFO of PCM buffers surfaced as one logical audio
// source. The video (producer) thread appends buffers while the audio
// (consumer) thread drains samples across buffer boundaries; both sides
// are synchronized by an internal mutex.
type QueuingStream struct {
	rate     int
	channels int
	format   SampleFormat

	mu       sync.Mutex
	buffers  [][]byte
	bufPos   int // byte offset into buffers[0]
	finished bool
}

// NewQueuingStream creates an empty stream at the given rate/channel count.
// format describes the byte layout of buffers passed to Queue.
func NewQueuingStream(rate, channels int, format SampleFormat) *QueuingStream {
	return &QueuingStream{rate: rate, channels: channels, format: format}
}

// Rate returns the stream's sample rate in Hz.
func (s *QueuingStream) Rate() int { return s.rate }

// Channels returns 1 (mono) or 2 (stereo).
func (s *QueuingStream) Channels() int { return s.channels }

// Queue appends a PCM buffer (in the stream's native format, raw bytes) to
// the FIFO. Ownership of buf transfers to the stream.
func (s *QueuingStream) Queue(buf []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buffers = append(s.buffers, buf)
}

// Finish marks the stream as not expecting further Queue calls; once
// drained, EndOfStream reports true.
func (s *QueuingStream) Finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finished = true
}

// EndOfStream reports whether the stream is finished and fully drained.
// A mixer channel whose stream reaches end-of-stream contributes silence
// but is not automatically removed (§4.4 Fill).
func (s *QueuingStream) EndOfStream() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished && len(s.buffers) == 0
}

// EndOfData reports whether the FIFO is currently empty, whether or not
// the stream has been Finish()ed.
func (s *QueuingStream) EndOfData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buffers) == 0
}

// sampleSize is the byte width of one interleaved-channel frame.
func (s *QueuingStream) sampleSize() int {
	n := 2 * s.channels
	return n
}

// NextSample pulls the next interleaved sample frame (1 or 2 int16s)
// across buffer boundaries, decoding per s.format. ok is false if no data
// is currently available.
func (s *QueuingStream) NextSample() (left, right int16, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	frame := s.sampleSize()
	for len(s.buffers) > 0 {
		b := s.buffers[0]
		if s.bufPos+frame > len(b) {
			// Partial trailing frame: drop it and move to the next buffer.
			s.buffers = s.buffers[1:]
			s.bufPos = 0
			continue
		}

		decode := decodeLE
		if s.format == S16BE {
			decode = decodeBE
		}

		left = decode(b[s.bufPos : s.bufPos+2])
		if s.channels == 2 {
			right = decode(b[s.bufPos+2 : s.bufPos+4])
		} else {
			right = left
		}

		s.bufPos += frame
		if s.bufPos >= len(b) {
			s.buffers = s.buffers[1:]
			s.bufPos = 0
		}
		return left, right, true
	}
	return 0, 0, false
}

func decodeLE(b []byte) int16 {
	return int16(uint16(b[0]) | uint16(b[1])<<8)
}

func decodeBE(b []byte) int16 {
	return int16(uint16(b[0])<<8 | uint16(b[1]))
}
