/*
NAME
  wavdump.go

DESCRIPTION
  wavdump.go encodes a decoded mixer PCM stream to a .wav file, for
  diagnostics and golden-file test fixtures. Adapted from codec/wav.WAV,
  whose hand-rolled RIFF header writer is replaced with go-audio/wav's
  encoder operating on the go-audio/audio.IntBuffer the mixer already
  produces.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audio

import (
	"io"

	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// DumpWAV encodes frames stereo samples pulled from m into w as a 16-bit
// PCM .wav file at DestRate.
func DumpWAV(w io.WriteSeeker, m *Mixer, frames int) error {
	buf, err := m.FillIntBuffer(frames)
	if err != nil {
		return errors.Wrap(err, "audio: filling buffer for WAV dump")
	}

	enc := wav.NewEncoder(w, DestRate, 16, 2, 1)
	if err := enc.Write(buf); err != nil {
		return errors.Wrap(err, "audio: writing WAV samples")
	}
	return enc.Close()
}
