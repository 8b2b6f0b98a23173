/*
NAME
  mixer.go

DESCRIPTION
  mixer.go implements the audio mixer: channel handles, gain computation,
  and synchronous buffer fill. Grounded on audioman.cpp's AudioManager and
  Channel classes.

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
	"sync"

	"github.com/go-audio/audio"
	"github.com/pkg/errors"
)

// NullHandle is the reserved "no channel" sentinel, matching the original
// 0xFFFFFFFF AudioHandle value.
const NullHandle = 0xFFFFFFFF

// Gain constants from §4.4: max_amp = 256, max_vol = 255.
const (
	maxAmp = 256
	maxVol = 255
)

// Handle addresses a mixer channel. 0 is a valid handle (Play assigns it
// first); use NullHandle to represent "no channel" at API boundaries.
type Handle uint32

type channel struct {
	stream    *QueuingStream
	converter *RateConverter
	volume    byte
	balance   int8
	leftGain  int
	rightGain int
}

func newChannel(stream *QueuingStream, volume byte, balance int8) *channel {
	if balance < -127 {
		balance = -127
	}
	if balance > 127 {
		balance = 127
	}
	c := &channel{
		stream:    stream,
		converter: NewRateConverter(stream.Rate()),
		volume:    volume,
		balance:   balance,
	}
	c.updateGains()
	return c
}

// updateGains recomputes left/right gain per §4.4's formula:
//
//	vol = max_amp * volume
//	balance == 0: left = right = vol / max_vol
//	balance <  0: left = vol/max_vol; right = ((127+balance)*vol)/(max_vol*127)
//	balance >  0: symmetric
func (c *channel) updateGains() {
	vol := maxAmp * int(c.volume)
	switch {
	case c.balance == 0:
		c.leftGain = vol / maxVol
		c.rightGain = vol / maxVol
	case c.balance < 0:
		c.leftGain = vol / maxVol
		c.rightGain = ((127 + int(c.balance)) * vol) / (maxVol * 127)
	default:
		c.leftGain = ((127 - int(c.balance)) * vol) / (maxVol * 127)
		c.rightGain = vol / maxVol
	}
}

func (c *channel) setVolume(v byte) {
	c.volume = v
	c.updateGains()
}

// Mixer owns N active channels and synchronously fills a caller-provided
// int16 stereo buffer at DestRate. The channel map is guarded by a mutex;
// the critical section never calls back into channel/stream code that
// could re-enter the mixer.
type Mixer struct {
	mu       sync.Mutex
	channels map[Handle]*channel
	seed     uint32
}

// NewMixer constructs an empty mixer.
func NewMixer() *Mixer {
	return &Mixer{channels: make(map[Handle]*channel)}
}

// Play registers stream as a new channel with the given volume (0-255) and
// balance (-127..127, clipped) and returns its handle. The seed counter
// skips NullHandle on rollover: the pending seed is normalized to 0 BEFORE
// a candidate id is drawn, so no two Play calls can ever be assigned the
// same id across a rollover (see DESIGN.md for why the naive
// assign-then-check translation is wrong).
func (m *Mixer) Play(stream *QueuingStream, volume byte, balance int8) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.seed == NullHandle {
		m.seed = 0
	}
	id := Handle(m.seed)
	m.seed++

	m.channels[id] = newChannel(stream, volume, balance)
	return id
}

// PlayDefault registers stream with the default volume (255) and balance
// (0), matching AudioManager::play's no-argument overload.
func (m *Mixer) PlayDefault(stream *QueuingStream) Handle {
	return m.Play(stream, 255, 0)
}

// Stop removes and discards the channel for handle, if any. A NullHandle
// is silently ignored.
func (m *Mixer) Stop(handle Handle) {
	if handle == NullHandle {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.channels, handle)
}

// StopAll removes every channel.
func (m *Mixer) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels = make(map[Handle]*channel)
}

// SetVolume updates the volume of an active channel. A NullHandle or
// unknown handle is silently ignored.
func (m *Mixer) SetVolume(handle Handle, volume byte) {
	if handle == NullHandle {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.channels[handle]; ok {
		c.setVolume(volume)
	}
}

// GetVolume returns the current volume of handle, or 0 if unknown/null.
func (m *Mixer) GetVolume(handle Handle) byte {
	if handle == NullHandle {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.channels[handle]; ok {
		return c.volume
	}
	return 0
}

// Fill zeroes dst, then additively mixes every active channel's
// resampled, gain-scaled output into it. dst is raw interleaved int16
// stereo bytes (native endianness); len(dst) must be a multiple of 4.
func (m *Mixer) Fill(dst []byte) error {
	if len(dst)%4 != 0 {
		return errors.Errorf("audio: fill buffer length %d is not a multiple of 4", len(dst))
	}
	frames := len(dst) / 4
	samples := make([]int16, frames*2)

	m.mu.Lock()
	for _, c := range m.channels {
		if c.stream.EndOfStream() {
			continue
		}
		if c.stream.EndOfData() {
			continue
		}
		c.converter.Flow(c.stream, samples, frames, c.leftGain, c.rightGain)
	}
	m.mu.Unlock()

	for i, s := range samples {
		dst[i*2] = byte(uint16(s))
		dst[i*2+1] = byte(uint16(s) >> 8)
	}
	return nil
}

// FillIntBuffer is the go-audio/audio-flavoured sibling of Fill: it fills
// an audio.IntBuffer with frames stereo samples at DestRate, used by the
// WAV exporter and by diagnostic tooling.
func (m *Mixer) FillIntBuffer(frames int) (*audio.IntBuffer, error) {
	buf := make([]byte, frames*4)
	if err := m.Fill(buf); err != nil {
		return nil, err
	}
	ib := &audio.IntBuffer{
		Format: &audio.Format{SampleRate: DestRate, NumChannels: 2},
		Data:   make([]int, frames*2),
	}
	for i := 0; i < frames*2; i++ {
		v := int16(uint16(buf[i*2]) | uint16(buf[i*2+1])<<8)
		ib.Data[i] = int(v)
	}
	return ib, nil
}
