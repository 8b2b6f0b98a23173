/*
NAME
  resample.go

DESCRIPTION
  resample.go converts a source-rate mono/stereo int16 PCM stream into the
  mixer's fixed-rate stereo output, applying per-side gain and accumulating
  (not overwriting) into the destination with int16 saturation. Adapted
  from the decimation-ratio approach in codec/pcm.Resample, generalized
  from block decimation to a running-phase pull across an arbitrary
  QueuingStream.

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

// DestRate is the mixer's fixed output sample rate.
const DestRate = 44100

// RateConverter resamples a QueuingStream up or down to DestRate using
// nearest-neighbour selection, and mixes the result additively into a
// caller-supplied stereo int16 buffer with per-side gain and saturation.
// Phase state persists across Flow calls so a source played in several
// Fill-sized chunks resamples continuously rather than restarting at each
// call.
type RateConverter struct {
	srcRate int
	phase   int // fractional position into the source, in units of 1/DestRate

	// curL, curR hold the most recently pulled source sample and have
	// reports whether one has been pulled yet; like phase, they persist
	// across Flow calls.
	curL, curR int16
	have       bool
}

// NewRateConverter builds a converter from srcRate to DestRate.
func NewRateConverter(srcRate int) *RateConverter {
	return &RateConverter{srcRate: srcRate}
}

// Flow pulls up to frames stereo samples (at DestRate) from stream,
// nearest-neighbour resampled from srcRate, scales them by leftGain and
// rightGain (in units of 1/256), and adds them into dst (interleaved L,R
// int16, len(dst) >= frames*2), saturating on overflow. It returns the
// number of destination frames written. It stops early only when no source
// sample has been pulled yet; once one has, frames for which the stream has
// no new data repeat the most recent sample.
func (c *RateConverter) Flow(stream *QueuingStream, dst []int16, frames int, leftGain, rightGain int) int {
	if c.srcRate <= 0 {
		c.srcRate = stream.Rate()
	}

	written := 0
	for i := 0; i < frames; i++ {
		// Advance the source by one dest-rate tick's worth of source
		// samples, consuming source frames until caught up (nearest
		// neighbour: always use the most recently pulled sample).
		c.phase += c.srcRate
		for c.phase >= DestRate {
			l, r, ok := stream.NextSample()
			if !ok {
				if !c.have {
					return written
				}
				break
			}
			c.curL, c.curR, c.have = l, r, true
			c.phase -= DestRate
		}
		if !c.have {
			l, r, ok := stream.NextSample()
			if !ok {
				return written
			}
			c.curL, c.curR, c.have = l, r, true
		}

		dst[i*2] = saturatingAdd(dst[i*2], scale(c.curL, leftGain))
		dst[i*2+1] = saturatingAdd(dst[i*2+1], scale(c.curR, rightGain))
		written++
	}
	return written
}

// scale applies a gain in units of 1/256 (as produced by Mixer's gain
// computation) to a sample.
func scale(sample int16, gain int) int32 {
	return (int32(sample) * int32(gain)) / 256
}

// saturatingAdd adds delta onto a plus the existing dst sample, clamping
// to the int16 range.
func saturatingAdd(dst int16, delta int32) int16 {
	sum := int32(dst) + delta
	switch {
	case sum > 32767:
		return 32767
	case sum < -32768:
		return -32768
	default:
		return int16(sum)
	}
}
