/*
NAME
  video.go

DESCRIPTION
  video.go provides the Video host-plugin handle: load/close, the
  tick-gated Frame advance, and the RGB24/PCM pull operations that the
  embedding application drives. Structurally grounded on the Revid type
  in revid/revid.go (a config-built handle guarding device/codec/container
  sub-state behind a single exported API), adapted from a streaming
  transcoder orchestrator to a single-file-load decoder handle.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Alan Noble <alan@ausocean.org>
  Dan Kortschak <dan@ausocean.org>
  Trek Hopton <trek@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package smush is a decoder for the LucasArts SMUSH family of
// interleaved audio/video container files (ANIM v1/v2 and SANM). It
// exposes a small host-plugin API: Open, Frame, GetFrame, GetAudio,
// GetInfo, GetCutsceneStringID and Close.
package smush

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/smush/audio"
	"github.com/ausocean/smush/bitmap"
	container "github.com/ausocean/smush/container/smush"
	"github.com/ausocean/smush/codec/smushaud"
	"github.com/ausocean/smush/codec/smushvid"
)

// Info is the result of GetInfo (§6).
type Info struct {
	Width, Height uint16
	FrameCount    uint32
	FPS           float64
}

// TextOverlay is the captured-but-not-rendered position/flags header of a
// TEXT sub-chunk (§9 supplemented feature 3).
type TextOverlay struct {
	PosX, PosY       int16
	Flags            int16
	Left, Top, Right int16
	Height           int16
}

// trackHandle is the totally-ordered (type, id, maxFrames) key the
// original's audio-track map is keyed on (SMUSHTrackHandle in
// smushvideo.h). Required only for the forward-compatible non-IACT
// audio-track lookup (§9 design note); this core never dispatches a
// non-IACT audio sub-chunk, so audioTracks is declared but never
// populated.
type trackHandle struct {
	kind      uint32
	id        uint32
	maxFrames uint32
}

// less implements SMUSHTrackHandle's operator<: lexicographic on kind,
// then id, then maxFrames.
func (h trackHandle) less(other trackHandle) bool {
	if h.kind != other.kind {
		return h.kind < other.kind
	}
	if h.id != other.id {
		return h.id < other.id
	}
	return h.maxFrames < other.maxFrames
}

// Video owns everything needed to decode one SMUSH stream: the byte
// reader, header, video pipeline and a reference to the audio mixer. It
// exclusively owns its back-buffer, stored frame, palette, reader and
// Codec48 decoder (§5 Ownership).
type Video struct {
	r      *container.Reader
	header *container.Header
	pipe   *smushvid.Pipeline
	mixer  *audio.Mixer

	iactDec    smushaud.Decoder
	iactStream *audio.QueuingStream // non-owning: the mixer owns it via a channel.
	ranIACT    bool
	hasIACT    bool

	// audioTracks is the forward-compatible non-IACT track map
	// (ChannelMap in the original); never populated by this core.
	audioTracks map[trackHandle]audio.Handle

	curFrame      uint32
	lastFrameTick int64
	firstFrame    bool

	cutsceneStringID int
	lastText         *TextOverlay

	clock Clock
	log   Logger
}

// Open parses buf as a SMUSH stream and initializes decode state. It
// performs §4.2's top-level header flow (outer tag, AHDR/SHDR+FLHD) and,
// for ANIM, the frame-size detection heuristic of §4.5.
func Open(buf []byte, opts ...OpenOption) (*Video, error) {
	v := &Video{
		mixer:      audio.NewMixer(),
		clock:      newSystemClock(),
		log:        noopLogger{},
		firstFrame: true,
	}
	for _, opt := range opts {
		opt(v)
	}

	v.r = container.NewReader(buf)

	kind, err := container.ReadOuter(v.r)
	if err != nil {
		return nil, errors.Wrap(err, "smush: reading outer container")
	}

	header, err := container.ReadHeader(v.r, kind)
	if err != nil {
		return nil, errors.Wrap(err, "smush: reading header")
	}
	v.header = header

	highColor := kind == container.KindSANM
	v.pipe = smushvid.NewPipeline(header.Width, header.Height, header.Pitch, highColor, pipelineLogger{v.log})
	if !highColor {
		v.pipe.Palette = header.Palette
	}

	return v, nil
}

// Close releases all decode state. Per §5 Ownership, the mixer's
// channels (and therefore the IACT queuing stream) must be stopped before
// the non-owning pointer to it is released.
func (v *Video) Close() {
	v.mixer.StopAll()
	v.iactStream = nil
	v.r = nil
	v.pipe = nil
}

// Kind reports whether this stream is ANIM or SANM (§9 supplemented
// feature 2).
func (v *Video) Kind() container.ContainerKind {
	return v.header.Kind
}

// findAudioTrack looks up a non-IACT audio track by its totally-ordered
// handle, mirroring SMUSHVideo::findAudioTrack. audioTracks is never
// populated in this core (§1 Non-goals: non-IACT audio is skipped), so
// this always reports ok=false; it exists for forward compatibility.
func (v *Video) findAudioTrack(track trackHandle) (h audio.Handle, ok bool) {
	h, ok = v.audioTracks[track]
	return h, ok
}

// GetInfo reports the stream's static properties (§6).
func (v *Video) GetInfo() Info {
	fps := float64(v.header.FrameRate)
	if v.header.Kind == container.KindSANM {
		fps = 1e6 / float64(v.header.FrameRate)
	}
	return Info{
		Width:      v.header.Width,
		Height:     v.header.Height,
		FrameCount: v.header.FrameCount,
		FPS:        fps,
	}
}

// GetCutsceneStringID returns the most recently seen TRES string id, or 0
// if none has been seen.
func (v *Video) GetCutsceneStringID() int {
	return v.cutsceneStringID
}

// LastText returns the most recently captured TEXT or TRES overlay
// header, if any (§9 supplemented feature 3).
func (v *Video) LastText() (TextOverlay, bool) {
	if v.lastText == nil {
		return TextOverlay{}, false
	}
	return *v.lastText, true
}

// Frame advances playback by at most one FRME, gated by the clock (§4.6).
func (v *Video) Frame() (FrameStatus, error) {
	if v.firstFrame {
		v.lastFrameTick = v.clock.NowMillis()
		v.firstFrame = false
	}

	if v.curFrame >= v.header.FrameCount {
		return Done, nil
	}

	now := v.clock.NowMillis()
	elapsed := now - v.lastFrameTick
	if elapsed <= nextFrameTimeMillis(v.header.Kind, v.curFrame, v.header.FrameRate) {
		return NoNewFrame, nil
	}

	if err := container.ReadFrame(v.r, v.subChunkHandlers()); err != nil {
		return 0, errors.Wrap(err, "smush: decoding frame")
	}
	v.curFrame++

	return NewFrame, nil
}

// Play is a blocking convenience loop that drives Frame to completion,
// for simple hosts that don't want to build their own clock loop (§9
// supplemented feature 1). fn is called after every NewFrame.
func (v *Video) Play(ctx context.Context, fn func()) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		status, err := v.Frame()
		if err != nil {
			return err
		}
		switch status {
		case Done:
			return nil
		case NewFrame:
			if fn != nil {
				fn()
			}
		case NoNewFrame:
			time.Sleep(time.Millisecond)
		}
	}
}

// GetFrame snapshots the current back-buffer as RGB24 into dest at the
// given byte stride (§4.7).
func (v *Video) GetFrame(dest []byte, stride int) error {
	var (
		rgb []byte
		err error
	)
	if v.header.Kind == container.KindSANM {
		rgb, err = bitmap.ResolveRGB24HighColor(v.pipe.Buffer, int(v.header.Width), int(v.header.Height), int(v.header.Pitch))
	} else {
		rgb, err = bitmap.ResolveRGB24(v.pipe.Buffer, v.pipe.Palette, int(v.header.Width), int(v.header.Height), int(v.header.Pitch))
	}
	if err != nil {
		return err
	}
	return bitmap.Export(rgb, int(v.header.Width), int(v.header.Height), stride, dest)
}

// GetAudio drives the mixer to emit byte_len bytes of 16-bit stereo PCM
// at 44100 Hz into dest (§6).
func (v *Video) GetAudio(dest []byte) error {
	return v.mixer.Fill(dest)
}

// Mixer returns the audio mixer backing GetAudio, for hosts that want
// direct access (e.g. to re-encode the mixed track with audio.DumpWAV).
func (v *Video) Mixer() *audio.Mixer {
	return v.mixer
}
