/*
NAME
  dispatch.go

DESCRIPTION
  dispatch.go wires the container parser's per-sub-chunk callbacks
  (§4.2) to the video pipeline, the IACT audio decoder and the mixer.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smush

import (
	"github.com/pkg/errors"

	"github.com/ausocean/smush/audio"
	"github.com/ausocean/smush/codec/smushaud"
	container "github.com/ausocean/smush/container/smush"
)

// subChunkHandlers wires the container parser's callbacks to the video
// pipeline, the IACT decoder and the mixer. Every handler error is fatal
// per §7 kind 3. Of the recoverable anomalies of kind 2, an unknown codec
// and an out-of-frame rectangle are handled inside the pipeline, which logs
// and returns nil; a size-mismatched NPAL/XPAL is caught here, logged and
// skipped before the pipeline sees it. This mirrors the original decoder's
// "log, return true, keep going" shape.
func (v *Video) subChunkHandlers() container.SubChunkHandlers {
	fatal := func(h func(r *container.Reader, size uint32) error) func(*container.Reader, uint32) error {
		return func(r *container.Reader, size uint32) error {
			return container.Fatal(h(r, size))
		}
	}

	return container.SubChunkHandlers{
		FOBJ: fatal(v.pipe.HandleFOBJ),
		FTCH: fatal(v.pipe.HandleFTCH),
		STOR: fatal(v.pipe.HandleSTOR),
		NPAL: func(r *container.Reader, size uint32) error {
			if size < 768 {
				v.log.Log(LevelWarn, "bad NPAL chunk", "size", size)
				return nil
			}
			return container.Fatal(v.pipe.HandleNPAL(r, size, v.setPalette))
		},
		XPAL: func(r *container.Reader, size uint32) error {
			switch size {
			case 256*3*3 + 4, 256*3*2 + 4, 6, 4:
			default:
				v.log.Log(LevelWarn, "bad XPAL chunk", "size", size)
				return nil
			}
			return container.Fatal(v.pipe.HandleXPAL(r, size, v.setPalette))
		},
		IACT: fatal(v.handleIACT),
		TEXT: fatal(func(r *container.Reader, size uint32) error {
			return v.handleText(container.TagTEXT, r, size)
		}),
		TRES: fatal(func(r *container.Reader, size uint32) error {
			return v.handleText(container.TagTRES, r, size)
		}),
		Unknown: func(tag container.Tag, size uint32) {
			v.log.Log(LevelDebug, "unhandled sub-chunk", "tag", tag.String(), "size", size)
		},
	}
}

func (v *Video) setPalette(palette [768]byte) {
	// The surface push in the original is GraphicsManager.setPalette;
	// here the palette already lives in v.pipe.Palette and GetFrame reads
	// it directly on pull, so there is nothing further to push.
}

func (v *Video) handleIACT(r *container.Reader, size uint32) error {
	if size < 8 {
		return errors.New("smush: IACT chunk too small")
	}

	code, err := r.ReadU16LE()
	if err != nil {
		return err
	}
	flags, err := r.ReadU16LE()
	if err != nil {
		return err
	}
	if _, err := r.ReadI16LE(); err != nil { // unknown
		return err
	}
	trackFlags, err := r.ReadU16LE()
	if err != nil {
		return err
	}

	switch {
	case code == 8 && flags == 46:
		if !v.ranIACT {
			v.hasIACT = trackFlags == 0
			v.ranIACT = true
		}
		if v.hasIACT && trackFlags == 0 {
			return v.bufferIACTAudio(r, size-8)
		}
	case code == 6 && flags == 38:
		// Frame-clear hint: no-op per §9.
	default:
		// INSANE command data, ignored.
	}
	return nil
}

func (v *Video) bufferIACTAudio(r *container.Reader, size uint32) error {
	if v.iactStream == nil {
		v.iactStream = audio.NewQueuingStream(smushaud.Rate, smushaud.Channels, audio.S16BE)
		v.mixer.PlayDefault(v.iactStream)
		v.iactDec.Reset()
	}

	// Skip 18 bytes of IACT header: trackID, index, frameCount, bytesLeft.
	if _, err := r.Read(18); err != nil {
		return err
	}
	size -= 18

	return v.iactDec.Feed(r, int(size), func(packet []byte) {
		v.iactStream.Queue(packet)
	})
}

func (v *Video) handleText(tag container.Tag, r *container.Reader, size uint32) error {
	posX, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	posY, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	flags, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	left, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	top, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	right, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	height, err := r.ReadI16LE()
	if err != nil {
		return err
	}
	if _, err := r.ReadU16LE(); err != nil { // unk2
		return err
	}

	v.lastText = &TextOverlay{
		PosX: posX, PosY: posY, Flags: flags,
		Left: left, Top: top, Right: right, Height: height,
	}

	if tag == container.TagTRES {
		id, err := r.ReadU16LE()
		if err != nil {
			return err
		}
		v.cutsceneStringID = int(id)
	}
	// TEXT's inline string payload is not read or rendered (§4.2); only
	// the header above is kept, and the strict post-seek realignment in
	// ReadFrame skips the string.

	return nil
}

