/*
NAME
  pipeline.go

DESCRIPTION
  pipeline.go owns the paletted/high-colour back-buffer, the stored-frame
  cache, and dispatches FOBJ codecs per the geometry rules of §4.3.

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

import (
	"github.com/pkg/errors"

	"github.com/ausocean/smush/container/smush"
)

// Pipeline holds the mutable video state owned exclusively by a Video:
// palette, back-buffer, stored frame, and the Codec48 decoder. It has no
// notion of clocks or audio.
type Pipeline struct {
	Width, Height, Pitch uint16
	HighColor            bool // SANM: 16bpp back-buffer instead of 8bpp indices.

	Palette      [768]byte
	DeltaPalette [768]int16

	Buffer      []byte
	StoredFrame []byte
	storeNext   bool

	codec48 *Codec48Decoder

	log Logger
}

// NewPipeline allocates a zeroed back-buffer of pitch*height bytes.
func NewPipeline(width, height, pitch uint16, highColor bool, log Logger) *Pipeline {
	if log == nil {
		log = noopLogger{}
	}
	return &Pipeline{
		Width:     width,
		Height:    height,
		Pitch:     pitch,
		HighColor: highColor,
		Buffer:    make([]byte, int(pitch)*int(height)),
		log:       log,
	}
}

// HandleFOBJ decodes one FOBJ sub-chunk: codec dispatch per §4.3's
// geometry rules, then — on success — services a pending STOR snapshot.
// size is the sub-chunk payload length (header + codec payload).
func (p *Pipeline) HandleFOBJ(r *smush.Reader, size uint32) error {
	if p.HighColor {
		return errors.New("smushvid: frame object chunk in 16bpp video")
	}
	if size < 14 {
		return errors.New("smushvid: FOBJ chunk too small")
	}

	hdr, err := smush.ReadFOBJHeader(r)
	if err != nil {
		return err
	}
	payload := size - 14

	switch hdr.Codec {
	case 37, 47, 48:
		if hdr.Width != p.Width || hdr.Height != p.Height {
			p.log.Log(LevelWarn, "modified codec coordinates", "codec", hdr.Codec, "width", hdr.Width, "height", hdr.Height)
			return nil
		}
	default:
		if hdr.Left < 0 || hdr.Top < 0 ||
			int(hdr.Left)+int(hdr.Width) > int(p.Width) ||
			int(hdr.Top)+int(hdr.Height) > int(p.Height) {
			p.log.Log(LevelWarn, "bad codec coordinates", "codec", hdr.Codec, "left", hdr.Left, "top", hdr.Top, "width", hdr.Width, "height", hdr.Height)
			return nil
		}
	}

	switch hdr.Codec {
	case 1, 3:
		if err := p.decodeCodec1(r, int(hdr.Left), int(hdr.Top), int(hdr.Width), int(hdr.Height)); err != nil {
			return err
		}
	case 48:
		raw, err := r.Read(int(payload))
		if err != nil {
			return errors.Wrap(err, "smushvid: reading codec 48 payload")
		}
		if p.codec48 == nil {
			p.codec48 = NewCodec48Decoder(int(hdr.Width), int(hdr.Height))
		}
		p.codec48.Decode(p.Buffer, raw)
	default:
		p.log.Log(LevelWarn, "unknown codec", "codec", hdr.Codec)
	}

	if p.storeNext {
		if p.StoredFrame == nil {
			p.StoredFrame = make([]byte, int(p.Pitch)*int(p.Height))
		}
		copy(p.StoredFrame, p.Buffer)
		p.storeNext = false
	}

	return nil
}

// HandleSTOR sets the one-shot store flag (§4.3).
func (p *Pipeline) HandleSTOR(r *smush.Reader, size uint32) error {
	if size < 4 {
		return errors.New("smushvid: bad STOR chunk")
	}
	p.storeNext = true
	return nil
}

// HandleFTCH restores stored-frame pixels into the back-buffer at a
// (dx, dy) offset (§4.3).
func (p *Pipeline) HandleFTCH(r *smush.Reader, size uint32) error {
	var dx, dy int32

	if size >= 4 {
		if _, err := r.ReadI32BE(); err != nil { // index, unused
			return err
		}
	}
	if size >= 8 {
		v, err := r.ReadI32BE()
		if err != nil {
			return err
		}
		dx = v
	}
	if size >= 12 {
		v, err := r.ReadI32BE()
		if err != nil {
			return err
		}
		dy = v
	}

	if p.StoredFrame == nil || p.Buffer == nil {
		return nil
	}

	pitch := int(p.Pitch)
	for y := 0; y < int(p.Height); y++ {
		realY := int(dy) + y
		if realY < 0 || realY >= int(p.Height) {
			continue
		}
		for x := 0; x < int(p.Width); x++ {
			realX := int(dx) + x
			if realX < 0 || realX >= int(p.Width) {
				continue
			}
			p.Buffer[realY*pitch+realX] = p.StoredFrame[y*pitch+x]
		}
	}
	return nil
}
