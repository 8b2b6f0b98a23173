/*
NAME
  palette.go

DESCRIPTION
  palette.go implements NPAL (full palette load) and XPAL (delta palette)
  handling per §4.3.

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

// PaletteSink receives the palette whenever it changes, standing in for
// the original's GraphicsManager.setPalette push.
type PaletteSink func(palette [768]byte)

// HandleNPAL loads a full 768-byte palette.
func (p *Pipeline) HandleNPAL(r *smush.Reader, size uint32, sink PaletteSink) error {
	if size < 768 {
		return errors.New("smushvid: bad NPAL chunk")
	}
	b, err := r.Read(768)
	if err != nil {
		return err
	}
	copy(p.Palette[:], b)
	if sink != nil {
		sink(p.Palette)
	}
	return nil
}

// HandleXPAL implements the three XPAL shapes of §4.3: a combined
// delta+base palette (2308 bytes), a v1 delta-only trigger (1540 bytes),
// or an apply-stored-deltas trigger (4 or 6 bytes).
func (p *Pipeline) HandleXPAL(r *smush.Reader, size uint32, sink PaletteSink) error {
	switch size {
	case 256*3*3 + 4:
		if _, err := r.Read(4); err != nil {
			return err
		}
		for i := 0; i < 256*3; i++ {
			d, err := r.ReadI16LE()
			if err != nil {
				return err
			}
			p.DeltaPalette[i] = d
		}
		b, err := r.Read(768)
		if err != nil {
			return err
		}
		copy(p.Palette[:], b)
		if sink != nil {
			sink(p.Palette)
		}
		return nil

	case 6, 4:
		for i := range p.Palette {
			p.Palette[i] = deltaColor(p.Palette[i], p.DeltaPalette[i])
		}
		if sink != nil {
			sink(p.Palette)
		}
		return nil

	case 256*3*2 + 4:
		if _, err := r.Read(4); err != nil {
			return err
		}
		for i := 0; i < 256*3; i++ {
			d, err := r.ReadI16LE()
			if err != nil {
				return err
			}
			p.DeltaPalette[i] = d
		}
		return nil

	default:
		return errors.Errorf("smushvid: bad XPAL chunk (%d)", size)
	}
}

// deltaColor applies one delta-palette step: clamp((pal*129 + delta) / 128, 0, 255).
func deltaColor(pal byte, delta int16) byte {
	t := (int(pal)*129 + int(delta)) / 128
	if t < 0 {
		t = 0
	} else if t > 255 {
		t = 255
	}
	return byte(t)
}
