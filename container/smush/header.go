/*
NAME
  header.go

DESCRIPTION
  header.go parses the SMUSH outer header (AHDR for ANIM, SHDR+FLHD for
  SANM) and runs the ANIM frame-size detection heuristic.

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
)

// ContainerKind distinguishes the two outer container flavours this
// decoder understands.
type ContainerKind int

const (
	KindANIM ContainerKind = iota
	KindSANM
)

func (k ContainerKind) String() string {
	if k == KindSANM {
		return "SANM"
	}
	return "ANIM"
}

// Header is the immutable-after-load state derived from the outer tag and
// AHDR/SHDR+FLHD chunks.
type Header struct {
	Kind          ContainerKind
	Version       uint16 // ANIM only: 1 or 2.
	FrameCount    uint32
	Width, Height uint16
	Pitch         uint16 // Width for 8bpp ANIM, Width*2 for 16bpp SANM.
	FrameRate     uint32 // ANIM: fps (integer). SANM: microseconds/frame.
	AudioRate     uint32
	AudioChannels uint32
	Palette       [768]byte // ANIM only.
}

// maxDetectFrames bounds the ANIM frame-size detection scan (see §4.5).
const maxDetectFrames = 20

// ReadOuter consumes the outer tag and size, returning the container kind.
// SAUD streams and anything else unrecognized are rejected.
func ReadOuter(r *Reader) (ContainerKind, error) {
	tag, err := r.ReadU32BE()
	if err != nil {
		return 0, errors.Wrap(err, "smush: reading outer tag")
	}
	switch Tag(tag) {
	case TagSAUD:
		return 0, errors.New("smush: standalone SMUSH audio files are not supported")
	case TagANIM:
		if _, err := r.ReadU32BE(); err != nil { // file size, ignored
			return 0, errors.Wrap(err, "smush: reading outer size")
		}
		return KindANIM, nil
	case TagSANM:
		if _, err := r.ReadU32BE(); err != nil {
			return 0, errors.Wrap(err, "smush: reading outer size")
		}
		return KindSANM, nil
	default:
		return 0, errors.Errorf("smush: not a valid SMUSH FourCC (%#x)", tag)
	}
}

// ReadHeader reads AHDR (ANIM) or SHDR+FLHD (SANM) at the reader's current
// position and, for ANIM, runs the frame-size detection heuristic.
func ReadHeader(r *Reader, kind ContainerKind) (*Header, error) {
	tag, err := r.ReadU32BE()
	if err != nil {
		return nil, errors.Wrap(err, "smush: reading header tag")
	}
	size, err := r.ReadU32BE()
	if err != nil {
		return nil, errors.Wrap(err, "smush: reading header size")
	}
	pos := r.Pos()

	switch Tag(tag) {
	case TagAHDR:
		if kind != KindANIM {
			return nil, errors.New("smush: AHDR in a SANM stream")
		}
		return readAHDR(r, size, pos)
	case TagSHDR:
		if kind != KindSANM {
			return nil, errors.New("smush: SHDR in an ANIM stream")
		}
		return readSHDR(r, size, pos)
	default:
		return nil, errors.Errorf("smush: unknown SMUSH header type %q", Tag(tag))
	}
}

func readAHDR(r *Reader, size uint32, pos int) (*Header, error) {
	const minSize = 0x306
	if size < minSize {
		return nil, errors.Errorf("smush: AHDR too small (%d bytes)", size)
	}

	h := &Header{Kind: KindANIM}

	var err error
	if h.Version, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	frameCount, err := r.ReadU16LE()
	if err != nil {
		return nil, err
	}
	h.FrameCount = uint32(frameCount)
	if _, err := r.ReadU16LE(); err != nil { // unknown
		return nil, err
	}
	if _, err := r.Read(256 * 3); err != nil {
		return nil, errors.Wrap(err, "smush: reading AHDR palette")
	}
	copy(h.Palette[:], r.buf[r.pos-768:r.pos])

	if h.Version == 2 {
		const v2MinSize = 0x312
		if size < v2MinSize {
			return nil, errors.New("smush: ANIM v2 without extended header")
		}
		if h.FrameRate, err = r.ReadU32LE(); err != nil {
			return nil, err
		}
		if _, err := r.ReadU32LE(); err != nil { // unknown
			return nil, err
		}
		if h.AudioRate, err = r.ReadU32LE(); err != nil {
			return nil, err
		}
		h.AudioChannels = 1
	} else {
		// TODO: figure out proper values; kept as the reference decoder's
		// placeholder constants.
		h.FrameRate = 15
		h.AudioRate = 11025
		h.AudioChannels = 1
	}

	if _, err := r.Seek(int64(pos)+int64(size)+int64(size&1), SeekStart); err != nil {
		return nil, err
	}

	if err := detectFrameSize(r, h); err != nil {
		return nil, err
	}
	return h, nil
}

func readSHDR(r *Reader, size uint32, pos int) (*Header, error) {
	h := &Header{Kind: KindSANM}

	if _, err := r.ReadU16LE(); err != nil {
		return nil, err
	}
	var err error
	if h.FrameCount, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if _, err := r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.Width, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	h.Pitch = h.Width * 2
	if h.Height, err = r.ReadU16LE(); err != nil {
		return nil, err
	}
	if _, err := r.ReadU16LE(); err != nil {
		return nil, err
	}
	if h.FrameRate, err = r.ReadU32LE(); err != nil {
		return nil, err
	}
	if _, err := r.ReadU16LE(); err != nil { // flags, unused
		return nil, err
	}

	if _, err := r.Seek(int64(pos)+int64(size)+int64(size&1), SeekStart); err != nil {
		return nil, err
	}

	if err := readFLHD(r, h); err != nil {
		return nil, err
	}
	return h, nil
}

// readFLHD consumes the single FLHD chunk that must follow SHDR.
func readFLHD(r *Reader, h *Header) error {
	tag, err := r.ReadU32BE()
	if err != nil {
		return err
	}
	if Tag(tag) != TagFLHD {
		return errors.New("smush: expected FLHD after SHDR")
	}
	size, err := r.ReadU32BE()
	if err != nil {
		return err
	}
	pos := r.Pos()
	bytesLeft := int64(size)

	for bytesLeft > 0 {
		subType, err := r.ReadU32BE()
		if err != nil {
			return err
		}
		subSize, err := r.ReadU32BE()
		if err != nil {
			return err
		}
		subPos := r.Pos()

		switch Tag(subType) {
		case TagBl16:
			// Nothing to do.
		case TagWave:
			if h.AudioRate, err = r.ReadU32LE(); err != nil {
				return err
			}
			if h.AudioChannels, err = r.ReadU32LE(); err != nil {
				return err
			}
			// The declared size is unreliable; the consumed length is
			// taken as 12 bytes, of which only the first two u32 fields
			// are read.
			subSize = 12
		default:
			return errors.Errorf("smush: invalid SANM frame header type %q", Tag(subType))
		}

		bytesLeft -= int64(subSize) + 8 + int64(subSize&1)
		if _, err := r.Seek(int64(subPos)+int64(subSize)+int64(subSize&1), SeekStart); err != nil {
			return err
		}
	}

	_, err = r.Seek(int64(pos)+int64(size)+int64(size&1), SeekStart)
	return err
}

// FOBJHeader is the common 14-byte header that precedes every FOBJ payload.
type FOBJHeader struct {
	Codec             byte
	CodecParam        byte
	Left, Top         int16
	Width, Height     uint16
}

// ReadFOBJHeader reads the fixed 14-byte FOBJ header.
func ReadFOBJHeader(r *Reader) (FOBJHeader, error) {
	var h FOBJHeader
	var err error
	if h.Codec, err = r.ReadByte(); err != nil {
		return h, err
	}
	if h.CodecParam, err = r.ReadByte(); err != nil {
		return h, err
	}
	if h.Left, err = r.ReadI16LE(); err != nil {
		return h, err
	}
	if h.Top, err = r.ReadI16LE(); err != nil {
		return h, err
	}
	if h.Width, err = r.ReadU16LE(); err != nil {
		return h, err
	}
	if h.Height, err = r.ReadU16LE(); err != nil {
		return h, err
	}
	if _, err := r.ReadU16LE(); err != nil {
		return h, err
	}
	if _, err := r.ReadU16LE(); err != nil {
		return h, err
	}
	return h, nil
}

// detectFrameSize implements the heuristic of §4.5: ANIM carries no frame
// size in its header, so scan up to maxDetectFrames FRME chunks for the
// first FOBJ whose dimensions aren't the (1,1) placeholder some titles
// (e.g. Full Throttle) lead with.
func detectFrameSize(r *Reader, h *Header) error {
	startPos := r.Pos()
	done := false

	maxFrames := uint32(maxDetectFrames)
	if maxFrames > h.FrameCount {
		maxFrames = h.FrameCount
	}

	for i := uint32(0); i < maxFrames && !done; i++ {
		tag, err := r.ReadU32BE()
		if err != nil {
			return err
		}
		if Tag(tag) != TagFRME {
			return errors.New("smush: detectFrameSize: expected FRME")
		}
		frameSize, err := r.ReadU32BE()
		if err != nil {
			return err
		}
		bytesLeft := int64(frameSize)

		for bytesLeft > 0 {
			subType, err := r.ReadU32BE()
			if err != nil {
				return err
			}
			subSize, err := r.ReadU32BE()
			if err != nil {
				return err
			}
			subPos := r.Pos()

			if r.EOS() {
				return errors.New("smush: unexpected end of file during frame-size detection")
			}

			if Tag(subType) == TagFOBJ {
				fh, err := ReadFOBJHeader(r)
				if err != nil {
					return err
				}
				if fh.Width != 1 || fh.Height != 1 {
					switch fh.Codec {
					case 37, 47, 48:
						h.Width, h.Height = fh.Width, fh.Height
					default:
						h.Width = fh.Width
						if fh.Left > 0 {
							h.Width += uint16(fh.Left)
						}
						h.Height = fh.Height
						if fh.Top > 0 {
							h.Height += uint16(fh.Top)
						}
					}
					done = true
				}
			}

			if done {
				break
			}

			bytesLeft -= int64(subSize) + 8 + int64(subSize&1)
			if _, err := r.Seek(int64(subPos)+int64(subSize)+int64(subSize&1), SeekStart); err != nil {
				return err
			}
		}
	}

	if h.Width == 0 || h.Height == 0 {
		return errors.New("smush: could not detect frame size")
	}

	if _, err := r.Seek(int64(startPos), SeekStart); err != nil {
		return err
	}
	h.Pitch = h.Width
	return nil
}
