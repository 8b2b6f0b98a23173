/*
NAME
  frame.go

DESCRIPTION
  frame.go iterates FRME chunks and dispatches their sub-chunks to
  caller-supplied handlers, enforcing the strict post-seek realignment that
  lets the parser tolerate handlers which don't consume their full payload.

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

// SubChunkHandlers groups the callbacks invoked for each known FRME
// sub-chunk tag. size is the sub-chunk's payload length; the reader is
// positioned at the start of the payload. A handler's return error aborts
// the frame only if it was marked with Fatal; any other error is discarded
// without logging and ReadFrame realigns and continues, per §7's
// recoverable-anomaly class.
type SubChunkHandlers struct {
	FOBJ func(r *Reader, size uint32) error
	FTCH func(r *Reader, size uint32) error
	IACT func(r *Reader, size uint32) error
	NPAL func(r *Reader, size uint32) error
	STOR func(r *Reader, size uint32) error
	TEXT func(r *Reader, size uint32) error
	TRES func(r *Reader, size uint32) error
	XPAL func(r *Reader, size uint32) error

	// Unknown is invoked for any tag not listed above and must not error;
	// it exists purely for logging.
	Unknown func(tag Tag, size uint32)
}

// fatalError wraps a sub-chunk handler error to mark it as a fatal per-frame
// error (§7 kind 3) rather than a recoverable anomaly (§7 kind 2).
type fatalError struct{ err error }

func (f *fatalError) Error() string { return f.err.Error() }
func (f *fatalError) Unwrap() error { return f.err }

// Fatal marks err as fatal so ReadFrame aborts the frame instead of
// realigning and continuing.
func Fatal(err error) error {
	if err == nil {
		return nil
	}
	return &fatalError{err}
}

func isFatal(err error) bool {
	var f *fatalError
	return errors.As(err, &f)
}

// ReadFrame consumes exactly one FRME chunk (skipping a preceding ANNO, if
// present) and dispatches each of its sub-chunks to handlers. It returns an
// error for §7 kind-3 fatal conditions: end of stream mid-FRME, a missing
// FRME tag where one is required, or a handler error wrapped with Fatal.
func ReadFrame(r *Reader, handlers SubChunkHandlers) error {
	tag, err := r.ReadU32BE()
	if err != nil {
		return errors.Wrap(err, "smush: reading frame tag")
	}
	size, err := r.ReadU32BE()
	if err != nil {
		return errors.Wrap(err, "smush: reading frame size")
	}
	pos := r.Pos()

	if Tag(tag) == TagANNO {
		if _, err := r.Seek(int64(pos)+int64(size)+int64(size&1), SeekStart); err != nil {
			return err
		}
		if tag, err = r.ReadU32BE(); err != nil {
			return errors.Wrap(err, "smush: reading frame tag after ANNO")
		}
		if size, err = r.ReadU32BE(); err != nil {
			return errors.Wrap(err, "smush: reading frame size after ANNO")
		}
		pos = r.Pos()
	}

	if Tag(tag) != TagFRME {
		return errors.Errorf("smush: expected FRME, got %q", Tag(tag))
	}

	bytesLeft := int64(size)
	for bytesLeft > 0 {
		subType, err := r.ReadU32BE()
		if err != nil {
			return errors.Wrap(err, "smush: reading sub-chunk tag")
		}
		subSize, err := r.ReadU32BE()
		if err != nil {
			return errors.Wrap(err, "smush: reading sub-chunk size")
		}
		subPos := r.Pos()

		if r.EOS() {
			return errors.New("smush: unexpected end of file in FRME")
		}

		var herr error
		switch Tag(subType) {
		case TagFOBJ:
			if handlers.FOBJ != nil {
				herr = handlers.FOBJ(r, subSize)
			}
		case TagFTCH:
			if handlers.FTCH != nil {
				herr = handlers.FTCH(r, subSize)
			}
		case TagIACT:
			if handlers.IACT != nil {
				herr = handlers.IACT(r, subSize)
			}
		case TagNPAL:
			if handlers.NPAL != nil {
				herr = handlers.NPAL(r, subSize)
			}
		case TagSTOR:
			if handlers.STOR != nil {
				herr = handlers.STOR(r, subSize)
			}
		case TagTEXT:
			if handlers.TEXT != nil {
				herr = handlers.TEXT(r, subSize)
			}
		case TagTRES:
			if handlers.TRES != nil {
				herr = handlers.TRES(r, subSize)
			}
		case TagXPAL:
			if handlers.XPAL != nil {
				herr = handlers.XPAL(r, subSize)
			}
		default:
			if handlers.Unknown != nil {
				handlers.Unknown(Tag(subType), subSize)
			}
		}

		if herr != nil && isFatal(herr) {
			return herr
		}

		bytesLeft -= int64(subSize) + 8 + int64(subSize&1)

		// Strict post-seek realignment: re-seek to the declared boundary
		// regardless of how much the handler actually consumed.
		if _, err := r.Seek(int64(subPos)+int64(subSize)+int64(subSize&1), SeekStart); err != nil {
			return err
		}
	}

	_, err = r.Seek(int64(pos)+int64(size)+int64(size&1), SeekStart)
	return err
}
