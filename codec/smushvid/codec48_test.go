/*
NAME
  codec48_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smushvid

import "testing"

func TestCodec48Fill(t *testing.T) {
	d := NewCodec48Decoder(2, 2)
	dst := make([]byte, 4)
	d.Decode(dst, []byte{opCodecFill, 7})
	want := []byte{7, 7, 7, 7}
	if string(dst) != string(want) {
		t.Fatalf("Decode(fill) = %v, want %v", dst, want)
	}
}

func TestCodec48RawThenCopy(t *testing.T) {
	d := NewCodec48Decoder(2, 2)
	dst := make([]byte, 4)

	d.Decode(dst, append([]byte{opCodecRaw}, []byte{1, 2, 3, 4}...))
	if string(dst) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("Decode(raw) = %v, want [1 2 3 4]", dst)
	}

	// opCodecCopy reproduces the previous frame.
	d.Decode(dst, []byte{opCodecCopy})
	if string(dst) != string([]byte{1, 2, 3, 4}) {
		t.Fatalf("Decode(copy) = %v, want [1 2 3 4] (previous frame)", dst)
	}
}

func TestCodec48UnknownOpcodeHoldsPrevious(t *testing.T) {
	d := NewCodec48Decoder(2, 2)
	dst := make([]byte, 4)

	d.Decode(dst, append([]byte{opCodecRaw}, []byte{5, 6, 7, 8}...))
	d.Decode(dst, []byte{0xFF}) // unrecognized opcode
	if string(dst) != string([]byte{5, 6, 7, 8}) {
		t.Fatalf("Decode(unknown opcode) = %v, want previous frame [5 6 7 8]", dst)
	}
}
