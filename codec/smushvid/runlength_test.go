/*
NAME
  runlength_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smushvid

import (
	"testing"

	"github.com/ausocean/smush/container/smush"
)

// TestDecodeCodec1Literal exercises the literal (non-repeat) branch: code&1==0.
func TestDecodeCodec1Literal(t *testing.T) {
	p := NewPipeline(4, 1, 4, false, nil)

	// lineSize=5: one code byte (length=4, code=6 => (6>>1)+1=4, code&1=0)
	// plus 4 literal value bytes.
	payload := []byte{
		5, 0, // lineSize = 5 (LE u16)
		6,          // code: literal, length 4
		1, 2, 3, 4, // literal pixel values
	}
	r := smush.NewReader(payload)
	if err := p.decodeCodec1(r, 0, 0, 4, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{1, 2, 3, 4}
	if string(p.Buffer) != string(want) {
		t.Fatalf("Buffer = %v, want %v", p.Buffer, want)
	}
}

// TestDecodeCodec1RepeatTransparent exercises the repeat branch with a
// val==0 transparency sentinel: existing buffer contents must be preserved.
func TestDecodeCodec1RepeatTransparent(t *testing.T) {
	p := NewPipeline(4, 1, 4, false, nil)
	p.Buffer = []byte{9, 9, 9, 9} // pre-existing content that must survive.

	payload := []byte{
		2, 0, // lineSize = 2
		7, // code: repeat, length (7>>1)+1=4, code&1=1
		0, // val=0 -> transparent, skip draw
	}
	r := smush.NewReader(payload)
	if err := p.decodeCodec1(r, 0, 0, 4, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{9, 9, 9, 9}
	if string(p.Buffer) != string(want) {
		t.Fatalf("Buffer = %v, want %v (transparency must not overwrite)", p.Buffer, want)
	}
}

// TestDecodeCodec1RepeatOpaque exercises the repeat branch with a non-zero
// fill value.
func TestDecodeCodec1RepeatOpaque(t *testing.T) {
	p := NewPipeline(4, 1, 4, false, nil)

	payload := []byte{
		2, 0, // lineSize = 2
		7,  // code: repeat, length 4
		42, // val=42
	}
	r := smush.NewReader(payload)
	if err := p.decodeCodec1(r, 0, 0, 4, 1); err != nil {
		t.Fatal(err)
	}
	want := []byte{42, 42, 42, 42}
	if string(p.Buffer) != string(want) {
		t.Fatalf("Buffer = %v, want %v", p.Buffer, want)
	}
}
