/*
NAME
  reader_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smush

import (
	"errors"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	buf := []byte{
		0x01,             // ReadByte
		0x34, 0x12,       // ReadU16LE -> 0x1234
		0x12, 0x34,       // ReadU16BE -> 0x1234
		0x78, 0x56, 0x34, 0x12, // ReadU32LE -> 0x12345678
		0x12, 0x34, 0x56, 0x78, // ReadU32BE -> 0x12345678
	}
	r := NewReader(buf)

	b, err := r.ReadByte()
	if err != nil || b != 0x01 {
		t.Fatalf("ReadByte() = %v, %v, want 0x01, nil", b, err)
	}
	u16le, err := r.ReadU16LE()
	if err != nil || u16le != 0x1234 {
		t.Fatalf("ReadU16LE() = %#x, %v, want 0x1234, nil", u16le, err)
	}
	u16be, err := r.ReadU16BE()
	if err != nil || u16be != 0x1234 {
		t.Fatalf("ReadU16BE() = %#x, %v, want 0x1234, nil", u16be, err)
	}
	u32le, err := r.ReadU32LE()
	if err != nil || u32le != 0x12345678 {
		t.Fatalf("ReadU32LE() = %#x, %v, want 0x12345678, nil", u32le, err)
	}
	u32be, err := r.ReadU32BE()
	if err != nil || u32be != 0x12345678 {
		t.Fatalf("ReadU32BE() = %#x, %v, want 0x12345678, nil", u32be, err)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.Read(5); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Read(5) error = %v, want ErrShortRead", err)
	}
	if !r.EOS() {
		t.Fatal("EOS() = false after short read, want true")
	}
}

func TestReaderSeek(t *testing.T) {
	r := NewReader([]byte{0, 1, 2, 3, 4, 5})
	if _, err := r.Seek(3, SeekStart); err != nil {
		t.Fatal(err)
	}
	b, err := r.ReadByte()
	if err != nil || b != 3 {
		t.Fatalf("after Seek(3, SeekStart): ReadByte() = %v, %v, want 3, nil", b, err)
	}

	if _, err := r.Seek(1, SeekCurrent); err != nil {
		t.Fatal(err)
	}
	if b, _ := r.ReadByte(); b != 5 {
		t.Fatalf("after Seek(1, SeekCurrent): ReadByte() = %v, want 5", b)
	}

	// Seeking past the end is permitted; eos only clears on a successful read.
	if _, err := r.Seek(100, SeekStart); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Read(1); !errors.Is(err, ErrShortRead) {
		t.Fatalf("Read(1) past end = %v, want ErrShortRead", err)
	}
}

func TestTagRoundTrip(t *testing.T) {
	tag := MakeTag('F', 'R', 'M', 'E')
	if tag != TagFRME {
		t.Fatalf("MakeTag('F','R','M','E') = %#x, want TagFRME (%#x)", tag, TagFRME)
	}
	if got := tag.String(); got != "FRME" {
		t.Fatalf("Tag.String() = %q, want %q", got, "FRME")
	}
}
