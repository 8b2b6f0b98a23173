/*
NAME
  stream_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package audio

import "testing"

func TestQueuingStreamAcrossBuffers(t *testing.T) {
	s := NewQueuingStream(44100, 2, S16LE)
	s.Queue([]byte{1, 0, 2, 0}) // (1, 2)
	s.Queue([]byte{3, 0, 4, 0}) // (3, 4)

	l, r, ok := s.NextSample()
	if !ok || l != 1 || r != 2 {
		t.Fatalf("NextSample() #1 = (%d, %d, %v), want (1, 2, true)", l, r, ok)
	}
	l, r, ok = s.NextSample()
	if !ok || l != 3 || r != 4 {
		t.Fatalf("NextSample() #2 = (%d, %d, %v), want (3, 4, true)", l, r, ok)
	}
	if _, _, ok := s.NextSample(); ok {
		t.Fatal("NextSample() after drain returned ok=true")
	}
}

func TestQueuingStreamMono(t *testing.T) {
	s := NewQueuingStream(22050, 1, S16BE)
	s.Queue([]byte{0x00, 0x7B}) // big-endian 123.

	l, r, ok := s.NextSample()
	if !ok || l != 123 || r != 123 {
		t.Fatalf("NextSample() mono = (%d, %d, %v), want (123, 123, true)", l, r, ok)
	}
}

func TestEndOfStreamVsEndOfData(t *testing.T) {
	s := NewQueuingStream(44100, 2, S16LE)
	if !s.EndOfData() {
		t.Fatal("EndOfData() on empty stream = false, want true")
	}
	if s.EndOfStream() {
		t.Fatal("EndOfStream() on empty, unfinished stream = true, want false")
	}

	s.Finish()
	if !s.EndOfStream() {
		t.Fatal("EndOfStream() after Finish() on an empty stream = false, want true")
	}

	s.Queue([]byte{0, 0, 0, 0})
	s.Finish()
	if s.EndOfStream() {
		t.Fatal("EndOfStream() with unread data = true, want false")
	}
}
