/*
NAME
  adpcm_test.go

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package smushaud

import (
	"bytes"
	"testing"
)

// byteSliceSource is a minimal ByteSource backed by an in-memory slice.
type byteSliceSource struct {
	buf []byte
	pos int
}

func (s *byteSliceSource) Read(n int) ([]byte, error) {
	if s.pos+n > len(s.buf) {
		n = len(s.buf) - s.pos
	}
	out := s.buf[s.pos : s.pos+n]
	s.pos += n
	return out, nil
}

// buildIACTPacket builds one complete length-prefixed IACT audio packet:
// a 2-byte length prefix (data length, exclusive of the prefix itself),
// a shift byte, and 1024 L/R sample-byte pairs.
func buildIACTPacket(shift byte, pairs [][2]byte) []byte {
	data := make([]byte, 0, 1+2*len(pairs))
	data = append(data, shift)
	for _, p := range pairs {
		data = append(data, p[0], p[1])
	}
	length := len(data)
	out := []byte{byte(length >> 8), byte(length)}
	return append(out, data...)
}

// TestDecodePacketScenario reproduces §8 scenario 5: shift=0x00, first
// L/R pair (0x01, 0x02), remaining 1023 pairs zero. Expected first stereo
// sample is big-endian bytes 00 01 00 02; output is exactly 4096 bytes.
func TestDecodePacketScenario(t *testing.T) {
	pairs := make([][2]byte, 1024)
	pairs[0] = [2]byte{0x01, 0x02}

	packet := buildIACTPacket(0x00, pairs)

	var got []byte
	var d Decoder
	src := &byteSliceSource{buf: packet}
	if err := d.Feed(src, len(packet), func(p []byte) { got = p }); err != nil {
		t.Fatal(err)
	}

	if len(got) != packetBytes {
		t.Fatalf("decoded packet length = %d, want %d", len(got), packetBytes)
	}
	want := []byte{0x00, 0x01, 0x00, 0x02}
	if !bytes.Equal(got[:4], want) {
		t.Fatalf("first stereo sample = % x, want % x", got[:4], want)
	}
	for i := 4; i < len(got); i++ {
		if got[i] != 0 {
			t.Fatalf("byte %d = %#x, want 0 (silent tail)", i, got[i])
		}
	}
	if d.pos != 0 {
		t.Fatalf("iact_pos after full packet = %d, want 0", d.pos)
	}
}

// TestFeedAcrossChunkBoundaries verifies the streaming state machine
// assembles one packet correctly when fed across several short Read
// calls, as happens when a packet straddles multiple IACT sub-chunks.
func TestFeedAcrossChunkBoundaries(t *testing.T) {
	pairs := make([][2]byte, 1024)
	pairs[10] = [2]byte{0x7F, 0x01}
	packet := buildIACTPacket(0x02, pairs)

	var packets [][]byte
	var d Decoder
	// Feed the packet split across many tiny chunks.
	for off := 0; off < len(packet); off += 3 {
		end := off + 3
		if end > len(packet) {
			end = len(packet)
		}
		src := &byteSliceSource{buf: packet[off:end]}
		if err := d.Feed(src, end-off, func(p []byte) { packets = append(packets, p) }); err != nil {
			t.Fatal(err)
		}
	}

	if len(packets) != 1 {
		t.Fatalf("got %d decoded packets, want 1", len(packets))
	}
	if len(packets[0]) != packetBytes {
		t.Fatalf("decoded packet length = %d, want %d", len(packets[0]), packetBytes)
	}
}

// TestDecodePacketEscape verifies the 0x80 escape sentinel copies a raw
// 16-bit sample through unshifted instead of treating it as a shifted
// delta.
func TestDecodePacketEscape(t *testing.T) {
	pairs := make([][2]byte, 1024)
	packet := buildIACTPacket(0x44, pairs)

	// Overwrite the first left-channel byte with the escape marker and
	// append a raw 16-bit sample (0x12, 0x34) in place of the normal
	// single delta byte. This shifts everything after it by two extra
	// bytes, which is fine since we only inspect the decoded head.
	data := packet[2:]
	data[1] = 0x80
	raw := append([]byte{data[0], 0x80, 0x12, 0x34}, data[2:]...)
	length := len(raw)
	full := append([]byte{byte(length >> 8), byte(length)}, raw...)

	var got []byte
	var d Decoder
	src := &byteSliceSource{buf: full}
	if err := d.Feed(src, len(full), func(p []byte) { got = p }); err != nil {
		t.Fatal(err)
	}
	if got[0] != 0x12 || got[1] != 0x34 {
		t.Fatalf("escaped sample = % x, want [12 34]", got[:2])
	}
}
