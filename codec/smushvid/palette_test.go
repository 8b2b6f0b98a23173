/*
NAME
  palette_test.go

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

func TestDeltaColorFormula(t *testing.T) {
	// Scenario 3: palette[0]=100, delta[0]=-64.
	// (100*129 + (-64)) / 128 = (12900-64)/128 = 12836/128 = 100 (integer division).
	got := deltaColor(100, -64)
	if got != 100 {
		t.Fatalf("deltaColor(100, -64) = %d, want 100", got)
	}
}

func TestDeltaColorClamps(t *testing.T) {
	if got := deltaColor(0, -1000); got != 0 {
		t.Fatalf("deltaColor(0, -1000) = %d, want 0 (clamped)", got)
	}
	if got := deltaColor(255, 1000); got != 255 {
		t.Fatalf("deltaColor(255, 1000) = %d, want 255 (clamped)", got)
	}
}

func TestHandleNPAL(t *testing.T) {
	p := NewPipeline(1, 1, 1, false, nil)
	full := make([]byte, 768)
	full[0], full[1], full[2] = 10, 20, 30

	r := smush.NewReader(full)
	var got [768]byte
	sink := func(pal [768]byte) { got = pal }
	if err := p.HandleNPAL(r, 768, sink); err != nil {
		t.Fatal(err)
	}
	if p.Palette[0] != 10 || p.Palette[1] != 20 || p.Palette[2] != 30 {
		t.Fatalf("Palette[0:3] = %v, want [10 20 30]", p.Palette[0:3])
	}
	if got != p.Palette {
		t.Fatal("NPAL sink not invoked with the new palette")
	}
}

func TestHandleXPALDeltaTriggerApply(t *testing.T) {
	p := NewPipeline(1, 1, 1, false, nil)
	p.Palette[0] = 100
	p.DeltaPalette[0] = -64

	r := smush.NewReader(nil)
	if err := p.HandleXPAL(r, 6, nil); err != nil {
		t.Fatal(err)
	}
	if p.Palette[0] != 100 {
		t.Fatalf("Palette[0] after XPAL size=6 = %d, want 100", p.Palette[0])
	}
}

func TestHandleXPALCombined(t *testing.T) {
	p := NewPipeline(1, 1, 1, false, nil)

	payload := make([]byte, 4+256*3*2+768)
	// Delta for index 0 = -64 (LE int16), rest zero.
	payload[4] = byte(int16(-64))
	payload[5] = byte(int16(-64) >> 8)
	base := payload[4+256*3*2:]
	base[0], base[1], base[2] = 100, 0, 0

	r := smush.NewReader(payload)
	if err := p.HandleXPAL(r, uint32(len(payload)), nil); err != nil {
		t.Fatal(err)
	}
	if p.DeltaPalette[0] != -64 {
		t.Fatalf("DeltaPalette[0] = %d, want -64", p.DeltaPalette[0])
	}
	if p.Palette[0] != 100 {
		t.Fatalf("Palette[0] = %d, want 100", p.Palette[0])
	}
}

func TestHandleXPALBadSize(t *testing.T) {
	p := NewPipeline(1, 1, 1, false, nil)
	r := smush.NewReader(nil)
	if err := p.HandleXPAL(r, 5, nil); err == nil {
		t.Fatal("HandleXPAL with an unrecognized size did not error")
	}
}
