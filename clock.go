/*
NAME
  clock.go

DESCRIPTION
  clock.go implements the tick-based playback clock of §4.6: a monotonic
  millisecond tick source gating whether Frame advances to the next FRME.

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
	"time"

	container "github.com/ausocean/smush/container/smush"
)

// Clock supplies a monotonic millisecond tick count. The default
// implementation wraps time.Now; tests substitute a fake to drive
// deterministic frame-pacing scenarios.
type Clock interface {
	NowMillis() int64
}

// systemClock is the default Clock, backed by the runtime's monotonic
// clock via time.Since.
type systemClock struct {
	start time.Time
}

func newSystemClock() *systemClock {
	return &systemClock{start: time.Now()}
}

func (c *systemClock) NowMillis() int64 {
	return time.Since(c.start).Milliseconds()
}

// FrameStatus is the result of one Frame call (§4.6).
type FrameStatus int

const (
	NoNewFrame FrameStatus = 0
	NewFrame   FrameStatus = 1
	Done       FrameStatus = 2
)

// nextFrameTimeMillis is next_time_ms(cur_frame): cur_frame*frame_rate/1000
// for SANM (frame_rate is microseconds/frame), cur_frame*1000/frame_rate
// for ANIM (frame_rate is frames/second).
func nextFrameTimeMillis(kind container.ContainerKind, curFrame uint32, frameRate uint32) int64 {
	if frameRate == 0 {
		return 0
	}
	if kind == container.KindSANM {
		return int64(curFrame) * int64(frameRate) / 1000
	}
	return int64(curFrame) * 1000 / int64(frameRate)
}
