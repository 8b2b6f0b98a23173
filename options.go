/*
NAME
  options.go

DESCRIPTION
  options.go provides the functional options accepted by Open, the same
  pattern container/mts's options.go uses for its encoder.

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

// OpenOption configures a Video at construction time.
type OpenOption func(*Video)

// WithLogger installs a custom Logger. The default is a no-op logger.
func WithLogger(log Logger) OpenOption {
	return func(v *Video) {
		v.log = log
	}
}

// WithClock installs a custom Clock, primarily for deterministic tests
// that drive Frame at fake tick values.
func WithClock(clock Clock) OpenOption {
	return func(v *Video) {
		v.clock = clock
	}
}
