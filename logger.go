/*
NAME
  logger.go

DESCRIPTION
  logger.go declares the narrow Logger interface used throughout this
  module, matching the shape of revid/revid.go's local Logger rather than
  depending on a concrete logging library.

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

import "github.com/ausocean/smush/codec/smushvid"

// Log levels, matching smushvid.Logger's scheme.
const (
	LevelDebug int8 = iota
	LevelInfo
	LevelWarn
	LevelError
)

// Logger is satisfied by any leveled logger; callers wire in whatever
// they like (see cmd/smushplay for a lumberjack-backed example).
type Logger interface {
	SetLevel(int8)
	Log(level int8, message string, params ...interface{})
}

type noopLogger struct{}

func (noopLogger) SetLevel(int8) {}
func (noopLogger) Log(level int8, message string, params ...interface{}) {}

// pipelineLogger adapts a Logger down to smushvid.Logger's narrower shape.
type pipelineLogger struct {
	log Logger
}

func (p pipelineLogger) Log(level int8, message string, params ...interface{}) {
	p.log.Log(level, message, params...)
}
