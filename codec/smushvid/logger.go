/*
NAME
  logger.go

DESCRIPTION
  logger.go declares the narrow logging interface the video pipeline uses
  to report recoverable parse anomalies (§7 kind 2), mirroring the local
  Logger shape in revid/revid.go rather than depending on a logging
  library.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package smushvid implements the SMUSH paletted video pipeline: palette
// state, the back-buffer, the codec 1/3 run-length decoder, the STOR/FTCH
// store-fetch cache, and the Codec 48 decoder interface.
package smushvid

// Logger is satisfied by any logger that can report a leveled message;
// the smush root package's Logger implements this structurally.
type Logger interface {
	Log(level int8, message string, params ...interface{})
}

// Level constants for Logger.Log, matching the root package's scheme.
const (
	LevelDebug int8 = iota
	LevelInfo
	LevelWarn
	LevelError
)

type noopLogger struct{}

func (noopLogger) Log(int8, string, ...interface{}) {}
