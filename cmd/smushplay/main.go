/*
NAME
  smushplay is a command-line player for SMUSH (ANIM/SANM) files: it decodes
  every frame of the given file, optionally dumping RGB24 frames and the
  first second of the mixed audio track to disk.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Alan Noble <alan@ausocean.org>
  Dan Kortschak <dan@ausocean.org>
  Trek Hopton <trek@ausocean.org>
  Scott Barnard <scott@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package main is smushplay, a reference host for the smush package.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ausocean/smush"
	"github.com/ausocean/smush/audio"
)

// Current software version.
const version = "v0.1.0"

// Logging configuration, following rv's lumberjack setup.
const (
	logPath      = "smushplay.log"
	logMaxSize   = 50 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
)

const pkg = "smushplay: "

func main() {
	showVersion := flag.Bool("version", false, "show version")
	in := flag.String("in", "", "path to a SMUSH (.san/.nut/.flu) file")
	framesDir := flag.String("frames", "", "optional directory to dump RGB24 frames into")
	audioOut := flag.String("audio", "", "optional path to dump the first second of the mixed audio track as a WAV file")
	verbose := flag.Bool("v", false, "log debug messages")
	flag.Parse()

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}
	if *in == "" {
		fmt.Fprintln(os.Stderr, pkg+"-in is required")
		os.Exit(2)
	}

	log := newFileLogger(smush.LevelInfo)
	if *verbose {
		log.SetLevel(smush.LevelDebug)
	}

	if err := run(*in, *framesDir, *audioOut, log); err != nil {
		log.Log(smush.LevelError, "playback failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(inPath, framesDir, audioOut string, log *fileLogger) error {
	buf, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("%sreading input file: %w", pkg, err)
	}

	v, err := smush.Open(buf, smush.WithLogger(log))
	if err != nil {
		return fmt.Errorf("%sopening stream: %w", pkg, err)
	}
	defer v.Close()

	info := v.GetInfo()
	log.Log(smush.LevelInfo, "opened stream",
		"kind", v.Kind().String(), "width", info.Width, "height", info.Height,
		"frames", info.FrameCount, "fps", info.FPS)

	if framesDir != "" {
		if err := os.MkdirAll(framesDir, 0o755); err != nil {
			return fmt.Errorf("%screating frames directory: %w", pkg, err)
		}
	}

	stride := int(info.Width) * 3
	frame := make([]byte, stride*int(info.Height))
	count := 0
	for {
		status, err := v.Frame()
		if err != nil {
			return fmt.Errorf("%sdecoding frame %d: %w", pkg, count, err)
		}
		if status == smush.Done {
			break
		}
		if status != smush.NewFrame {
			continue
		}

		if err := v.GetFrame(frame, stride); err != nil {
			return fmt.Errorf("%sexporting frame %d: %w", pkg, count, err)
		}
		if framesDir != "" {
			if err := dumpFrame(filepath.Join(framesDir, fmt.Sprintf("frame-%04d.raw", count)), frame); err != nil {
				return err
			}
		}
		count++
	}
	log.Log(smush.LevelInfo, "playback complete", "frames_decoded", count)

	if audioOut != "" {
		if err := dumpAudio(audioOut, v); err != nil {
			return err
		}
	}
	return nil
}

func dumpFrame(path string, frame []byte) error {
	if err := os.WriteFile(path, frame, 0o644); err != nil {
		return fmt.Errorf("%swriting frame: %w", pkg, err)
	}
	return nil
}

// dumpAudio re-encodes one second of the mixed audio track as a .wav file.
func dumpAudio(path string, v *smush.Video) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%screating audio output: %w", pkg, err)
	}
	defer f.Close()

	const secondsPerPull = 1
	if err := audio.DumpWAV(f, v.Mixer(), audio.DestRate*secondsPerPull); err != nil {
		return fmt.Errorf("%sdumping audio: %w", pkg, err)
	}
	return nil
}

// fileLogger is a minimal smush.Logger backed by lumberjack's rotating
// file writer, mirroring rv's lumberjack.Logger wiring without depending
// on an external structured-logging library.
type fileLogger struct {
	out   *lumberjack.Logger
	level int8
}

func newFileLogger(level int8) *fileLogger {
	return &fileLogger{
		out: &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackup,
			MaxAge:     logMaxAge,
		},
		level: level,
	}
}

func (l *fileLogger) SetLevel(level int8) { l.level = level }

func (l *fileLogger) Log(level int8, message string, params ...interface{}) {
	if level < l.level {
		return
	}
	fmt.Fprintf(l.out, "%s %s %v\n", levelName(level), message, params)
}

func levelName(level int8) string {
	switch level {
	case smush.LevelDebug:
		return "DEBUG"
	case smush.LevelWarn:
		return "WARN"
	case smush.LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}
