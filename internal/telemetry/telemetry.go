// Package telemetry provides the package-global structured logger shared by
// every component of the engine.
package telemetry

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the package-global logger. Components call telemetry.Log.* rather
// than constructing their own loggers, matching the teacher's single
// package-global log handle.
var Log = logrus.New()

func init() {
	Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	Log.SetLevel(levelFromEnv())
}

// levelFromEnv reads XRSHADOW_LOG_LEVEL, defaulting to info.
func levelFromEnv() logrus.Level {
	switch strings.ToLower(os.Getenv("XRSHADOW_LOG_LEVEL")) {
	case "trace":
		return logrus.TraceLevel
	case "debug":
		return logrus.DebugLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// UseRotatingFile points the logger at a size/age rotated file, in addition
// to stderr (the output is replaced by stderr plus the file). Pass an empty
// path to leave the current output, stderr by default, in place.
func UseRotatingFile(path string, maxSizeMB, maxBackups, maxAgeDays int) {
	if path == "" {
		return
	}
	Log.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		LocalTime:  true,
	}))
}
