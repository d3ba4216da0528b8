// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the logrus logger shared by every pipeline stage.
// The verbosity is passed in explicitly; nothing here touches the logrus
// standard logger.
package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Verbosity selects how much diagnostic output the pipeline emits.
type Verbosity int

const (
	// Quiet logs errors only.
	Quiet Verbosity = iota
	// Normal logs progress and recoverable failures.
	Normal
	// Debug adds request URLs and raw response bodies.
	Debug
)

// String returns the verbosity name.
func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Normal:
		return "normal"
	case Debug:
		return "debug"
	}
	return fmt.Sprintf("Verbosity(%d)", int(v))
}

// Level maps the verbosity to a logrus level.
func (v Verbosity) Level() logrus.Level {
	switch v {
	case Quiet:
		return logrus.ErrorLevel
	case Debug:
		return logrus.DebugLevel
	default:
		return logrus.InfoLevel
	}
}

// ParseVerbosity parses a verbosity name (quiet, normal, debug).
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quiet", "error":
		return Quiet, nil
	case "", "normal", "info":
		return Normal, nil
	case "debug", "verbose":
		return Debug, nil
	}
	return Normal, fmt.Errorf("unknown verbosity %q: use quiet, normal, or debug", s)
}

// New returns a logger writing text-formatted entries to w at the level
// selected by v.
func New(v Verbosity, w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Level = v.Level()
	l.Formatter = &logrus.TextFormatter{
		DisableTimestamp: v != Debug,
		FullTimestamp:    true,
	}
	return l
}

// Discard returns a logger that drops everything. Tests and library callers
// that do not care about diagnostics use it.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.Out = io.Discard
	l.Level = logrus.PanicLevel
	return l
}
