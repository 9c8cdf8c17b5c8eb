// Package logger builds the process logger.
//
// Logs always go to stderr: stdout carries the MCP protocol.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Environment variables read by FromEnv.
const (
	EnvLevel  = "BLUR_MCP_LOG_LEVEL"
	EnvFormat = "BLUR_MCP_LOG_FORMAT"
)

// New returns a timestamped JSON logger writing to w at level.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// NewConsole returns a human readable logger writing to w.
func NewConsole(w io.Writer, level zerolog.Level) zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: w, NoColor: true}, level)
}

// FromEnv builds the stderr logger described by BLUR_MCP_LOG_LEVEL (debug,
// info, warn or error; default info) and BLUR_MCP_LOG_FORMAT (console for
// human output, JSON otherwise).
func FromEnv() zerolog.Logger {
	return fromLookup(os.Getenv, os.Stderr)
}

func fromLookup(getenv func(string) string, w io.Writer) zerolog.Logger {
	level := ParseLevel(getenv(EnvLevel))
	if strings.EqualFold(getenv(EnvFormat), "console") {
		return NewConsole(w, level)
	}
	return New(w, level)
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names
// give info.
func ParseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}
