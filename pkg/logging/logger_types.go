package logging

import (
	"io"
	"strings"
	"sync"
	"time"
)

// Level represents a log level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a string to a Level. Matching is case-insensitive and
// surrounding space is ignored; anything unrecognized is INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DebugLevel
	case "WARN", "WARNING":
		return WarnLevel
	case "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Field is a key-value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// Logger is the structured logger used by the analysis pipeline and CLI.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	// With returns a child logger that adds fields to every line.
	With(fields ...Field) Logger
	SetLevel(level Level)
	GetLevel() Level
}

// Keys written by the logger itself. A field using one of them is written
// under "field.<key>" instead.
const (
	TimeKey    = "time"
	LevelKey   = "level"
	MessageKey = "msg"
)

// JSONLogger writes one flat JSON object per line.
type JSONLogger struct {
	out    *syncWriter
	level  Level
	fields []Field
	mu     sync.Mutex
}

// syncWriter is shared by a logger and its children so lines from
// concurrent stages never interleave.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NopLogger is a logger that does nothing. Library callers that do not
// care about pipeline logs pass it.
type NopLogger struct{}

func (NopLogger) Debug(msg string, fields ...Field) {}
func (NopLogger) Info(msg string, fields ...Field)  {}
func (NopLogger) Warn(msg string, fields ...Field)  {}
func (NopLogger) Error(msg string, fields ...Field) {}
func (n NopLogger) With(fields ...Field) Logger     { return n }
func (NopLogger) SetLevel(level Level)              {}
func (NopLogger) GetLevel() Level                   { return InfoLevel }

// NewNopLogger creates a logger that discards all output
func NewNopLogger() Logger {
	return NopLogger{}
}

// TimedOperation logs a message with the time elapsed since StartTimer.
type TimedOperation struct {
	logger Logger
	msg    string
	start  time.Time
	fields []Field
}
