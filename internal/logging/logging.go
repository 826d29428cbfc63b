// Package logging provides a leveled logger backed by zerolog.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Format selects the output encoding.
type Format int

const (
	FormatConsole Format = iota // Human-readable, colored on a terminal
	FormatJSON                  // One JSON object per line
)

// ParseFormat parses "console" or "json"; anything else is console.
func ParseFormat(s string) Format {
	if strings.EqualFold(s, "json") {
		return FormatJSON
	}
	return FormatConsole
}

// Logger is a leveled logger.
type Logger struct {
	mu     sync.Mutex
	level  Level
	format Format
	output io.Writer
	fields map[string]any
	zl     zerolog.Logger
}

// New creates a new logger writing console output to stderr.
func New(level Level) *Logger {
	l := &Logger{
		level:  level,
		output: os.Stderr,
	}
	l.rebuild()
	return l
}

// rebuild recreates the zerolog logger; callers hold mu or own l.
func (l *Logger) rebuild() {
	w := l.output
	if l.format == FormatConsole {
		w = zerolog.ConsoleWriter{
			Out:        l.output,
			TimeFormat: "15:04:05.000",
			NoColor:    !isTerminal(l.output),
		}
	}

	ctx := zerolog.New(w).Level(l.level.zerolog()).With().Timestamp()
	for k, v := range l.fields {
		ctx = ctx.Interface(k, v)
	}
	l.zl = ctx.Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetOutput sets the log output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
	l.rebuild()
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	l.rebuild()
}

// SetFormat switches between console and JSON output.
func (l *Logger) SetFormat(f Format) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.format = f
	l.rebuild()
}

// With returns a child logger that adds key=value to every entry.
func (l *Logger) With(key string, value any) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	fields := make(map[string]any, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value

	child := &Logger{
		level:  l.level,
		format: l.format,
		output: l.output,
		fields: fields,
	}
	child.rebuild()
	return child
}

func (l *Logger) event(level Level) *zerolog.Event {
	l.mu.Lock()
	zl := l.zl
	l.mu.Unlock()

	switch level {
	case LevelDebug:
		return zl.Debug()
	case LevelInfo:
		return zl.Info()
	case LevelWarn:
		return zl.Warn()
	default:
		return zl.Error()
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.event(LevelDebug).Msgf(format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.event(LevelInfo).Msgf(format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.event(LevelWarn).Msgf(format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.event(LevelError).Msgf(format, args...)
}

// Err logs err at error level with a message.
func (l *Logger) Err(err error, msg string) {
	l.event(LevelError).Err(err).Msg(msg)
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return &Logger{
		level:  LevelError + 1, // Higher than any level
		output: io.Discard,
		zl:     zerolog.Nop(),
	}
}
