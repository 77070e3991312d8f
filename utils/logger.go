package utils

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog with printf-style level methods
type Logger struct {
	out zerolog.Logger
	err zerolog.Logger
}

// NewLogger creates a console logger: info/warn/debug on stdout, errors on stderr.
// An unknown level falls back to info.
func NewLogger(level string) *Logger {
	stdout := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.TimeOnly}
	stderr := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return newLogger(stdout, stderr, level)
}

// NewLoggerTo sends every level to w without console formatting (used by tests)
func NewLoggerTo(w io.Writer, level string) *Logger {
	return newLogger(w, w, level)
}

func newLogger(out, errOut io.Writer, level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	return &Logger{
		out: zerolog.New(out).Level(lvl).With().Timestamp().Logger(),
		err: zerolog.New(errOut).Level(lvl).With().Timestamp().Logger(),
	}
}

func (l *Logger) Info(msg string, args ...interface{}) {
	l.out.Info().Msg(format(msg, args))
}

func (l *Logger) Warn(msg string, args ...interface{}) {
	l.out.Warn().Msg(format(msg, args))
}

func (l *Logger) Error(msg string, args ...interface{}) {
	l.err.Error().Msg(format(msg, args))
}

func (l *Logger) Debug(msg string, args ...interface{}) {
	l.out.Debug().Msg(format(msg, args))
}

func format(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
