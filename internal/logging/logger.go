package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fadedpez/blackjack/internal/types"
)

// Level represents a logging level
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

var levelNames = map[Level]string{
	DEBUG: "debug",
	INFO:  "info",
	WARN:  "warn",
	ERROR: "error",
}

var charmLevels = map[Level]log.Level{
	DEBUG: log.DebugLevel,
	INFO:  log.InfoLevel,
	WARN:  log.WarnLevel,
	ERROR: log.ErrorLevel,
}

// String returns the lowercase level name
func (l Level) String() string {
	return levelNames[l]
}

// ParseLevel maps a level name to a Level, falling back to INFO
func ParseLevel(name string) Level {
	for level, levelName := range levelNames {
		if strings.EqualFold(name, levelName) {
			return level
		}
	}
	return INFO
}

// Logger wraps a charm logger with our level type and GameError helpers
type Logger struct {
	*log.Logger
	level Level
}

// NewLogger creates a new logger instance writing to stdout
func NewLogger(level Level) *Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a logger writing to w
func NewWithWriter(w io.Writer, level Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level == DEBUG,
		TimeFormat:      "2006-01-02 15:04:05.000",
		Level:           charmLevels[level],
	})
	return &Logger{Logger: l, level: level}
}

// Level returns the configured level
func (l *Logger) Level() Level {
	return l.level
}

// Named returns a child logger with a prefix, e.g. "session"
func (l *Logger) Named(prefix string) *Logger {
	return &Logger{Logger: l.Logger.WithPrefix(prefix), level: l.level}
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), level: l.level}
}

// LogError logs a GameError with its code and cause
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		keyvals := []interface{}{"code", gameErr.Code}
		if gameErr.Err != nil {
			keyvals = append(keyvals, "cause", gameErr.Err)
		}
		l.Error(gameErr.Message, keyvals...)
	} else {
		l.Error("unexpected error", "err", err)
	}
}

// Default logger instance
var Default = NewLogger(INFO)
