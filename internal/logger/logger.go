// Package logger provides leveled logging for the CLI and the TUIs.
//
// Interactive commands point the logger at a file so that messages do not
// tear the alternate screen; everything else logs to stderr. Before Init is
// called, warnings and errors go to stderr and lower levels are dropped.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Level represents a logging level.
type Level int

const (
	// DebugLevel logs are voluminous and disabled by default.
	DebugLevel Level = iota
	// InfoLevel is the default logging priority.
	InfoLevel
	// WarnLevel logs recoverable problems such as corrupt persisted values.
	WarnLevel
	// ErrorLevel logs failures the user should look at.
	ErrorLevel
)

type leveled struct {
	level  Level
	logger *log.Logger
}

var (
	mu            sync.Mutex
	defaultLogger = &leveled{level: WarnLevel, logger: log.New(os.Stderr, "", log.LstdFlags)}
)

// ParseLevel maps a level name to a Level. Unknown names map to InfoLevel.
func ParseLevel(name string) (Level, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return DebugLevel, true
	case "info", "":
		return InfoLevel, true
	case "warn", "warning":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}

// Init sets the level and destination of the default logger.
func Init(level string, w io.Writer) {
	l, _ := ParseLevel(level)
	if w == nil {
		w = os.Stderr
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = &leveled{
		level:  l,
		logger: log.New(w, "", log.LstdFlags|log.Lmicroseconds),
	}
}

// OpenFile opens path for appending log output, creating parent directories.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func output(level Level, prefix, format string, args ...any) {
	mu.Lock()
	l := defaultLogger
	mu.Unlock()
	if l.level > level {
		return
	}
	// Output errors have nowhere else to go.
	_ = l.logger.Output(3, fmt.Sprintf(prefix+format, args...))
}

// Debug logs a message at DebugLevel.
func Debug(format string, args ...any) {
	output(DebugLevel, "[DEBUG] ", format, args...)
}

// Info logs a message at InfoLevel.
func Info(format string, args ...any) {
	output(InfoLevel, "[INFO] ", format, args...)
}

// Warn logs a message at WarnLevel.
func Warn(format string, args ...any) {
	output(WarnLevel, "[WARN] ", format, args...)
}

// Error logs a message at ErrorLevel.
func Error(format string, args ...any) {
	output(ErrorLevel, "[ERROR] ", format, args...)
}
