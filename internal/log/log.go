// ABOUTME: Leveled printf-style logger on slog levels with a swappable destination
// ABOUTME: The CLI points it at a file while the table owns the terminal

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	outMu sync.Mutex
	out   io.Writer = os.Stderr
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects all log lines to w and returns the previous writer.
// io.Discard silences logging.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func emit(tag, format string, args ...any) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, "%s [%s] "+format+"\n", append([]any{time.Now().Format("15:04:05.000"), tag}, args...)...)
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if GetLevel() > LevelDebug {
		return
	}
	emit("DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if GetLevel() > LevelInfo {
		return
	}
	emit("INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if GetLevel() > LevelWarn {
		return
	}
	emit("WARN", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("ERROR", format, args...)
}
