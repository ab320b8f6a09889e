// Package logger traces vmt's pipeline to stderr.
//
// Nothing but errors is printed unless verbose mode is on (--verbose).
// Lines are plain "[LEVEL] message" text by default; SetJSON switches to
// one slog JSON record per line for tools that collect logs.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	jsonLog *slog.Logger
	now     = time.Now
)

// SetVerbose turns debug tracing on or off.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose reports whether debug tracing is on.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput redirects logs, os.Stderr by default.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	if jsonLog != nil {
		jsonLog = newJSON(w)
	}
}

// SetJSON switches between text lines and JSON records.
func SetJSON(on bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonLog = nil
	if on {
		jsonLog = newJSON(output)
	}
}

func newJSON(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func logf(level slog.Level, always bool, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose && !always {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if jsonLog != nil {
		jsonLog.Log(context.Background(), level, msg)
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, msg)
}

// Debug traces a pipeline step.
func Debug(format string, args ...any) {
	logf(slog.LevelDebug, false, format, args...)
}

func Info(format string, args ...any) {
	logf(slog.LevelInfo, false, format, args...)
}

// Warn reports a recoverable failure, such as one provider erroring.
func Warn(format string, args ...any) {
	logf(slog.LevelWarn, false, format, args...)
}

// Error is printed even when verbose mode is off.
func Error(format string, args ...any) {
	logf(slog.LevelError, true, format, args...)
}

// Section marks the start of a pipeline phase.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if jsonLog != nil {
		jsonLog.Info("section", slog.String("section", name))
		return
	}
	fmt.Fprintf(output, "\n=== %s ===\n", name)
}

// Timed logs the start of stage and returns a func that logs its duration.
//
//	defer logger.Timed("tokenize")()
func Timed(stage string) func() {
	start := now()
	Debug("%s: start", stage)
	return func() {
		Debug("%s: done in %s", stage, now().Sub(start).Round(time.Microsecond))
	}
}
