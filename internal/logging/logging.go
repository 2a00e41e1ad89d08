package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Format represents the logging output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Logger wraps a zerolog logger with format options
type Logger struct {
	mu     sync.RWMutex
	format Format
	writer io.Writer
	level  zerolog.Level
	zl     zerolog.Logger
}

// Global logger instance
var defaultLogger = newLogger(FormatText, os.Stderr, zerolog.InfoLevel)

func newLogger(format Format, w io.Writer, level zerolog.Level) *Logger {
	l := &Logger{format: format, writer: w, level: level}
	l.rebuild()
	return l
}

// rebuild must be called with mu held for writing, or before l is shared
func (l *Logger) rebuild() {
	var out io.Writer = l.writer
	if l.format == FormatText {
		out = zerolog.ConsoleWriter{
			Out:        l.writer,
			NoColor:    true,
			TimeFormat: time.RFC3339,
		}
	}
	l.zl = zerolog.New(out).Level(l.level).With().Timestamp().Logger()
}

// Configure applies level and format in one step
func Configure(level string, format Format) error {
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("unknown log format %q", format)
	}
	if err := SetLevel(level); err != nil {
		return err
	}
	SetFormat(format)
	return nil
}

// SetFormat sets the logging format globally
func SetFormat(format Format) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.format = format
	defaultLogger.rebuild()
}

// SetWriter sets the output writer
func SetWriter(w io.Writer) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.writer = w
	defaultLogger.rebuild()
}

// Redirect sends output to w until the returned func restores the previous writer
func Redirect(w io.Writer) (restore func()) {
	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	previous := defaultLogger.writer
	defaultLogger.writer = w
	defaultLogger.rebuild()

	return func() {
		SetWriter(previous)
	}
}

// SetLevel sets the minimum level: debug, info, warn or error
func SetLevel(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return fmt.Errorf("unknown log level %q", level)
	}

	defaultLogger.mu.Lock()
	defer defaultLogger.mu.Unlock()
	defaultLogger.level = lvl
	defaultLogger.rebuild()
	return nil
}

// GetFormat returns the current logging format
func GetFormat() Format {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	return defaultLogger.format
}

// emit writes the event, prefixing the component in text mode
func emit(e *zerolog.Event, format Format, component, message string) {
	if format == FormatText {
		e.Msg("[" + component + "] " + message)
		return
	}
	e.Str("component", component).Msg(message)
}

func withData(e *zerolog.Event, data interface{}) *zerolog.Event {
	if data == nil {
		return e
	}
	return e.Interface("data", data)
}

// Debug logs a debug message
func Debug(component, message string, data interface{}) {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	emit(withData(defaultLogger.zl.Debug(), data), defaultLogger.format, component, message)
}

// Info logs an info message
func Info(component, message string, data interface{}) {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	emit(withData(defaultLogger.zl.Info(), data), defaultLogger.format, component, message)
}

// Warn logs a warning
func Warn(component, message string, data interface{}) {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	emit(withData(defaultLogger.zl.Warn(), data), defaultLogger.format, component, message)
}

// Error logs an error message
func Error(component, message string, err error) {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()

	e := defaultLogger.zl.Error()
	if err != nil {
		e = e.Err(err)
	}
	emit(e, defaultLogger.format, component, message)
}

// ProbeResult logs a network probe result
func ProbeResult(target string, latencyMs float64, success bool, errMsg string) {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()

	e := defaultLogger.zl.Info().
		Str("target", target).
		Float64("latency_ms", latencyMs).
		Bool("success", success)
	if errMsg != "" {
		e = e.Str("error", errMsg)
	}

	message := fmt.Sprintf("%s: %.2fms", target, latencyMs)
	if !success {
		message = fmt.Sprintf("%s: FAILED - %s", target, errMsg)
	}
	emit(e, defaultLogger.format, "Probe", message)
}
