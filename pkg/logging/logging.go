package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogLevel defines the severity of the log entry.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String makes LogLevel satisfy the fmt.Stringer interface.
func (l LogLevel) String() string {
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

func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelInfo:
		return slog.LevelInfo
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogEntry is the structured log entry passed to the TUI.
type LogEntry struct {
	Timestamp time.Time
	Level     LogLevel
	Subsystem string
	Message   string
	Err       error
}

const defaultEntryBufferSize = 256

// Logger is the logging sink handed to every component. The zero value is
// not usable; build one with New, NewWithEntries or Discard.
type Logger struct {
	slog       *slog.Logger
	entryLevel LogLevel

	mu      sync.Mutex
	entries chan LogEntry
	closed  bool
	closers []io.Closer
}

// New returns a Logger writing text records to w.
func New(w io.Writer, level LogLevel) *Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level.SlogLevel()})
	return &Logger{slog: slog.New(handler)}
}

// NewWithEntries returns a Logger that additionally forwards entries at
// minLevel or above to a bounded channel, read via Entries. Entries are
// dropped when the channel is full so logging never blocks the caller.
func NewWithEntries(w io.Writer, level, minLevel LogLevel, bufferSize int) *Logger {
	l := New(w, level)
	if bufferSize <= 0 {
		bufferSize = defaultEntryBufferSize
	}
	l.entries = make(chan LogEntry, bufferSize)
	l.entryLevel = minLevel
	return l
}

// Discard returns a Logger that drops everything. Meant for tests.
func Discard() *Logger {
	return New(io.Discard, LevelError)
}

// OpenFile opens (appending) the log file at path, creating parent
// directories as needed. The file is closed by Logger.Close when attached
// with Attach.
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// Attach registers c to be closed on Close.
func (l *Logger) Attach(c io.Closer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closers = append(l.closers, c)
}

// Entries returns the TUI entry channel, or nil when the logger was built
// without one. The channel is closed by Close.
func (l *Logger) Entries() <-chan LogEntry {
	return l.entries
}

// Close closes the entry channel and any attached writers. It is safe to
// call more than once; later log calls still reach the text handler.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	if l.entries != nil {
		close(l.entries)
	}
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}

func (l *Logger) log(level LogLevel, subsystem string, err error, messageFmt string, args ...interface{}) {
	if l == nil {
		return
	}
	msg := messageFmt
	if len(args) > 0 {
		msg = fmt.Sprintf(messageFmt, args...)
	}

	attrs := []slog.Attr{slog.String("subsystem", subsystem)}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.slog.LogAttrs(context.Background(), level.SlogLevel(), msg, attrs...)

	if l.entries == nil || level < l.entryLevel {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	select {
	case l.entries <- LogEntry{Timestamp: time.Now(), Level: level, Subsystem: subsystem, Message: msg, Err: err}:
	default:
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelDebug, subsystem, nil, messageFmt, args...)
}

// Info logs an informational message.
func (l *Logger) Info(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelInfo, subsystem, nil, messageFmt, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(subsystem string, messageFmt string, args ...interface{}) {
	l.log(LevelWarn, subsystem, nil, messageFmt, args...)
}

// Error logs an error message.
func (l *Logger) Error(subsystem string, err error, messageFmt string, args ...interface{}) {
	l.log(LevelError, subsystem, err, messageFmt, args...)
}
