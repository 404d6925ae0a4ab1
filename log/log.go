// Package log provides the minimal leveled logger used throughout ficsave.
//
// It mirrors the shape of github.com/saferwall/pe/log, which is itself a
// thin wrapper over the go-kratos/kratos/v2/log API: a one-method Logger
// interface, a Helper that adds printf-style convenience methods, and a
// Filter that drops log records below a configured level.
package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level is a logging severity.
type Level int

// Severities, lowest to highest.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
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
	case LevelFatal:
		return "FATAL"
	default:
		return "?"
	}
}

// ParseLevel parses a level name, defaulting to LevelInfo on no match.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

// Logger logs a record made of alternating key/value pairs.
type Logger interface {
	Log(level Level, keyvals ...interface{}) error
}

type stdLogger struct {
	mu  sync.Mutex
	out io.Writer
}

// NewStdLogger returns a Logger that writes timestamped, leveled lines to w.
func NewStdLogger(w io.Writer) Logger {
	return &stdLogger{out: w}
}

func (l *stdLogger) Log(level Level, keyvals ...interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	ts := time.Now().Format(time.RFC3339)
	_, err := fmt.Fprintf(l.out, "%s %-5s", ts, level)
	if err != nil {
		return err
	}
	for i := 0; i < len(keyvals); i += 2 {
		if i+1 < len(keyvals) {
			_, err = fmt.Fprintf(l.out, " %v=%v", keyvals[i], keyvals[i+1])
		} else {
			_, err = fmt.Fprintf(l.out, " %v", keyvals[i])
		}
		if err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(l.out)
	return err
}

type filter struct {
	next  Logger
	level Level
}

// FilterOption configures a Filter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level a Filter lets through.
func FilterLevel(level Level) FilterOption {
	return func(f *filter) { f.level = level }
}

// NewFilter wraps next, dropping any record below the configured level.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, level: LevelDebug}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *filter) Log(level Level, keyvals ...interface{}) error {
	if level < f.level {
		return nil
	}
	return f.next.Log(level, keyvals...)
}

// Helper adds printf-style convenience methods on top of a Logger.
type Helper struct {
	logger Logger
}

// NewHelper wraps logger.
func NewHelper(logger Logger) *Helper {
	return &Helper{logger: logger}
}

func (h *Helper) log(level Level, format string, args ...interface{}) {
	if h == nil || h.logger == nil {
		return
	}
	_ = h.logger.Log(level, "msg", fmt.Sprintf(format, args...))
}

// Debugf logs at debug level.
func (h *Helper) Debugf(format string, args ...interface{}) { h.log(LevelDebug, format, args...) }

// Infof logs at info level.
func (h *Helper) Infof(format string, args ...interface{}) { h.log(LevelInfo, format, args...) }

// Warnf logs at warn level.
func (h *Helper) Warnf(format string, args ...interface{}) { h.log(LevelWarn, format, args...) }

// Errorf logs at error level.
func (h *Helper) Errorf(format string, args ...interface{}) { h.log(LevelError, format, args...) }

// Fatalf logs at fatal level then exits the process.
func (h *Helper) Fatalf(format string, args ...interface{}) {
	h.log(LevelFatal, format, args...)
	os.Exit(1)
}
