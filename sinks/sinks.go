// Package sinks provides the optional notification sinks used by the enver
// Manager, plus adapters that route messages to writers, a slog.Logger, nowhere,
// or an in-memory recorder.
package sinks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Logger is a set of independently optional sinks. A nil field means the
// corresponding level is silent; the Manager never falls back to another sink.
// The zero value has no sinks.
type Logger struct {
	Info  func(message string)
	Warn  func(message string)
	Error func(message string)
}

// Level names a sink in a Logger.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

// Only returns a copy of lg keeping just the sinks for the given levels.
func (lg Logger) Only(levels ...Level) Logger {
	var out Logger
	for _, l := range levels {
		switch l {
		case LevelInfo:
			out.Info = lg.Info
		case LevelWarn:
			out.Warn = lg.Warn
		case LevelError:
			out.Error = lg.Error
		}
	}
	return out
}

// Default returns Writers(os.Stdout, os.Stderr).
func Default() Logger {
	return Writers(os.Stdout, os.Stderr)
}

// Writers sends info and warn messages to out and errors to errOut, one line per
// message. Warnings carry a "warning: " prefix and errors an "error: " prefix.
func Writers(out, errOut io.Writer) Logger {
	return Logger{
		Info:  func(m string) { fmt.Fprintln(out, m) },
		Warn:  func(m string) { fmt.Fprintln(out, "warning: "+m) },
		Error: func(m string) { fmt.Fprintln(errOut, "error: "+m) },
	}
}

// Discard returns a Logger whose sinks are present but drop every message
// (useful for "--silent").
func Discard() Logger {
	drop := func(string) {}
	return Logger{Info: drop, Warn: drop, Error: drop}
}

// Slog routes each sink to l at the matching slog level.
func Slog(l *slog.Logger) Logger {
	logAt := func(level slog.Level) func(string) {
		return func(m string) { l.Log(context.Background(), level, m) }
	}
	return Logger{
		Info:  logAt(slog.LevelInfo),
		Warn:  logAt(slog.LevelWarn),
		Error: logAt(slog.LevelError),
	}
}

// Message is one recorded notification.
type Message struct {
	Level Level
	Text  string
}

// Recorder captures messages in order and is safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	msgs []Message
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Logger returns a Logger writing into r. With no levels all three sinks are
// set; otherwise only the listed ones are.
func (r *Recorder) Logger(levels ...Level) Logger {
	lg := Logger{
		Info:  r.record(LevelInfo),
		Warn:  r.record(LevelWarn),
		Error: r.record(LevelError),
	}
	if len(levels) == 0 {
		return lg
	}
	return lg.Only(levels...)
}

func (r *Recorder) record(l Level) func(string) {
	return func(m string) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.msgs = append(r.msgs, Message{Level: l, Text: m})
	}
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.msgs...)
}

// Texts returns the text of messages recorded at level l, in order.
func (r *Recorder) Texts(l Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, m := range r.msgs {
		if m.Level == l {
			out = append(out, m.Text)
		}
	}
	return out
}

// Reset drops all recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = nil
}
