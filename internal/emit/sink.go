// Package emit delivers step events to renderers and logs.
//
// A [Sink] receives events in emission order. Sinks are called while the
// playback controller holds its lock, so they must return quickly and must
// never call back into the controller.
package emit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/san-kum/algoviz/internal/stepper"
)

// Sink consumes step events.
type Sink interface {
	Emit(ev stepper.Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ev stepper.Event)

func (f SinkFunc) Emit(ev stepper.Event) { f(ev) }

type nullSink struct{}

func (nullSink) Emit(stepper.Event) {}

// Null discards every event.
func Null() Sink { return nullSink{} }

// Multi fans out to every non-nil sink in order.
func Multi(sinks ...Sink) Sink {
	out := make(multiSink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type multiSink []Sink

func (m multiSink) Emit(ev stepper.Event) {
	for _, s := range m {
		s.Emit(ev)
	}
}

// LogSink writes each event as one structured log record.
type LogSink struct {
	logger *slog.Logger
	level  slog.Level
}

func NewLogSink(logger *slog.Logger, level slog.Level) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger, level: level}
}

func (l *LogSink) Emit(ev stepper.Event) {
	level := l.level
	if ev.Kind == stepper.KindSuccess && level < slog.LevelInfo {
		level = slog.LevelInfo
	}
	l.logger.LogAttrs(context.Background(), level, ev.Message,
		slog.Int("seq", ev.Seq),
		slog.String("algorithm", ev.Algorithm),
		slog.String("kind", string(ev.Kind)),
		slog.String("action", ev.Action),
	)
}

// Buffer stores events until drained. Safe for concurrent use; the TUI
// drains it on every frame.
type Buffer struct {
	mu     sync.Mutex
	events []stepper.Event
}

func NewBuffer() *Buffer { return &Buffer{} }

func (b *Buffer) Emit(ev stepper.Event) {
	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()
}

// Drain returns buffered events and empties the buffer.
func (b *Buffer) Drain() []stepper.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

// Events returns a copy without draining.
func (b *Buffer) Events() []stepper.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]stepper.Event, len(b.events))
	copy(out, b.events)
	return out
}

func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}
