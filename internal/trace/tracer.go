package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
}

// Mode selects where events are kept.
type Mode uint8

const (
	ModeStream Mode = iota + 1
	ModeRing
	ModeBoth
)

func (m Mode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

// ParseMode accepts stream, ring or both.
func ParseMode(s string) (Mode, error) {
	for _, m := range []Mode{ModeStream, ModeRing, ModeBoth} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid trace mode %q (expected stream|ring|both)", s)
}

// Config describes a tracer. Output wins over OutputPath; an empty path or
// "-" means stderr.
type Config struct {
	Level      Level
	Mode       Mode
	Format     Format
	Output     io.Writer
	OutputPath string
	RingSize   int
	Heartbeat  time.Duration
}

const defaultRingSize = 4096

// New builds the tracer cfg describes. LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.OutputPath)
	}
	switch cfg.Mode {
	case ModeRing:
		return NewRing(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		stream := NewStream(w, cfg.Level, format)
		if cfg.Mode == ModeStream {
			return stream, nil
		}
		return &fanout{tracers: []Tracer{stream, NewRing(cfg.RingSize, cfg.Level)}}, nil
	}
	return nil, fmt.Errorf("unknown trace mode %v", cfg.Mode)
}

// RingOf returns the ring t keeps events in, or nil when it keeps none.
func RingOf(t Tracer) *Ring {
	switch t := t.(type) {
	case *Ring:
		return t
	case *fanout:
		for _, inner := range t.tracers {
			if r := RingOf(inner); r != nil {
				return r
			}
		}
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func openOutput(cfg Config) (io.WriteCloser, error) {
	switch {
	case cfg.Output != nil:
		if wc, ok := cfg.Output.(io.WriteCloser); ok {
			return wc, nil
		}
		return nopCloser{cfg.Output}, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return nopCloser{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}

// fanout sends every event to each tracer in turn.
type fanout struct {
	tracers []Tracer
}

func (f *fanout) Emit(ev *Event) {
	for _, t := range f.tracers {
		cp := *ev
		t.Emit(&cp)
	}
}

func (f *fanout) Flush() error {
	var first error
	for _, t := range f.tracers {
		if err := t.Flush(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *fanout) Close() error {
	var first error
	for _, t := range f.tracers {
		if err := t.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f *fanout) Level() Level {
	if len(f.tracers) == 0 {
		return LevelOff
	}
	return f.tracers[0].Level()
}
