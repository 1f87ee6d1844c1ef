package trace

import (
	"io"
	"sync"
)

// Stream writes each event to its writer as it arrives. Write errors are
// kept and returned from Flush or Close; later events are dropped.
type Stream struct {
	mu    sync.Mutex
	w     io.WriteCloser
	enc   encoder
	level Level
	err   error
}

// NewStream starts a stream on w. Close closes w.
func NewStream(w io.WriteCloser, level Level, format Format) *Stream {
	s := &Stream{w: w, enc: newEncoder(format), level: level}
	s.err = s.enc.begin(w)
	return s
}

func (s *Stream) Emit(ev *Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err == nil {
		s.err = s.enc.encode(s.w, ev)
	}
}

func (s *Stream) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.w.(interface{ Flush() error }); ok && s.err == nil {
		s.err = f.Flush()
	}
	return s.err
}

func (s *Stream) Close() error {
	s.mu.Lock()
	if s.err == nil {
		s.err = s.enc.finish(s.w)
	}
	err := s.err
	s.mu.Unlock()
	if cerr := s.w.Close(); err == nil {
		err = cerr
	}
	return err
}

func (s *Stream) Level() Level { return s.level }
