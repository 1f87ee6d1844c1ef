package trace

import (
	"context"
	"fmt"
	"time"
)

// Span is an open begin/end pair. A nil *Span is valid and records nothing,
// which is what Start returns when the tracer's level filters the scope.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	lane    uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
	detail  string
}

// Start opens a span under the span carried by ctx and returns a context
// carrying the new one. Filtered spans are transparent: children started
// from the returned context attach to the nearest recorded ancestor.
func Start(ctx context.Context, scope Scope, name string) (context.Context, *Span) {
	t := FromContext(ctx)
	if !t.Level().Admits(scope) {
		return ctx, nil
	}
	parent := SpanFromContext(ctx)
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	if parent != nil {
		s.parent = parent.id
		s.lane = parent.lane
	}
	if scope == ScopeFile || s.lane == 0 {
		s.lane = s.id
	}
	t.Emit(&Event{
		Time:     s.started,
		Seq:      nextSeq(),
		Kind:     KindBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Lane:     s.lane,
		Name:     name,
	})
	return context.WithValue(ctx, spanKey{}, s), s
}

// ID is zero for a nil span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Set attaches key=value to the end event.
func (s *Span) Set(key string, value any) *Span {
	if s != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: fmt.Sprint(value)})
	}
	return s
}

// Fail records err as the span's detail.
func (s *Span) Fail(err error) {
	if s != nil && err != nil {
		s.detail = err.Error()
	}
}

// Point emits an instant event inside the span. The event is dropped when
// the tracer's level does not admit scope.
func (s *Span) Point(scope Scope, name, detail string) {
	if s == nil || !s.tracer.Level().Admits(scope) {
		return
	}
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Seq:      nextSeq(),
		Kind:     KindPoint,
		Scope:    scope,
		ParentID: s.id,
		Lane:     s.lane,
		Name:     name,
		Detail:   detail,
	})
}

// End closes the span and returns its duration.
func (s *Span) End() time.Duration {
	if s == nil {
		return 0
	}
	now := time.Now()
	s.tracer.Emit(&Event{
		Time:     now,
		Seq:      nextSeq(),
		Kind:     KindEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Lane:     s.lane,
		Name:     s.name,
		Detail:   s.detail,
		Attrs:    s.attrs,
	})
	return now.Sub(s.started)
}
