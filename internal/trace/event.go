package trace

import (
	"sync/atomic"
	"time"
)

// Kind is the type of a trace event.
type Kind uint8

const (
	KindBegin Kind = iota + 1
	KindEnd
	KindPoint
	KindHeartbeat
)

func (k Kind) String() string {
	switch k {
	case KindBegin:
		return "begin"
	case KindEnd:
		return "end"
	case KindPoint:
		return "point"
	case KindHeartbeat:
		return "heartbeat"
	}
	return "unknown"
}

// Scope is the granularity of an event. Smaller values are coarser.
type Scope uint8

const (
	// ScopeDriver covers a whole command.
	ScopeDriver Scope = iota + 1
	// ScopePass covers load, parse and bind.
	ScopePass
	// ScopeFile covers all work on one input file.
	ScopeFile
	// ScopeNode marks binder work on a single declaration.
	ScopeNode
)

func (s Scope) String() string {
	switch s {
	case ScopeDriver:
		return "driver"
	case ScopePass:
		return "pass"
	case ScopeFile:
		return "file"
	case ScopeNode:
		return "node"
	}
	return "unknown"
}

// Attr is a key/value pair attached to an end event.
type Attr struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is one trace record. Lane groups the events of one input file so
// viewers can draw files checked in parallel on separate rows.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Lane     uint64
	Name     string
	Detail   string
	Attrs    []Attr
}

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

func nextSeq() uint64 { return seqCounter.Add(1) }
